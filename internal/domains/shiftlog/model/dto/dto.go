package dto

import (
	"net/http"
	"time"
	"vista/internal/domains/shiftlog/model"
	"vista/shared"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"
	gModel "vista/shared/model"
	"vista/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateLogRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Author is the denormalised snapshot of the writer stored on every entry.
type Author struct {
	ID   string
	Name string
	Role string
}

func (c *CreateLogRequest) ToModel(author Author) model.Log {
	return model.Log{
		ID:         uuid.NewString(),
		Title:      c.Title,
		Message:    c.Message,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorRole: author.Role,
		ReadBy:     pq.StringArray{},
		Metadata:   gModel.NewMetadata(author.ID, timezone.Now()),
	}
}

type LogResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	AuthorID   string   `json:"author_id"`
	AuthorName string   `json:"author_name"`
	AuthorRole string   `json:"author_role"`
	ReadBy     []string `json:"read_by"`
	IsRead     bool     `json:"is_read"`
	gDto.Metadata
}

func (r *LogResponse) FromModel(model model.Log, viewer string) {
	r.ID = model.ID
	r.Title = model.Title
	r.Message = model.Message
	r.AuthorID = model.AuthorID
	r.AuthorName = model.AuthorName
	r.AuthorRole = model.AuthorRole
	r.ReadBy = append([]string{}, model.ReadBy...)
	r.IsRead = model.IsReadBy(viewer)
	r.Metadata.FromModel(model.Metadata)
}

type GetLogsResponse struct {
	Logs      []LogResponse `json:"logs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetLogsResponse) FromModels(models []model.Log, viewer string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]LogResponse, len(models))
	for i, m := range models {
		r.Logs[i].FromModel(m, viewer)
	}
}

// WindowStart resolves a time window name to its lower bound.
func WindowStart(window string, now time.Time) (time.Time, error) {
	today := timezone.StartOfDay(now)

	switch window {
	case model.WindowToday:
		return today, nil
	case model.WindowLast3Days:
		return today.AddDate(0, 0, -3), nil
	case model.WindowLastWeek:
		return now.AddDate(0, 0, -7), nil
	case model.WindowLastMonth:
		return now.AddDate(0, 0, -30), nil
	default:
		return time.Time{}, failure.BadRequestFromString("window must be one of today last_3_days last_week last_month")
	}
}

const (
	RequestParamWindow = "window"
	RequestParamUnread = "unread"
)

// ListFilter narrows a log listing. Empty fields add no predicate.
type ListFilter struct {
	Search string
	Role   string
	Window string
	Unread bool
	Viewer string
}

// FromRequest reads the list query string. Viewer is the caller, used by the unread predicate.
func (l *ListFilter) FromRequest(r *http.Request, viewer string) {
	query := r.URL.Query()

	l.Search = query.Get(constant.RequestParamSearch)
	l.Role = query.Get(constant.RequestParamRole)
	l.Window = query.Get(RequestParamWindow)
	l.Viewer = viewer

	if unread := shared.ConvertStringToBool(query.Get(RequestParamUnread)); unread != nil {
		l.Unread = *unread
	}
}

// FilterGroup ANDs the requested predicates. An unknown window is a 400.
func (l ListFilter) FilterGroup(now time.Time) (gDto.FilterGroup, error) {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if l.Search != constant.Empty {
		group.Filters = append(group.Filters,
			shared.SearchFilter(l.Search, model.TableName, model.FieldTitle, model.FieldMessage, model.FieldAuthorName))
	}

	if l.Role != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldAuthorRole,
			Operator: gDto.FilterOperatorEq,
			Value:    l.Role,
			Table:    model.TableName,
		})
	}

	if l.Window != constant.Empty {
		filter, err := WindowFilter(l.Window, now)
		if err != nil {
			return group, err
		}

		group.Filters = append(group.Filters, filter)
	}

	if l.Unread {
		group.Filters = append(group.Filters, UnreadFilter(l.Viewer))
	}

	return group, nil
}

// WindowFilter keeps entries created at or after the window start.
func WindowFilter(window string, now time.Time) (gDto.Filter, error) {
	start, err := WindowStart(window, now)
	if err != nil {
		return gDto.Filter{}, err
	}

	return gDto.Filter{
		ArgName:  "window_start",
		Field:    constant.FieldCreatedAt,
		Operator: gDto.FilterOperatorGreaterEq,
		Value:    start,
		Table:    model.TableName,
	}, nil
}

// UnreadFilter keeps entries whose read_by does not contain the viewer.
func UnreadFilter(viewer string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "unread_viewer",
		Field:    model.FieldReadBy,
		Operator: gDto.FilterOperatorNotAny,
		Value:    viewer,
		Table:    model.TableName,
	}
}
