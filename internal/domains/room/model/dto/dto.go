package dto

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"vista/internal/domains/room/model"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"
	gModel "vista/shared/model"
	"vista/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required,max=20"`
	RoomType   string `json:"room_type"   validate:"required,max=50"`
	Status     string `json:"status"      validate:"omitempty,oneof=Vacant Occupied Dirty Maintenance 'Out of Order'"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusVacant
	}

	return model.Room{
		ID:         uuid.NewString(),
		RoomNumber: strings.TrimSpace(c.RoomNumber),
		RoomType:   c.RoomType,
		Status:     status,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Vacant Occupied Dirty Maintenance 'Out of Order'"`
}

type ServiceRequest struct {
	Kind     string `json:"kind"     validate:"required,oneof=housekeeping maintenance"`
	Priority string `json:"priority" validate:"required,oneof=Low Medium High Urgent"`
	Notes    string `json:"notes"    validate:"max=2000"`
}

// Title renders the shift log title, e.g. "Maintenance request: room 305".
func (s *ServiceRequest) Title(roomNumber string) string {
	kind := s.Kind
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}

	return fmt.Sprintf("%s request: room %s", kind, roomNumber)
}

func (s *ServiceRequest) Message() string {
	message := "Priority: " + s.Priority
	if notes := strings.TrimSpace(s.Notes); notes != "" {
		message += "\n" + notes
	}

	return message
}

// AvailabilityRequest is the stay window a front desk agent is quoting for.
type AvailabilityRequest struct {
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

// DefaultAvailabilityRequest is a one night stay starting on the given day.
func DefaultAvailabilityRequest(now time.Time) AvailabilityRequest {
	return AvailabilityRequest{
		CheckInDate:  now.Format(constant.DateOnlyFormat),
		CheckOutDate: now.AddDate(0, 0, 1).Format(constant.DateOnlyFormat),
	}
}

// Nights returns the length of the window. Check-out must fall after check-in.
// Both dates are naive calendar days, so they are compared in UTC.
func (a *AvailabilityRequest) Nights() (int, error) {
	checkIn, err := time.Parse(constant.DateOnlyFormat, a.CheckInDate)
	if err != nil {
		return 0, failure.BadRequest(err)
	}

	checkOut, err := time.Parse(constant.DateOnlyFormat, a.CheckOutDate)
	if err != nil {
		return 0, failure.BadRequest(err)
	}

	if !checkOut.After(checkIn) {
		return 0, failure.BadRequestFromString("check-out date must be after check-in date")
	}

	return int(checkOut.Sub(checkIn).Hours() / constant.HoursPerDay), nil
}

type TypeAvailability struct {
	RoomType  string `json:"room_type"`
	Available int    `json:"available"`
}

type AvailabilityResponse struct {
	CheckInDate  string             `json:"check_in_date"`
	CheckOutDate string             `json:"check_out_date"`
	Nights       int                `json:"nights"`
	ByType       []TypeAvailability `json:"by_type"`
	Rooms        []RoomResponse     `json:"rooms"`
}

func (a *AvailabilityResponse) FromModels(req AvailabilityRequest, nights int, counts []model.TypeCount, rooms []model.Room) {
	a.CheckInDate = req.CheckInDate
	a.CheckOutDate = req.CheckOutDate
	a.Nights = nights

	a.ByType = make([]TypeAvailability, len(counts))
	for i, count := range counts {
		a.ByType[i] = TypeAvailability{RoomType: count.RoomType, Available: count.Count}
	}

	a.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		a.Rooms[i].FromModel(room)
	}
}

// ListFilter narrows the room list. Floor is applied after loading since it is derived.
type ListFilter struct {
	Status string
	Type   string
	Floor  *int
}

func (l ListFilter) FilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if l.Status != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    l.Status,
			Table:    model.TableName,
		})
	}

	if l.Type != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorEq,
			Value:    l.Type,
			Table:    model.TableName,
		})
	}

	return group
}

type RoomResponse struct {
	ID         string `json:"id"`
	RoomNumber string `json:"room_number"`
	RoomType   string `json:"room_type"`
	Status     string `json:"status"`
	Floor      int    `json:"floor"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Status = model.Status
	r.Floor = model.Floor()
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.TotalData = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type StatusCount struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type FloorResponse struct {
	Floor int            `json:"floor"`
	Rooms []RoomResponse `json:"rooms"`
}

type SummaryResponse struct {
	TotalRooms              int                       `json:"total_rooms"`
	Statuses                []StatusCount             `json:"statuses"`
	MaintenanceOrOutOfOrder int                       `json:"maintenance_or_out_of_order"`
	TypeMatrix              map[string]map[string]int `json:"type_matrix"`
	Floors                  []FloorResponse           `json:"floors"`
}

// Count returns the number of rooms in the given status.
func (s SummaryResponse) Count(status string) int {
	for _, count := range s.Statuses {
		if count.Status == status {
			return count.Count
		}
	}

	return 0
}

// FromModels aggregates the rooms into status counts, a type by status matrix and a floor map.
func (s *SummaryResponse) FromModels(rooms []model.Room) {
	s.TotalRooms = len(rooms)
	s.TypeMatrix = map[string]map[string]int{}
	s.Floors = []FloorResponse{}

	counts := map[string]int{}
	floors := map[int][]model.Room{}

	for _, room := range rooms {
		counts[room.Status]++

		if room.OutOfService() {
			s.MaintenanceOrOutOfOrder++
		}

		if s.TypeMatrix[room.RoomType] == nil {
			s.TypeMatrix[room.RoomType] = map[string]int{}
		}

		s.TypeMatrix[room.RoomType][room.Status]++

		floors[room.Floor()] = append(floors[room.Floor()], room)
	}

	s.Statuses = make([]StatusCount, len(model.Statuses))
	for i, status := range model.Statuses {
		s.Statuses[i] = StatusCount{Status: status, Count: counts[status]}

		if s.TotalRooms > 0 {
			s.Statuses[i].Percentage = float64(counts[status]) * constant.Percent / float64(s.TotalRooms)
		}
	}

	for _, floor := range slices.Sorted(maps.Keys(floors)) {
		members := floors[floor]
		model.SortByNumber(members)

		res := FloorResponse{Floor: floor, Rooms: make([]RoomResponse, len(members))}
		for i, room := range members {
			res.Rooms[i].FromModel(room)
		}

		s.Floors = append(s.Floors, res)
	}
}
