package shiftlog

import (
	"net/http"
	"vista/infras/otel"
	"vista/internal/domains/shiftlog/model/dto"
	"vista/internal/domains/shiftlog/service"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/timezone"
	"vista/shared/validator"
	"vista/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Log
	otel    otel.Otel
}

func New(service service.Log, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/logs", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetLogs)
		routerGroup.Post("/", handler.CreateLog)
		routerGroup.Patch("/{id}/read", handler.MarkRead)
		routerGroup.Delete("/{id}", handler.DeleteLog)
	})
}

// GetLogs lists shift log entries, newest first.
// @Summary Get shift logs
// @Description Entries can be narrowed by free text, author role, a time window and unread state.
// @Tags Log
// @Produce json
// @Param search query string false "Substring of title, message or author name"
// @Param role query string false "Author role"
// @Param window query string false "today, last_3_days, last_week or last_month"
// @Param unread query bool false "Only entries the caller has not read"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetLogsResponse "List of logs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/logs [get]
// @Security BearerAuth
func (handler *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	listFilter := dto.ListFilter{}
	listFilter.FromRequest(r, user)

	filterGroup, err := listFilter.FilterGroup(timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid log window")

		response.WithError(w, err)

		return
	}

	logs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, logs)
}

// CreateLog posts a new shift log entry as the caller.
// @Summary Create a shift log entry
// @Tags Log
// @Accept json
// @Produce json
// @Param request body dto.CreateLogRequest true "Create Log Request"
// @Success 201 {object} dto.LogResponse "Created log"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/logs [post]
// @Security BearerAuth
func (handler *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLog")
	defer scope.End()

	req := dto.CreateLogRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create log")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Log created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// MarkRead records that the caller has read an entry.
// @Summary Mark a shift log entry as read
// @Tags Log
// @Produce json
// @Param id path string true "Log ID"
// @Success 200 {object} response.Message "Log marked as read"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/logs/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark log as read")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Log marked as read")
}

// DeleteLog removes an entry. Restricted to managers by the permission table.
// @Summary Delete a shift log entry
// @Tags Log
// @Produce json
// @Param id path string true "Log ID"
// @Success 200 {object} response.Message "Log deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/logs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLog")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete log")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Log " + id + " deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Log deleted successfully")
}
