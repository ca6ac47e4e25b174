package session

import (
	"net/http"
	"vista/infras/otel"
	"vista/internal/domains/session/model/dto"
	"vista/internal/domains/session/service"
	"vista/shared/constant"
	"vista/shared/validator"
	"vista/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Session
	otel    otel.Otel
}

func New(service service.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/session", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetState)
		routerGroup.Delete("/", handler.ResetState)
		routerGroup.Get("/pages", handler.GetPages)
		routerGroup.Post("/navigate", handler.Navigate)
		routerGroup.Put("/date-range", handler.SetDateRange)
		routerGroup.Put("/context", handler.SetContext)
	})
}

// GetState returns the caller's navigation state.
// @Summary Get session state
// @Tags Session
// @Produce json
// @Success 200 {object} dto.StateResponse "Session state"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/session [get]
// @Security BearerAuth
func (handler *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetState")
	defer scope.End()

	res, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session state")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ResetState drops the stored state so the next read starts from defaults.
// @Summary Reset session state
// @Tags Session
// @Produce json
// @Success 200 {object} response.Message "Session state reset"
// @Failure 500 {object} response.Error
// @Router /v1/session [delete]
// @Security BearerAuth
func (handler *Handler) ResetState(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetState")
	defer scope.End()

	sessionID, _ := ctx.Value(constant.ContextKeySessionID).(string)

	if err := handler.service.Clear(ctx, sessionID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset session state")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Session state reset")
}

// GetPages lists the pages the caller's role may open.
// @Summary Get navigable pages
// @Tags Session
// @Produce json
// @Success 200 {array} dto.PageResponse "Pages"
// @Router /v1/session/pages [get]
// @Security BearerAuth
func (handler *Handler) GetPages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPages")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Pages(ctx))
}

// Navigate switches the current page. Unknown or hidden pages fall back to the default page.
// @Summary Navigate to a page
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.NavigateRequest true "Navigate Request"
// @Success 200 {object} dto.StateResponse "Session state"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/session/navigate [post]
// @Security BearerAuth
func (handler *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Navigate")
	defer scope.End()

	req := dto.NavigateRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Navigate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to navigate")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetDateRange stores the analytics date range from a preset or explicit dates.
// @Summary Set the date range
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.DateRangeRequest true "Date Range Request"
// @Success 200 {object} dto.StateResponse "Session state"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/session/date-range [put]
// @Security BearerAuth
func (handler *Handler) SetDateRange(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetDateRange")
	defer scope.End()

	req := dto.DateRangeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetDateRange(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set date range")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetContext updates the transient selections (thread, profile, property).
// @Summary Set transient context
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.ContextRequest true "Context Request"
// @Success 200 {object} dto.StateResponse "Session state"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/session/context [put]
// @Security BearerAuth
func (handler *Handler) SetContext(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetContext")
	defer scope.End()

	req := dto.ContextRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetContext(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set session context")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
