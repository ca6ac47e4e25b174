package home

import (
	"net/http"
	"vista/infras/otel"
	"vista/internal/domains/home/service"
	"vista/shared/constant"
	"vista/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Home
	otel    otel.Otel
}

func New(service service.Home, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/home", handler.GetOverview)
}

// GetOverview
// @Summary Get the home overview
// @Description Today's check-ins and check-outs, room availability, unread logs and a section for the caller's role.
// @Tags Home
// @Produce json
// @Success 200 {object} dto.OverviewResponse "Overview"
// @Failure 500 {object} response.Error
// @Router /v1/home [get]
// @Security BearerAuth
func (handler *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverview")
	defer scope.End()

	overview, err := handler.service.Overview(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overview")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, overview)
}
