package analytics

import (
	"context"
	"net/http"
	"vista/infras/otel"
	"vista/internal/domains/analytics/model/dto"
	"vista/internal/domains/analytics/service"
	sessionService "vista/internal/domains/session/service"
	"vista/shared/constant"
	"vista/shared/daterange"
	"vista/shared/timezone"
	"vista/shared/validator"
	"vista/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Analytics
	session sessionService.Session
	otel    otel.Otel
}

func New(service service.Analytics, session sessionService.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/kpis", handler.GetKPIs)
		routerGroup.Get("/occupancy", handler.GetOccupancy)
		routerGroup.Post("/occupancy", handler.RecordOccupancy)
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Post("/revenue", handler.RecordRevenue)
	})
}

// GetKPIs
// @Summary Get KPI summary
// @Description Occupancy, revenue, ADR, RevPAR, bookings and length of stay with the change against the preceding period.
// @Description Without a preset or dates the session's selected range is used.
// @Tags Analytics
// @Produce json
// @Param preset query string false "last_7_days, last_30_days, this_month, last_month or year_to_date"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.KPIResponse "KPI summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/kpis [get]
// @Security BearerAuth
func (handler *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetKPIs")
	defer scope.End()

	period, err := handler.period(ctx, r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	kpis, err := handler.service.KPIs(ctx, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get kpis")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, kpis)
}

// GetOccupancy
// @Summary Get occupancy report
// @Tags Analytics
// @Produce json
// @Param preset query string false "last_7_days, last_30_days, this_month, last_month or year_to_date"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.OccupancyReportResponse "Occupancy report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/occupancy [get]
// @Security BearerAuth
func (handler *Handler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupancy")
	defer scope.End()

	period, err := handler.period(ctx, r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Occupancy(ctx, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// GetRevenue
// @Summary Get revenue report
// @Tags Analytics
// @Produce json
// @Param preset query string false "last_7_days, last_30_days, this_month, last_month or year_to_date"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.RevenueReportResponse "Revenue report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	period, err := handler.period(ctx, r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Revenue(ctx, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// RecordOccupancy stores a day's occupancy, replacing an earlier figure for the same date.
// @Summary Record daily occupancy
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body dto.RecordOccupancyRequest true "Record Occupancy Request"
// @Success 201 {object} dto.OccupancyRow "Recorded occupancy"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/occupancy [post]
// @Security BearerAuth
func (handler *Handler) RecordOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordOccupancy")
	defer scope.End()

	req := dto.RecordOccupancyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	row, err := handler.service.RecordOccupancy(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record occupancy")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, row)
}

// RecordRevenue stores a day's revenue; the total is the sum of the categories.
// @Summary Record daily revenue
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body dto.RecordRevenueRequest true "Record Revenue Request"
// @Success 201 {object} dto.RevenueRow "Recorded revenue"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/revenue [post]
// @Security BearerAuth
func (handler *Handler) RecordRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordRevenue")
	defer scope.End()

	req := dto.RecordRevenueRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	row, err := handler.service.RecordRevenue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record revenue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, row)
}

// period reads the range from the query, falling back to the session's range and then the default.
func (handler *Handler) period(ctx context.Context, r *http.Request) (daterange.Range, error) {
	query := r.URL.Query()
	preset := query.Get(constant.RequestParamPreset)
	start := query.Get(constant.RequestParamStart)
	end := query.Get(constant.RequestParamEnd)

	if preset == constant.Empty && start == constant.Empty && end == constant.Empty {
		state, err := handler.session.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("no session date range, using default")

			return daterange.Default(timezone.Now()), nil
		}

		start, end = state.DateRange.StartDate, state.DateRange.EndDate
	}

	return daterange.Resolve(preset, start, end, timezone.Now())
}
