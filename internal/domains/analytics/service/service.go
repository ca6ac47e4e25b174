package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"vista/config"
	"vista/infras/otel"
	"vista/internal/domains/analytics/model"
	"vista/internal/domains/analytics/model/dto"
	"vista/internal/domains/analytics/repository"
	bookingDto "vista/internal/domains/booking/model/dto"
	bookingRepo "vista/internal/domains/booking/repository"
	"vista/shared"
	"vista/shared/cache"
	"vista/shared/constant"
	"vista/shared/daterange"
	gDto "vista/shared/dto"

	"github.com/rs/zerolog/log"
)

const (
	cacheAnalytics          = constant.CacheAnalytics
	cacheAnalyticsKPI       = cacheAnalytics + ":kpis"
	cacheAnalyticsOccupancy = cacheAnalytics + ":occupancy"
	cacheAnalyticsRevenue   = cacheAnalytics + ":revenue"
)

type Analytics interface {
	KPIs(ctx context.Context, period daterange.Range) (dto.KPIResponse, error)
	Occupancy(ctx context.Context, period daterange.Range) (dto.OccupancyReportResponse, error)
	Revenue(ctx context.Context, period daterange.Range) (dto.RevenueReportResponse, error)
	RecordOccupancy(ctx context.Context, req dto.RecordOccupancyRequest) (dto.OccupancyRow, error)
	RecordRevenue(ctx context.Context, req dto.RecordRevenueRequest) (dto.RevenueRow, error)
}

type serviceImpl struct {
	occupancyRepo repository.Occupancy
	revenueRepo   repository.Revenue
	bookingRepo   bookingRepo.Booking
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(
	occupancyRepo repository.Occupancy,
	revenueRepo repository.Revenue,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Analytics {
	return &serviceImpl{
		occupancyRepo: occupancyRepo,
		revenueRepo:   revenueRepo,
		bookingRepo:   bookingRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

// KPIs computes the period's figures and their change against the preceding period of equal length.
func (s *serviceImpl) KPIs(ctx context.Context, period daterange.Range) (res dto.KPIResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".KPIs")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheAnalyticsKPI, period.String())

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for kpis")

		return res, nil
	}

	current, err := s.kpi(ctx, period)
	if err != nil {
		return res, err
	}

	previous, err := s.kpi(ctx, period.Previous())
	if err != nil {
		return res, err
	}

	res.FromModels(period, current, previous)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Occupancy(ctx context.Context, period daterange.Range) (res dto.OccupancyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheAnalyticsOccupancy, period.String())

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for occupancy report")

		return res, nil
	}

	rows, err := s.occupancy(ctx, period)
	if err != nil {
		return res, err
	}

	res.FromModels(period, rows)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Revenue(ctx context.Context, period daterange.Range) (res dto.RevenueReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheAnalyticsRevenue, period.String())

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for revenue report")

		return res, nil
	}

	rows, err := s.revenue(ctx, period)
	if err != nil {
		return res, err
	}

	res.FromModels(period, rows)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) RecordOccupancy(ctx context.Context, req dto.RecordOccupancyRequest) (res dto.OccupancyRow, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordOccupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	row, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	if err = s.occupancyRepo.Upsert(ctx, row); err != nil {
		log.Error().Err(err).Str("date", req.Date).Msg("failed to record occupancy")

		return res, fmt.Errorf("failed to record occupancy: %w", err)
	}

	s.invalidate(ctx)

	return dto.OccupancyRow{
		Date:          req.Date,
		RoomsOccupied: row.RoomsOccupied,
		TotalRooms:    row.TotalRooms,
		VacantRooms:   row.Vacant(),
		OccupancyRate: row.OccupancyRate,
	}, nil
}

func (s *serviceImpl) RecordRevenue(ctx context.Context, req dto.RecordRevenueRequest) (res dto.RevenueRow, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	row, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	if err = s.revenueRepo.Upsert(ctx, row); err != nil {
		log.Error().Err(err).Str("date", req.Date).Msg("failed to record revenue")

		return res, fmt.Errorf("failed to record revenue: %w", err)
	}

	s.invalidate(ctx)

	return dto.RevenueRow{
		Date:         req.Date,
		RoomRevenue:  row.RoomRevenue,
		FnbRevenue:   row.FnbRevenue,
		OtherRevenue: row.OtherRevenue,
		TotalRevenue: row.TotalRevenue,
	}, nil
}

func (s *serviceImpl) kpi(ctx context.Context, period daterange.Range) (model.KPI, error) {
	occupancy, err := s.occupancy(ctx, period)
	if err != nil {
		return model.KPI{}, err
	}

	revenue, err := s.revenue(ctx, period)
	if err != nil {
		return model.KPI{}, err
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, bookingDto.ListFilter{Period: period}.FilterGroup())
	if err != nil {
		log.Error().Err(err).Str("period", period.String()).Msg("failed to get bookings")

		return model.KPI{}, fmt.Errorf("failed to get bookings: %w", err)
	}

	stays := make([]int, len(bookings))
	for i, booking := range bookings {
		stays[i] = booking.LengthOfStay()
	}

	return model.ComputeKPI(occupancy, revenue, stays), nil
}

func (s *serviceImpl) occupancy(ctx context.Context, period daterange.Range) ([]model.Occupancy, error) {
	params := gDto.QueryParams{SortBy: model.OccupancyTableName + "." + model.FieldDate, SortDir: gDto.SortDirAsc}

	rows, err := s.occupancyRepo.GetAll(ctx, params, dto.RangeFilter(period, model.OccupancyTableName))
	if err != nil {
		log.Error().Err(err).Str("period", period.String()).Msg("failed to get occupancy data")

		return nil, fmt.Errorf("failed to get occupancy data: %w", err)
	}

	return rows, nil
}

func (s *serviceImpl) revenue(ctx context.Context, period daterange.Range) ([]model.Revenue, error) {
	params := gDto.QueryParams{SortBy: model.RevenueTableName + "." + model.FieldDate, SortDir: gDto.SortDirAsc}

	rows, err := s.revenueRepo.GetAll(ctx, params, dto.RangeFilter(period, model.RevenueTableName))
	if err != nil {
		log.Error().Err(err).Str("period", period.String()).Msg("failed to get revenue data")

		return nil, fmt.Errorf("failed to get revenue data: %w", err)
	}

	return rows, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save analytics to cache")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheAnalytics)
	}()
}
