package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"vista/config"
	"vista/infras/otel"
	"vista/internal/domains/booking/model"
	"vista/internal/domains/booking/model/dto"
	"vista/internal/domains/booking/repository"
	guestModel "vista/internal/domains/guest/model"
	guestRepo "vista/internal/domains/guest/repository"
	roomModel "vista/internal/domains/room/model"
	roomDto "vista/internal/domains/room/model/dto"
	roomService "vista/internal/domains/room/service"
	"vista/shared"
	"vista/shared/cache"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"
	"vista/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:get_all"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Today(ctx context.Context) (dto.TodayResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	guestRepo   guestRepo.Guest
	roomService roomService.Room
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	guestRepo guestRepo.Guest,
	roomService roomService.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		guestRepo:   guestRepo,
		roomService: roomService,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.OrderBy(model.TableName+"."+model.FieldCheckInDate, gDto.SortDirDesc,
		model.TableName+"."+model.FieldCheckInDate,
		model.TableName+"."+model.FieldCheckOutDate,
		model.TableName+"."+model.FieldTotalPrice,
		model.TableName+"."+constant.FieldCreatedAt,
	)

	group := filter.FilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, group)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return total, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	exist, err := s.guestRepo.Exist(ctx, shared.FilterByID(booking.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check guest existence")

		return res, fmt.Errorf("failed to check guest existence: %w", err)
	}

	if !exist {
		return res, failure.BadRequestFromString("guest does not exist")
	}

	room, err := s.roomService.Get(ctx, booking.RoomID)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return res, failure.BadRequestFromString("room does not exist")
		}

		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx, booking.ID)

	booking.RoomNumber = room.RoomNumber

	res.FromModel(booking)

	return res, nil
}

// Today lists the arrivals and departures dated on the current hotel day.
func (s *serviceImpl) Today(ctx context.Context) (res dto.TodayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Today")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Now().Format(constant.DateOnlyFormat)
	params := gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	arrivals, err := s.repo.GetAll(ctx, params,
		dto.DayFilter(model.FieldCheckInDate, today, model.StatusReserved, model.StatusCheckedIn))
	if err != nil {
		log.Error().Err(err).Msg("failed to get arrivals")

		return res, fmt.Errorf("failed to get arrivals: %w", err)
	}

	departures, err := s.repo.GetAll(ctx, params,
		dto.DayFilter(model.FieldCheckOutDate, today, model.StatusCheckedIn, model.StatusCheckedOut))
	if err != nil {
		log.Error().Err(err).Msg("failed to get departures")

		return res, fmt.Errorf("failed to get departures: %w", err)
	}

	res.Date = today
	res.Arrivals = dto.FromModels(arrivals)
	res.Departures = dto.FromModels(departures)

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusReserved, model.StatusCheckedIn, roomModel.StatusOccupied)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusCheckedIn, model.StatusCheckedOut, roomModel.StatusDirty)
}

// transition moves a booking from one status to the next and sets the room status that follows it.
func (s *serviceImpl) transition(ctx context.Context, id, from, to, roomStatus string) (res dto.BookingResponse, err error) {
	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != from {
		return res, failure.Conflict(fmt.Sprintf("booking is %s, expected %s", booking.Status, from))
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	changed, err := s.repo.Transition(ctx, id, from, to, user, now)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if !changed {
		return res, failure.Conflict("booking status changed by another request")
	}

	s.invalidate(ctx, id)

	if _, err = s.roomService.UpdateStatus(ctx, booking.RoomID, roomDto.UpdateStatusRequest{Status: roomStatus}); err != nil {
		log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to update room status after booking transition")

		return res, err
	}

	booking.Status = to
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, constant.CacheAnalytics)
	}()
}
