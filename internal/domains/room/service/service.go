package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"vista/config"
	"vista/infras/otel"
	activityModel "vista/internal/domains/activity/model"
	activityService "vista/internal/domains/activity/service"
	"vista/internal/domains/room/model"
	"vista/internal/domains/room/model/dto"
	"vista/internal/domains/room/repository"
	logDto "vista/internal/domains/shiftlog/model/dto"
	logService "vista/internal/domains/shiftlog/service"
	"vista/shared"
	"vista/shared/cache"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"
	"vista/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom     = "room:get"
	cacheGetAllRoom  = "room:get_all"
	cacheSummaryRoom = "room:summary"
)

type Room interface {
	GetAll(ctx context.Context, filter dto.ListFilter) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.RoomResponse, error)
	CreateServiceRequest(ctx context.Context, id string, req dto.ServiceRequest) (logDto.LogResponse, error)
}

type serviceImpl struct {
	repo       repository.Room
	logService logService.Log
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	publisher  activityService.Publisher
}

func New(
	repo repository.Room,
	logService logService.Log,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher activityService.Publisher,
) Room {
	return &serviceImpl{
		repo:       repo,
		logService: logService,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		publisher:  publisher,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.ListFilter) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	prefix := cacheGetAllRoom
	if filter.Floor != nil {
		prefix = shared.BuildCacheKey(cacheGetAllRoom, "floor", strconv.Itoa(*filter.Floor))
	}

	cacheKey := shared.BuildCacheKeyWithQuery(prefix, gDto.QueryParams{}, filter.FilterGroup())

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter.FilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	if filter.Floor != nil {
		onFloor := make([]model.Room, 0, len(rooms))

		for _, room := range rooms {
			if room.Floor() == *filter.Floor {
				onFloor = append(onFloor, room)
			}
		}

		rooms = onFloor
	}

	model.SortByNumber(rooms)
	res.FromModels(rooms)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheSummaryRoom, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheSummaryRoom).Msg("cache hit for room summary")

		return res, nil
	}

	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheSummaryRoom, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room summary to cache")
		}
	}()

	return res, nil
}

// Availability reports the rooms that are vacant right now. Future bookings are not consulted.
func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	nights, err := req.Nights()
	if err != nil {
		return res, err
	}

	counts, err := s.repo.CountByType(ctx, model.StatusVacant)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vacant rooms")

		return res, fmt.Errorf("failed to count vacant rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{}, dto.ListFilter{Status: model.StatusVacant}.FilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get vacant rooms")

		return res, fmt.Errorf("failed to get vacant rooms: %w", err)
	}

	model.SortByNumber(rooms)
	res.FromModels(req, nights, counts, rooms)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	room := req.ToModel(user)

	exist, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{gDto.Filter{
			Field:    model.FieldRoomNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    room.RoomNumber,
			Table:    model.TableName,
		}},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return res, fmt.Errorf("failed to check room number: %w", err)
	}

	if exist {
		return res, failure.Conflict("room " + room.RoomNumber + " already exists")
	}

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(room)

	return res, nil
}

// UpdateStatus writes any known status regardless of the current one.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if room, err = s.setStatus(ctx, room, req.Status); err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

// CreateServiceRequest files a housekeeping or maintenance request as a shift log entry.
// Maintenance requests also take the room out of service.
func (s *serviceImpl) CreateServiceRequest(ctx context.Context, id string, req dto.ServiceRequest) (res logDto.LogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateServiceRequest")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res, err = s.logService.Create(ctx, logDto.CreateLogRequest{
		Title:   req.Title(room.RoomNumber),
		Message: req.Message(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to record service request")

		return res, err
	}

	if req.Kind == model.RequestMaintenance && room.Status != model.StatusMaintenance {
		if _, err = s.setStatus(ctx, room, model.StatusMaintenance); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found")
	}

	return room, nil
}

func (s *serviceImpl) setStatus(ctx context.Context, room model.Room, status string) (model.Room, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	update := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, update, shared.FilterByID(room.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room status")

		return room, fmt.Errorf("failed to update room status: %w", err)
	}

	log.Info().Str("room", room.RoomNumber).Str("from", room.Status).Str("to", status).Msg("room status changed")

	room.Status = status
	room.ModifiedAt = now
	room.ModifiedBy = user

	s.invalidate(ctx, room.ID)
	s.publisher.Publish(ctx, activityModel.EventRoomStatusChanged, user, room.ID)

	return room, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheSummaryRoom)
	}()
}
