package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"vista/config"
	"vista/infras/otel"
	activityModel "vista/internal/domains/activity/model"
	activityService "vista/internal/domains/activity/service"
	profileModel "vista/internal/domains/profile/model"
	profileRepo "vista/internal/domains/profile/repository"
	"vista/internal/domains/shiftlog/model"
	"vista/internal/domains/shiftlog/model/dto"
	"vista/internal/domains/shiftlog/repository"
	"vista/shared"
	"vista/shared/cache"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllLog = "log:get_all"
	cacheCountLog  = "log:count"
)

type Log interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLogsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Create(ctx context.Context, req dto.CreateLogRequest) (dto.LogResponse, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Log
	profileRepo profileRepo.Profile
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	publisher   activityService.Publisher
}

func New(
	repo repository.Log,
	profileRepo profileRepo.Profile,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher activityService.Publisher,
) Log {
	return &serviceImpl{
		repo:        repo,
		profileRepo: profileRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		publisher:   publisher,
	}
}

// GetAll lists entries newest first. Responses carry is_read for the caller, so the cache
// key is scoped to the viewer.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	viewer, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req.SortBy = model.TableName + "." + constant.FieldCreatedAt
	req.SortDir = gDto.SortDirDesc

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllLog, viewer), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for logs")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count logs")

		return res, err
	}

	logs, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get logs")

		return res, err
	}

	res.FromModels(logs, viewer, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save logs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLog, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for log count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count logs")

		return total, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save log count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLogRequest) (res dto.LogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	author, err := s.profileRepo.Get(ctx, shared.FilterByID(user, profileModel.FieldID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get author profile")

		return res, fmt.Errorf("failed to get author profile: %w", err)
	}

	if author.ID == constant.Empty {
		return res, failure.NotFound("profile not found")
	}

	entry := req.ToModel(dto.Author{ID: author.ID, Name: author.FullName(), Role: author.Role})

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to create log")

		return res, fmt.Errorf("failed to create log: %w", err)
	}

	s.invalidate(ctx)
	s.publisher.Publish(ctx, activityModel.EventLogCreated, user, entry.ID)

	res.FromModel(entry, user)

	return res, nil
}

// MarkRead adds the caller to read_by. Existing duplicates are collapsed and the row is
// left untouched when nothing changes.
func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	entry, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get log")

		return fmt.Errorf("failed to get log: %w", err)
	}

	if entry.ID == constant.Empty {
		return failure.NotFound("log not found")
	}

	readBy := AddReader(entry.ReadBy, user)
	if slices.Equal(readBy, []string(entry.ReadBy)) {
		return nil
	}

	update := map[string]any{model.FieldReadBy: pq.StringArray(readBy)}
	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark log as read")

		return fmt.Errorf("failed to mark log as read: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	entry, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get log")

		return fmt.Errorf("failed to get log: %w", err)
	}

	if entry.ID == constant.Empty {
		return failure.NotFound("log not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete log")

		return fmt.Errorf("failed to delete log: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllLog)
		shared.InvalidateCaches(c, s.cache, cacheCountLog)
	}()
}

// AddReader returns readBy in first-seen order without duplicates and with reader present.
func AddReader(readBy []string, reader string) []string {
	seen := mapset.NewThreadUnsafeSetWithSize[string](len(readBy) + 1)
	res := make([]string, 0, len(readBy)+1)

	for _, id := range append(slices.Clone(readBy), reader) {
		if id == constant.Empty || !seen.Add(id) {
			continue
		}

		res = append(res, id)
	}

	return res
}
