package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"
	"vista/config"
	"vista/infras/otel"
	"vista/infras/s3"
	"vista/internal/domains/profile/model"
	"vista/internal/domains/profile/model/dto"
	"vista/internal/domains/profile/repository"
	"vista/shared"
	"vista/shared/cache"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetProfile    = "profile:get"
	cacheGetAllProfile = "profile:get_all"
	cacheCountProfile  = "profile:count"
)

const maxAvatarSize = 5 << 20

var avatarMimeTypes = []string{"image/png", "image/jpeg"}

type Profile interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProfilesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ProfileResponse, error)
	Update(ctx context.Context, req dto.UpdateProfileRequest, id string) error
	UploadAvatar(ctx context.Context, req dto.UploadAvatarRequest, id string) (dto.ProfileResponse, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

type serviceImpl struct {
	repo  repository.Profile
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Profile {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProfilesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.OrderBy(model.TableName+"."+model.FieldFirstName, gDto.SortDirAsc,
		model.TableName+"."+model.FieldFirstName,
		model.TableName+"."+model.FieldLastName,
		model.TableName+"."+model.FieldRole,
		model.TableName+"."+constant.FieldCreatedAt,
	)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProfile, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profiles")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count profiles")

		return res, err
	}

	profiles, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profiles")

		return res, err
	}

	res.FromModels(profiles, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profiles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProfile, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profile count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count profiles")

		return total, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProfile, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	profile, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("profile not found")
	}

	res.FromModel(profile)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProfileRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if err = authorizeEdit(user, role, id); err != nil {
		return err
	}

	if req.Role != constant.Empty && role != constant.RoleManager {
		return failure.Forbidden("only a manager can change roles")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check profile existence")

		return err
	}

	if !exist {
		log.Error().Str("id", id).Msg("profile not found")

		return failure.NotFound("profile not found")
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UploadAvatar(ctx context.Context, req dto.UploadAvatarRequest, id string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadAvatar")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if err = authorizeEdit(user, role, id); err != nil {
		return res, err
	}

	image, err := readAvatar(req.AvatarFile)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	profile, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile for avatar upload")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("profile not found")
	}

	fileName := fmt.Sprintf("%s-%s%s", id, uuid.NewString(), image.ext)

	url, err := s.s3.Upload(ctx, s.cfg.External.S3.AvatarDirectory, fileName, image.contentType, image.data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload avatar to S3")

		return res, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err = s.repo.Update(ctx, dto.AvatarFields(url, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update avatar url")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	previous := s.s3.ObjectKeyFromURL(profile.AvatarURL)
	profile.AvatarURL = url
	res.FromModel(profile)

	s.invalidate(ctx, id)

	if previous != constant.Empty {
		go func() {
			if err := s.s3.Delete(context.WithoutCancel(ctx), previous); err != nil {
				log.Error().Err(err).Str("objectKey", previous).Msg("failed to delete previous avatar")
			}
		}()
	}

	return res, nil
}

func (s *serviceImpl) Touch(ctx context.Context, id string, at time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Touch")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Update(ctx, dto.TouchFields(at), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to touch profile")

		return fmt.Errorf("failed to touch profile: %w", err)
	}

	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetProfile, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile cache")
		}
	}()

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProfile, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProfile)
		shared.InvalidateCaches(c, s.cache, cacheCountProfile)
	}()
}

// authorizeEdit allows a caller to edit their own profile; a manager may edit anyone.
func authorizeEdit(user, role, id string) error {
	if user == id || role == constant.RoleManager {
		return nil
	}

	return failure.Forbidden("you can only edit your own profile")
}

type avatar struct {
	data        []byte
	ext         string
	contentType string
}

// readAvatar buffers the upload and sniffs its type from the bytes. The client's Content-Type and file name are
// ignored.
func readAvatar(file io.Reader) (avatar, error) {
	if file == nil {
		return avatar{}, failure.BadRequestFromString("avatar is required")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize+1))
	if err != nil {
		return avatar{}, failure.BadRequest(fmt.Errorf("failed to read avatar: %w", err))
	}

	if len(data) > maxAvatarSize {
		return avatar{}, failure.BadRequestFromString("avatar must be at most 5 MB")
	}

	detected := mimetype.Detect(data)
	if !slices.ContainsFunc(avatarMimeTypes, detected.Is) {
		return avatar{}, failure.BadRequestFromString("avatar must be a png or jpeg image")
	}

	return avatar{data: data, ext: detected.Extension(), contentType: detected.String()}, nil
}
