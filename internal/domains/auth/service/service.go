package service

import (
	"context"
	"fmt"
	"strings"
	"vista/config"
	"vista/infras/jwt"
	"vista/infras/otel"
	activityModel "vista/internal/domains/activity/model"
	activityService "vista/internal/domains/activity/service"
	"vista/internal/domains/auth/model/dto"
	profileModel "vista/internal/domains/profile/model"
	profileDto "vista/internal/domains/profile/model/dto"
	profileRepo "vista/internal/domains/profile/repository"
	sessionRepo "vista/internal/domains/session/repository"
	userModel "vista/internal/domains/user/model"
	userRepo "vista/internal/domains/user/repository"
	"vista/shared"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"
	"vista/shared/password"
	"vista/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const errInvalidCredentials = "invalid email or password"

type Auth interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) error
	SignIn(ctx context.Context, req dto.SignInRequest) (dto.SignInResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	SignOut(ctx context.Context, accessToken string) error
	Me(ctx context.Context) (profileDto.ProfileResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo    userRepo.User
	profileRepo profileRepo.Profile
	sessionRepo sessionRepo.Session
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
	publisher   activityService.Publisher
}

func New(
	userRepo userRepo.User,
	profileRepo profileRepo.Profile,
	sessionRepo sessionRepo.Session,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
	publisher activityService.Publisher,
) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwt,
		publisher:   publisher,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(email),
				Table:    userModel.TableName,
			},
		},
	}
}

// SignUp creates the credential row and its profile in one transaction.
func (s *serviceImpl) SignUp(ctx context.Context, req dto.SignUpRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SignUp")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	err = s.userRepo.Register(ctx, user, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.profileRepo.InsertTx(ctx, tx, req.ToProfileModel(user.ID))
	})
	if err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to register user")

		return fmt.Errorf("failed to register user: %w", err)
	}

	return nil
}

func (s *serviceImpl) SignIn(ctx context.Context, req dto.SignInRequest) (res dto.SignInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SignIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := emailFilter(req.Email)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("sign in attempt with non-existent email")

		return res, failure.BadRequestFromString(errInvalidCredentials)
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("sign in attempt with wrong password")

		return res, failure.BadRequestFromString(errInvalidCredentials)
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated")
	}

	profile, err := s.ensureProfile(ctx, user)
	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, profile.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if password.NeedsRehash(user.Password) {
		if rehashed, err := password.Hash(req.Password); err == nil {
			lastLogin.Password = rehashed
		} else {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade password hash")
		}
	}

	if err = s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), filter); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	s.publisher.Publish(ctx, activityModel.EventProfileSignedIn, user.ID, tokenPair.SessionID)

	res.FromTokenPair(tokenPair)
	res.Profile.FromModel(profile)

	return res, nil
}

// ensureProfile creates a profile from the credential email on first sign-in. Two concurrent
// first sign-ins may both try to insert; the loser fails on the primary key.
func (s *serviceImpl) ensureProfile(ctx context.Context, user userModel.User) (profileModel.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(user.ID, profileModel.FieldID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return profile, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID != constant.Empty {
		return profile, nil
	}

	profile = dto.BootstrapProfile(user)

	if err = s.profileRepo.Insert(ctx, profile); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to bootstrap profile")

		return profile, fmt.Errorf("failed to bootstrap profile: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("bootstrapped missing profile on sign in")

	return profile, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh with invalid token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		log.Warn().Str("user_id", claims.UserID).Msg("refresh for missing or deactivated user")

		return res, failure.Unauthorized("user account is deactivated")
	}

	profile, err := s.ensureProfile(ctx, user)
	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.RefreshTokens(ctx, claims, profile.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh tokens")

		return res, fmt.Errorf("failed to refresh tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// SignOut revokes the access token and drops the navigation state of its session.
func (s *serviceImpl) SignOut(ctx context.Context, accessToken string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SignOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(ctx, accessToken, jwt.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("sign out with invalid token")

		return failure.Unauthorized("invalid or expired token")
	}

	if err = s.jwtService.Revoke(ctx, claims); err != nil {
		log.Error().Err(err).Str("token_id", claims.TokenID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if err = s.sessionRepo.Delete(ctx, claims.SessionID); err != nil {
		log.Warn().Err(err).Str("session_id", claims.SessionID).Msg("failed to clear session state")
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (res profileDto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(userID, profileModel.FieldID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("profile not found")
	}

	res.FromModel(profile)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
