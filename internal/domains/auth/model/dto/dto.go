package dto

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"vista/infras/jwt"
	profileModel "vista/internal/domains/profile/model"
	profileDto "vista/internal/domains/profile/model/dto"
	userModel "vista/internal/domains/user/model"
	"vista/shared/constant"
	gModel "vista/shared/model"
	"vista/shared/timezone"

	"github.com/google/uuid"
)

const defaultAvatarURL = "https://ui-avatars.com/api/?name=%s&background=random"

// DefaultAvatarURL renders the generated initials avatar for a name.
func DefaultAvatarURL(firstName, lastName string) string {
	name := url.QueryEscape(strings.TrimSpace(firstName + " " + lastName))

	return fmt.Sprintf(defaultAvatarURL, name)
}

type SignUpRequest struct {
	FirstName       string `json:"first_name"       validate:"required,max=100"`
	LastName        string `json:"last_name"        validate:"required,max=100"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"required,max=30"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (r *SignUpRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(r.Email),
		Password: hashedPassword,
		Active:   true,
		Metadata: gModel.NewMetadata(constant.ContextGuest, timezone.Now()),
	}
}

func (r *SignUpRequest) ToProfileModel(userID string) profileModel.Profile {
	return profileModel.Profile{
		ID:        userID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     strings.ToLower(r.Email),
		Phone:     r.Phone,
		Role:      constant.DefaultRole,
		AvatarURL: DefaultAvatarURL(r.FirstName, r.LastName),
		Metadata:  gModel.NewMetadata(userID, timezone.Now()),
	}
}

// BootstrapProfile builds the profile created on the first sign-in of an account that has none.
func BootstrapProfile(user userModel.User) profileModel.Profile {
	firstName, _, _ := strings.Cut(user.Email, "@")

	return profileModel.Profile{
		ID:        user.ID,
		FirstName: firstName,
		Email:     user.Email,
		Role:      constant.DefaultRole,
		AvatarURL: DefaultAvatarURL(firstName, constant.Empty),
		Metadata:  gModel.NewMetadata(constant.ContextSystem, timezone.Now()),
	}
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateLastLoginRequest carries Password only when the stored hash is being upgraded.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
	Password  string    `db:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type SignInResponse struct {
	TokenResponse
	Profile profileDto.ProfileResponse `json:"profile"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
