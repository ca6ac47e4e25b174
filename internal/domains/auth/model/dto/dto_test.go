package dto_test

import (
	"testing"
	"vista/infras/jwt"
	"vista/internal/domains/auth/model/dto"
	userModel "vista/internal/domains/user/model"
	"vista/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
		SessionID:    "session",
	}

	var response dto.TokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestSignUpRequest_ToProfileModel(t *testing.T) {
	req := dto.SignUpRequest{
		FirstName: "Maria",
		LastName:  "De Souza",
		Email:     "Maria@Hotel.com",
		Phone:     "+1 555 0100",
	}

	user := req.ToUserModel("hashed")
	profile := req.ToProfileModel(user.ID)

	assert.Equal(t, "maria@hotel.com", user.Email)
	assert.True(t, user.Active)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, constant.RoleFrontDesk, profile.Role)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Maria+De+Souza&background=random", profile.AvatarURL)
}

func TestBootstrapProfile(t *testing.T) {
	profile := dto.BootstrapProfile(userModel.User{ID: "u1", Email: "night.audit@hotel.com"})

	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "night.audit", profile.FirstName)
	assert.Empty(t, profile.LastName)
	assert.Equal(t, constant.DefaultRole, profile.Role)
	assert.Equal(t, "https://ui-avatars.com/api/?name=night.audit&background=random", profile.AvatarURL)
}
