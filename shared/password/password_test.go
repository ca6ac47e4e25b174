package password_test

import (
	"strings"
	"testing"
	"vista/shared/password"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "regular password", password: "front-desk-2024"},
		{name: "unicode password", password: "kamar-tidur-日本"},
		{name: "exactly max length", password: strings.Repeat("a", password.MaxLength)},
		{name: "empty password", password: "", wantErr: password.ErrEmpty},
		{name: "over max length", password: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			assert.NoError(t, err)
			assert.NotEqual(t, tt.password, hashed)
			assert.NoError(t, password.Verify(tt.password, hashed))
			assert.False(t, password.NeedsRehash(hashed))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("same-password")
	assert.NoError(t, err)

	second, err := password.Hash("same-password")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("correct-horse")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "correct-horse", hash: hashed},
		{name: "mismatch", password: "wrong-horse", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "case sensitive", password: "Correct-Horse", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "correct-horse", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}

	t.Run("malformed hash", func(t *testing.T) {
		err := password.Verify("correct-horse", "not-a-bcrypt-hash")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, password.ErrInvalidPassword)
	})
}

func TestNeedsRehash(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	assert.NoError(t, err)

	assert.True(t, password.NeedsRehash(string(weak)))
	assert.True(t, password.NeedsRehash("garbage"))
}
