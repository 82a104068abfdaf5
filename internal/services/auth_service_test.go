package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t, nil)

	user, err := env.auth.Register(RegisterInput{Username: "ana", Email: "Ana@X.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "ana@x.com", user.Email)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, utils.CheckPassword("secret1", stored.PasswordHash))
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createUser(t, "ana")

	_, err := env.auth.Register(RegisterInput{Username: "ana", Email: "other@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = env.auth.Register(RegisterInput{Username: "other", Email: "ana@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"missing password", RegisterInput{Username: "ana", Email: "ana@x.com"}, ErrMissingRegistrationFields},
		{"blank username", RegisterInput{Username: "  ", Email: "ana@x.com", Password: "secret1"}, ErrMissingRegistrationFields},
		{"short username", RegisterInput{Username: "an", Email: "ana@x.com", Password: "secret1"}, ErrUsernameTooShort},
		{"bad email", RegisterInput{Username: "ana", Email: "ana", Password: "secret1"}, ErrInvalidEmail},
		{"short password", RegisterInput{Username: "ana", Email: "ana@x.com", Password: "123"}, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	env := newTestEnv(t, nil)
	user := env.createUser(t, "ana")

	result, err := env.auth.Authenticate(LoginInput{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := utils.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthService_Authenticate_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createUser(t, "ana")

	_, unknownErr := env.auth.Authenticate(LoginInput{Email: "nobody@x.com", Password: "secret1"})
	_, wrongErr := env.auth.Authenticate(LoginInput{Email: "ana@x.com", Password: "wrong-pass"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	_, err := env.auth.Authenticate(LoginInput{Email: "ana@x.com"})
	assert.ErrorIs(t, err, ErrMissingLoginFields)
}

func TestAuthService_GetUser(t *testing.T) {
	env := newTestEnv(t, nil)
	user := env.createUser(t, "ana")

	found, err := env.auth.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", found.Username)

	_, err = env.auth.GetUser(user.ID + 100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
