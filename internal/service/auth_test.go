package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinedge/internal/firebase"
	"coinedge/internal/storages"
)

func TestRegisterUser(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, storages.ProviderEmail, user.Provider)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// Повторная регистрация с тем же email
	_, err = svc.RegisterUser(ctx, "Another", "test@example.com", "password456")
	assert.ErrorIs(t, err, storages.ErrEmailTaken)
}

func TestAuthenticateUser(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)

	user, err := svc.AuthenticateUser(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Test User", user.Name)

	_, err = svc.AuthenticateUser(ctx, "test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(ctx, "unknown@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUserSocialAccount(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	// Аккаунт Google без пароля
	user := &storages.User{
		Name:        "Google User",
		Email:       "google@example.com",
		Provider:    storages.ProviderGoogle,
		FirebaseUID: "firebase-uid-1",
	}
	require.NoError(t, storage.CreateUser(ctx, user))

	_, err := svc.AuthenticateUser(ctx, "google@example.com", "anything")
	assert.ErrorIs(t, err, ErrSocialAccount)
}

// stubVerifier возвращает заранее заданные данные пользователя
type stubVerifier struct {
	info *firebase.UserInfo
	err  error
}

func (v *stubVerifier) Verify(ctx context.Context, idToken string) (*firebase.UserInfo, error) {
	return v.info, v.err
}

func TestFirebaseLoginCreatesUser(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	svc.verifier = &stubVerifier{info: &firebase.UserInfo{
		UID:     "uid-123",
		Email:   "new@example.com",
		Name:    "New User",
		Picture: "https://example.com/pic.png",
	}}
	ctx := context.Background()

	user, err := svc.FirebaseLogin(ctx, "some-token")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, storages.ProviderGoogle, user.Provider)
	assert.Equal(t, "uid-123", user.FirebaseUID)
	assert.True(t, user.IsEmailVerified)

	// Повторный вход находит того же пользователя
	again, err := svc.FirebaseLogin(ctx, "some-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestFirebaseLoginLinksExistingAccount(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)

	svc.verifier = &stubVerifier{info: &firebase.UserInfo{
		UID:   "uid-456",
		Email: "test@example.com",
		Name:  "Test User",
	}}

	user, err := svc.FirebaseLogin(ctx, "some-token")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "uid-456", user.FirebaseUID)
	assert.Equal(t, storages.ProviderGoogle, user.Provider)

	// Пароль сохраняется, вход по нему по-прежнему работает
	_, err = svc.AuthenticateUser(ctx, "test@example.com", "password123")
	assert.NoError(t, err)
}

func TestResetPasswordFlow(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "oldpassword")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "test@example.com"))

	stored, err := storage.GetUserByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetToken)

	require.NoError(t, svc.ResetPassword(ctx, stored.ResetToken, "newpassword"))

	// Старый пароль больше не подходит
	_, err = svc.AuthenticateUser(ctx, "test@example.com", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(ctx, "test@example.com", "newpassword")
	assert.NoError(t, err)

	// Токен одноразовый
	err = svc.ResetPassword(ctx, stored.ResetToken, "anotherpassword")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, storage.SetResetToken(ctx, user.ID.Hex(), "expired-token", expired))

	err = svc.ResetPassword(ctx, "expired-token", "newpassword")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)

	// Неизвестный email не раскрывается ошибкой
	err := svc.ForgotPassword(context.Background(), "unknown@example.com")
	assert.NoError(t, err)
}
