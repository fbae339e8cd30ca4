package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"coinedge/internal/storages"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrSocialAccount возвращается при попытке входа по паролю в аккаунт Google
var ErrSocialAccount = errors.New("account uses social login")

// RegisterUser регистрирует нового пользователя с паролем
func (s *WalletService) RegisterUser(ctx context.Context, name, email, password string) (*storages.User, error) {
	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorf("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &storages.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Provider:     storages.ProviderEmail,
	}

	// Уникальность email обеспечивает индекс хранилища
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storages.ErrEmailTaken) {
			return nil, storages.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infof("User registered successfully: %s", user.Email)
	return user, nil
}

// AuthenticateUser аутентифицирует пользователя по email и паролю
func (s *WalletService) AuthenticateUser(ctx context.Context, email, password string) (*storages.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Аккаунты Google не имеют пароля
	if user.PasswordHash == "" {
		return nil, ErrSocialAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warnf("Failed authentication attempt for user: %s", email)
		return nil, ErrInvalidCredentials
	}

	s.logger.Infof("User authenticated successfully: %s", email)
	return user, nil
}

// FirebaseLogin выполняет вход по ID-токену Firebase.
// Создает пользователя при первом входе или привязывает UID к существующему аккаунту.
func (s *WalletService) FirebaseLogin(ctx context.Context, idToken string) (*storages.User, error) {
	if s.verifier == nil {
		return nil, fmt.Errorf("social login is not configured")
	}

	info, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	// Сначала ищем по Firebase UID
	user, err := s.storage.GetUserByFirebaseUID(ctx, info.UID)
	if err == nil {
		// Дозаполняем поля, которых могло не быть у старых документов
		if updated, err := s.storage.EnsureUserFields(ctx, user.ID.Hex()); err != nil {
			s.logger.Warnf("Failed to ensure user fields for %s: %v", user.Email, err)
		} else if len(updated) > 0 {
			s.logger.Infof("Backfilled user fields for %s: %v", user.Email, updated)
			user, err = s.storage.GetUserByID(ctx, user.ID.Hex())
			if err != nil {
				return nil, fmt.Errorf("failed to reload user: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, storages.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Затем по email: привязываем UID к аккаунту, созданному по паролю
	user, err = s.storage.GetUserByEmail(ctx, info.Email)
	if err == nil {
		if err := s.storage.LinkFirebaseUID(ctx, user.ID.Hex(), info.UID); err != nil {
			return nil, fmt.Errorf("failed to link firebase uid: %w", err)
		}
		s.logger.Infof("Linked Firebase UID to existing account: %s", user.Email)
		return s.storage.GetUserByID(ctx, user.ID.Hex())
	}
	if !errors.Is(err, storages.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Первый вход: создаем пользователя без пароля
	user = &storages.User{
		Name:            info.Name,
		Email:           info.Email,
		Provider:        storages.ProviderGoogle,
		FirebaseUID:     info.UID,
		IsEmailVerified: true,
		ProfilePicture:  info.Picture,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infof("User registered via Google: %s", user.Email)
	return user, nil
}

// ForgotPassword создает токен сброса пароля для пользователя
func (s *WalletService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			// Не раскрываем существование аккаунта
			s.logger.Debugf("Password reset requested for unknown email: %s", email)
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token := uuid.New().String()
	expiry := time.Now().Add(s.resetTokenTTL)

	if err := s.storage.SetResetToken(ctx, user.ID.Hex(), token, expiry); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	// Отправка почты не подключена: ссылка попадает в лог
	s.logger.Infof("Password reset link for %s: %s/reset-password?token=%s", user.Email, s.clientURL, token)
	return nil
}

// ErrResetTokenInvalid возвращается для неизвестного или истекшего токена сброса
var ErrResetTokenInvalid = errors.New("reset token is invalid or expired")

// ResetPassword устанавливает новый пароль по токену сброса
func (s *WalletService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.storage.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return ErrResetTokenInvalid
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorf("Failed to hash password: %v", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.storage.UpdateUserPassword(ctx, user.ID.Hex(), string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Infof("Password reset completed for user: %s", user.Email)
	return nil
}

// GetProfile возвращает профиль пользователя
func (s *WalletService) GetProfile(ctx context.Context, userID string) (*storages.User, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
