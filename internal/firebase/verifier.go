package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// UserInfo данные пользователя из проверенного ID-токена
type UserInfo struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// Verifier проверяет ID-токены через Firebase Admin SDK
type Verifier struct {
	client *auth.Client
	logger *logrus.Logger
}

// NewVerifier создает новый Verifier с сервисным аккаунтом Firebase
func NewVerifier(ctx context.Context, credentialsFile string, logger *logrus.Logger) (*Verifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	logger.Info("Firebase token verifier initialized")

	return &Verifier{
		client: client,
		logger: logger,
	}, nil
}

// Verify проверяет ID-токен и возвращает данные пользователя
func (v *Verifier) Verify(ctx context.Context, idToken string) (*UserInfo, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.logger.Warnf("Firebase token verification failed: %v", err)
		return nil, fmt.Errorf("invalid firebase token: %w", err)
	}

	info := &UserInfo{UID: token.UID}

	if email, ok := token.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		info.Picture = picture
	}

	return info, nil
}
