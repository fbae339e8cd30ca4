package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coinedge/internal/api/middleware"
	"coinedge/internal/service"
	"coinedge/internal/storages"
	"coinedge/pkg/response"
)

// AuthHandler обработчик для аутентификации
type AuthHandler struct {
	service       *service.WalletService
	jwtMiddleware *middleware.JWTMiddleware
	tokenTTL      time.Duration
	logger        *logrus.Logger
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(service *service.WalletService, jwtMiddleware *middleware.JWTMiddleware, tokenTTL time.Duration, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service:       service,
		jwtMiddleware: jwtMiddleware,
		tokenTTL:      tokenTTL,
		logger:        logger,
	}
}

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// LoginRequest запрос на авторизацию
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FirebaseLoginRequest запрос на вход через Google
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// ForgotPasswordRequest запрос на сброс пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest запрос на установку нового пароля
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// AuthResponse ответ с токеном и данными пользователя
type AuthResponse struct {
	Token string         `json:"token"`
	User  *storages.User `json:"user"`
}

// issueToken генерирует JWT и формирует ответ авторизации
func (h *AuthHandler) issueToken(c *gin.Context, status int, message string, user *storages.User) {
	token, err := h.jwtMiddleware.GenerateToken(user.ID.Hex(), user.Email, user.Name, h.tokenTTL)
	if err != nil {
		h.logger.Errorf("Failed to generate token: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	response.WriteSuccess(c, status, message, AuthResponse{Token: token, User: user})
}

// Register регистрирует нового пользователя
// @Summary Register a new user
// @Description Register a new user with name, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, storages.ErrEmailTaken) {
			response.WriteError(c, http.StatusConflict, "Email already registered")
			return
		}
		h.logger.Errorf("Failed to register user: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	h.issueToken(c, http.StatusCreated, "User registered successfully", user)
}

// Login авторизует пользователя
// @Summary Login user
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrSocialAccount) {
			response.WriteError(c, http.StatusUnauthorized, "This account uses Google sign-in")
			return
		}
		response.WriteError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.issueToken(c, http.StatusOK, "Login successful", user)
}

// FirebaseLogin авторизует пользователя по ID-токену Firebase
// @Summary Login with Google
// @Description Verify Firebase ID token and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body FirebaseLoginRequest true "Firebase ID token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/firebase/verify [post]
func (h *AuthHandler) FirebaseLogin(c *gin.Context) {
	var req FirebaseLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.service.FirebaseLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		h.logger.Warnf("Firebase login failed: %v", err)
		response.WriteError(c, http.StatusUnauthorized, "Invalid Firebase token")
		return
	}

	h.issueToken(c, http.StatusOK, "Login successful", user)
}

// ValidateToken проверяет валидность JWT токена
// @Summary Validate JWT token
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/validate-token [post]
// @Security BearerAuth
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "User not found")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "Token is valid", user)
}

// ForgotPassword запрашивает ссылку на сброс пароля
// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.logger.Errorf("Failed to process password reset: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to process request")
		return
	}

	// Ответ одинаков для любого email
	response.WriteSuccess(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword устанавливает новый пароль по токену
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			response.WriteError(c, http.StatusBadRequest, "Reset token is invalid or expired")
			return
		}
		h.logger.Errorf("Failed to reset password: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "Password updated successfully", nil)
}
