package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coinedge/internal/service"
	"coinedge/internal/storages"
	"coinedge/pkg/response"
)

// ContactHandler обработчик формы обратной связи
type ContactHandler struct {
	service *service.WalletService
	logger  *logrus.Logger
}

// NewContactHandler создает новый обработчик обратной связи
func NewContactHandler(service *service.WalletService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger,
	}
}

// ContactRequest сообщение из формы обратной связи
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// SubmitMessage сохраняет обращение пользователя
// @Summary Submit contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact message"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/contact [post]
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	msg := &storages.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := h.service.SubmitContactMessage(c.Request.Context(), msg); err != nil {
		h.logger.Errorf("Failed to save contact message: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to save message")
		return
	}

	response.WriteSuccess(c, http.StatusCreated, "Message received", nil)
}
