package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-notification-service/internal/api/dto"
	"github.com/spec-kit/user-notification-service/internal/service"
	apperrors "github.com/spec-kit/user-notification-service/pkg/util"
)

// NotificationsHandler exposes notification CRUD.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// Create handles POST /notifications.
func (h *NotificationsHandler) Create(c *fiber.Ctx) error {
	var req dto.NotificationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	n, err := h.notifications.Create(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// List handles GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	items, err := h.notifications.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Get handles GET /notifications/:notificationId.
func (h *NotificationsHandler) Get(c *fiber.Ctx) error {
	n, err := h.notifications.Get(c.UserContext(), c.Params("notificationId"))
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// Update handles PUT /notifications/:notificationId.
func (h *NotificationsHandler) Update(c *fiber.Ctx) error {
	var req dto.NotificationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	n, err := h.notifications.Update(c.UserContext(), c.Params("notificationId"), req)
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// Delete handles DELETE /notifications/:notificationId.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	result, err := h.notifications.Delete(c.UserContext(), c.Params("notificationId"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
