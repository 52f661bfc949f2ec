package handlers

import (
	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/internal/api/presenters"
	"EcoFeast-Backend/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		GetCurrent(c *fiber.Ctx) error
		Dismiss(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

func (h *notificationHandler) GetCurrent(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{
		"notification": h.notificationService.Current(),
	}, fiber.StatusOK, domain.MessageSuccessGetNotification)
}

func (h *notificationHandler) Dismiss(c *fiber.Ctx) error {
	h.notificationService.Dismiss()
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDismissNotification)
}
