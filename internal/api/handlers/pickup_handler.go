package handlers

import (
	"errors"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/internal/api/presenters"
	"EcoFeast-Backend/pkg/pickup"

	"github.com/gofiber/fiber/v2"
)

type (
	PickupHandler interface {
		AcceptItem(c *fiber.Ctx) error
		AdvanceItem(c *fiber.Ctx) error
	}

	pickupHandler struct {
		pickupService pickup.PickupService
	}
)

func NewPickupHandler(pickupService pickup.PickupService) PickupHandler {
	return &pickupHandler{pickupService: pickupService}
}

func (h *pickupHandler) AcceptItem(c *fiber.Ctx) error {
	ngoID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	item, err := h.pickupService.Accept(c.Context(), itemID, ngoID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			status = fiber.StatusNotFound
		} else if errors.Is(err, domain.ErrPickupInProgress) {
			status = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedAcceptItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessAcceptItem)
}

func (h *pickupHandler) AdvanceItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.pickupService.Advance(c.Context(), itemID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedAdvanceItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessAdvanceItem)
}
