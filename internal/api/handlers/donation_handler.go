package handlers

import (
	"errors"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/internal/api/presenters"
	"EcoFeast-Backend/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		VerifyImage(c *fiber.Ctx) error
		SubmitDonation(c *fiber.Ctx) error
		GetFoodItems(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		GetImpactStats(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) VerifyImage(c *fiber.Ctx) error {
	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyImage, domain.ErrMissingFoodImage)
	}

	result, err := h.donationService.VerifyImage(c.Context(), image)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyImage, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessVerifyImage)
}

func (h *donationHandler) SubmitDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubmitDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image, _ = c.FormFile("image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitDonation, err)
	}

	tracker := donation.NewProgressTracker()
	item, err := h.donationService.SubmitDonation(c.Context(), *req, userID, tracker)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitDonation, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"item":   item,
		"stages": tracker.Stages(),
	}, fiber.StatusCreated, domain.MessageSuccessSubmitDonation)
}

func (h *donationHandler) GetFoodItems(c *fiber.Ctx) error {
	bucket := c.Query("bucket")

	items, err := h.donationService.GetFoodItems(c.Context(), bucket)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
	}, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *donationHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, domain.ErrFoodItemNotFound)
	}

	item, err := h.donationService.GetFoodItemByID(c.Context(), itemID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItem)
}

func (h *donationHandler) GetImpactStats(c *fiber.Ctx) error {
	stats, err := h.donationService.GetImpactStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetImpact, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetImpact)
}
