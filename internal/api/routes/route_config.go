package routes

import (
	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/internal/api/handlers"
	"EcoFeast-Backend/internal/middleware"
	"EcoFeast-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	DonationHandler     handlers.DonationHandler
	PickupHandler       handlers.PickupHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Donations()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))

	// Donor-side submission flow
	donations.Post("/verify", c.Middleware.RequireRole(domain.RoleDonor), c.DonationHandler.VerifyImage)
	donations.Post("", c.Middleware.RequireRole(domain.RoleDonor), c.DonationHandler.SubmitDonation)

	// Shared listings
	donations.Get("", c.DonationHandler.GetFoodItems)
	donations.Get("/:id", c.DonationHandler.GetFoodItemDetails)

	// NGO-side pickup lifecycle
	donations.Post("/:id/accept", c.Middleware.RequireRole(domain.RoleNGO), c.PickupHandler.AcceptItem)
	donations.Post("/:id/advance", c.Middleware.RequireRole(domain.RoleNGO), c.PickupHandler.AdvanceItem)

	c.App.Get("/api/v1/impact", c.Middleware.AuthMiddleware(c.JWTService), c.DonationHandler.GetImpactStats)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	{
		notifications.Get("/current", c.NotificationHandler.GetCurrent)
		notifications.Delete("/current", c.NotificationHandler.Dismiss)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}
