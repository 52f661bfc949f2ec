package config

import (
	"context"
	"os"
	"time"

	"EcoFeast-Backend/internal/api/handlers"
	"EcoFeast-Backend/internal/api/routes"
	"EcoFeast-Backend/internal/middleware"
	"EcoFeast-Backend/internal/utils"
	"EcoFeast-Backend/internal/utils/storage"
	"EcoFeast-Backend/pkg/donation"
	"EcoFeast-Backend/pkg/jwt"
	"EcoFeast-Backend/pkg/notification"
	"EcoFeast-Backend/pkg/pickup"
	"EcoFeast-Backend/pkg/session"
	"EcoFeast-Backend/pkg/user"
	"EcoFeast-Backend/pkg/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	store := session.NewItemStore()

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	verificationService := verification.NewVerificationService()
	notificationService := notification.NewNotificationService()
	donationService := donation.NewDonationService(
		donationRepository,
		userRepository,
		store,
		s3,
		verificationService,
		notificationService,
	)
	pickupService := pickup.NewPickupService(donationRepository, store)

	// Session store starts from the persisted donations.
	if err := donationService.WarmLoad(context.Background()); err != nil {
		log.Errorf("error warm-loading session store: %v", err)
	}

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	pickupHandler := handlers.NewPickupHandler(pickupService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		DonationHandler:     donationHandler,
		PickupHandler:       pickupHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
