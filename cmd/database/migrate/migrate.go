package migration

import (
	"fmt"
	"log"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		log.Fatalf("Error migrating food item database: %v", err)
		return err
	}

	if err := seedDonations(db); err != nil {
		log.Fatalf("Error seeding donations: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// seedDonations loads the demo listings on an empty database.
func seedDonations(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.FoodItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []*entities.FoodItem{
		{
			ID:        uuid.New(),
			Name:      "Fresh Lunch Packets",
			Category:  "Prepared Meals",
			Quantity:  "20 Plates",
			Expiry:    "Today, 8 PM",
			Status:    string(domain.StatusAvailable),
			DonorName: "Main Street Cafe",
			ImageURL:  "https://picsum.photos/seed/food1/400/300",
		},
		{
			ID:        uuid.New(),
			Name:      "Bread & Pastries",
			Category:  "Bakery",
			Quantity:  "5 Kg",
			Expiry:    "Tomorrow",
			Status:    string(domain.StatusNotified),
			DonorName: "Sunny Bakery",
			ImageURL:  "https://picsum.photos/seed/food2/400/300",
		},
	}

	for _, item := range seed {
		if err := db.Create(item).Error; err != nil {
			return err
		}
	}
	return nil
}
