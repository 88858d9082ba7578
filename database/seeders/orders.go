package seeders

import (
	"time"

	"gorm.io/gorm"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/app/services"
)

func init() {
	Register("orders", SeedOrders)
}

// SeedOrders inserts a couple of demo orders for local development.
// Skips seeding when the table already has rows.
func SeedOrders(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	demo := []models.Order{
		{
			OrderID:         services.GenerateOrderID(),
			FullName:        "Ravi Kumar",
			Email:           "ravi.kumar@example.com",
			Phone:           "9876543210",
			DeliveryAddress: "12 MG Road, Udupi",
			Pincode:         "576101",
			Items: models.LineItems{
				{Product: "Kulfi", Flavor: "Badam", Quantity: 2, UnitPrice: 30, Price: 60},
				{Product: "Cone", Flavor: "Butterscotch", Quantity: 1, UnitPrice: 40, Price: 40},
			},
			TotalAmount:   100,
			PaymentStatus: models.PaymentPending,
			OrderDate:     now.Add(-48 * time.Hour),
			Status:        models.StatusDelivered,
		},
		{
			OrderID:         services.GenerateOrderID(),
			FullName:        "Meera Shetty",
			Email:           "meera.shetty@example.com",
			Phone:           "9812345678",
			DeliveryAddress: "4 Car Street, Mangalore",
			Pincode:         "575001",
			AlternatePhone:  "0824223344",
			Items: models.LineItems{
				{Product: "Family Pack", Flavor: "Half Liter", Quantity: 1, UnitPrice: 120, Price: 120},
			},
			TotalAmount:   120,
			PaymentStatus: models.PaymentPendingVerification,
			OrderDate:     now,
			Status:        models.StatusPending,
		},
	}

	return db.Create(&demo).Error
}
