package database

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/table-orders/models"
	"github.com/yeremiapane/table-orders/utils"
)

// AutoMigrate creates or updates the orders table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.OrderItem{}); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
