package db

import (
	"fmt"
	"log"

	"github.com/serviclima/scheduling/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Appointment{},
		&models.TimeBlock{},
		&models.BusinessHours{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedBusinessHours()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedBusinessHours inserts the default weekly schedule for any weekday
// that has no row yet.
func seedBusinessHours() {
	for _, hours := range models.DefaultBusinessHours() {
		var existing models.BusinessHours
		if DB.Where("day_of_week = ?", hours.DayOfWeek).First(&existing).RowsAffected == 0 {
			DB.Create(&hours)
		}
	}
}
