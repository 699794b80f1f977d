package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/controllers"
	"github.com/serviclima/scheduling/middleware"
)

// SetupAvailabilityRoutes configures the public availability queries and
// the staff schedule management.
func SetupAvailabilityRoutes(app *fiber.App) {
	app.Get("/available-slots", controllers.GetAvailableSlots)
	app.Get("/appointment-types", controllers.GetAppointmentTypes)

	hours := app.Group("/business-hours", middleware.Protected())
	hours.Get("/", controllers.GetBusinessHours)
	hours.Put("/", controllers.UpdateBusinessHours)
}
