package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/controllers"
	"github.com/serviclima/scheduling/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes.
// Creation is public (the booking wizard posts unauthenticated); reads and
// mutations are staff-only.
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/", middleware.Protected(), controllers.GetAllAppointments)
	appointment.Get("/:id", middleware.Protected(), controllers.GetAppointment)
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Put("/:id", middleware.Protected(), controllers.UpdateAppointment)
	appointment.Delete("/:id", middleware.Protected(), controllers.DeleteAppointment)
}
