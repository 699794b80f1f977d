package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/controllers"
	"github.com/serviclima/scheduling/middleware"
)

// SetupTimeBlockRoutes configures the staff-only time block routes.
func SetupTimeBlockRoutes(app *fiber.App) {
	block := app.Group("/time-blocks", middleware.Protected())
	block.Get("/", controllers.GetAllTimeBlocks)
	block.Post("/", controllers.CreateTimeBlock)
	block.Put("/:id", controllers.UpdateTimeBlock)
	block.Delete("/:id", controllers.DeleteTimeBlock)
}
