package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/controllers"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/login", controllers.Login)
}
