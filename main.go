package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/serviclima/scheduling/cron"
	"github.com/serviclima/scheduling/db"
	"github.com/serviclima/scheduling/redis"
	"github.com/serviclima/scheduling/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("serviclima scheduling API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupTimeBlockRoutes(app)
	routes.SetupAvailabilityRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
