package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/db"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/redis"
	"github.com/serviclima/scheduling/utils"
)

func GetBusinessHours(c *fiber.Ctx) error {
	var hours []models.BusinessHours
	if err := db.DB.Order("day_of_week asc").Find(&hours).Error; err != nil {
		log.Printf("Failed to fetch business hours: %v", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch business hours")
	}
	return utils.Success(c, hours)
}

// UpdateBusinessHours replaces the schedule for one weekday.
func UpdateBusinessHours(c *fiber.Ctx) error {
	var input models.BusinessHours
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if input.DayOfWeek < models.Sunday || input.DayOfWeek > models.Saturday {
		return utils.Fail(c, fiber.StatusBadRequest, "day_of_week must be 0-6")
	}
	if input.IsWorkDay {
		span, err := utils.MinutesBetween(input.OpenTime, input.CloseTime)
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		if span <= 0 {
			return utils.Fail(c, fiber.StatusBadRequest, "open time must be before close time")
		}
	}

	var hours models.BusinessHours
	if err := db.DB.Where("day_of_week = ?", input.DayOfWeek).First(&hours).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "No schedule for that weekday")
	}
	hours.OpenTime = input.OpenTime
	hours.CloseTime = input.CloseTime
	hours.IsWorkDay = input.IsWorkDay
	hours.BreakStart = input.BreakStart
	hours.BreakEnd = input.BreakEnd
	if err := db.DB.Save(&hours).Error; err != nil {
		log.Printf("Failed to update business hours: %v", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update business hours")
	}
	redis.InvalidateSlots()
	return utils.Success(c, hours)
}
