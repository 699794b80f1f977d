package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/db"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/redis"
	"github.com/serviclima/scheduling/utils"
)

func GetAllTimeBlocks(c *fiber.Ctx) error {
	query := db.DB.Model(&models.TimeBlock{})
	if date := c.Query("date"); date != "" {
		query = query.Where("scheduled_date = ?", date)
	}
	var blocks []models.TimeBlock
	if err := query.Order("scheduled_date asc, start_time asc").Find(&blocks).Error; err != nil {
		log.Printf("Failed to fetch time blocks: %v", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch time blocks")
	}
	return utils.Success(c, blocks)
}

func CreateTimeBlock(c *fiber.Ctx) error {
	var block models.TimeBlock
	if err := c.BodyParser(&block); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if err := block.Validate(); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := db.DB.Create(&block).Error; err != nil {
		log.Printf("Failed to create time block: %v", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create time block")
	}
	redis.InvalidateSlots()
	return utils.Created(c, block)
}

// TimeBlockUpdate is the partial PUT payload for a time block.
type TimeBlockUpdate struct {
	Title         *string           `json:"title"`
	Description   *string           `json:"description"`
	ScheduledDate *string           `json:"scheduled_date"`
	StartTime     *string           `json:"start_time"`
	EndTime       *string           `json:"end_time"`
	BlockType     *models.BlockType `json:"block_type"`
	Notes         *string           `json:"notes"`
	Color         *string           `json:"color"`
	Version       uint              `json:"version"`
}

func UpdateTimeBlock(c *fiber.Ctx) error {
	id := c.Params("id")
	var update TimeBlockUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	var block models.TimeBlock
	if err := db.DB.First(&block, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Time block not found")
	}
	if err := checkVersion(update.Version, block.Version); err != nil {
		return utils.Fail(c, versionFailStatus(err), err.Error())
	}

	if update.Title != nil {
		block.Title = *update.Title
	}
	if update.Description != nil {
		block.Description = *update.Description
	}
	if update.ScheduledDate != nil {
		block.ScheduledDate = *update.ScheduledDate
	}
	if update.StartTime != nil {
		block.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		block.EndTime = *update.EndTime
	}
	if update.BlockType != nil {
		if !update.BlockType.IsValid() {
			return utils.Fail(c, fiber.StatusBadRequest, fmt.Sprintf("unknown block type %q", *update.BlockType))
		}
		block.BlockType = *update.BlockType
		// Keep the derived color in sync unless it was overridden.
		if update.Color == nil {
			block.Color = update.BlockType.Color()
		}
	}
	if update.Notes != nil {
		block.Notes = *update.Notes
	}
	if update.Color != nil {
		block.Color = *update.Color
	}
	if err := block.Validate(); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	block.Version++
	if err := db.DB.Save(&block).Error; err != nil {
		log.Printf("Failed to update time block %s: %v", id, err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update time block")
	}
	redis.InvalidateSlots()
	return utils.Success(c, block)
}

func DeleteTimeBlock(c *fiber.Ctx) error {
	id := c.Params("id")
	var block models.TimeBlock
	if err := db.DB.First(&block, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Time block not found")
	}
	if err := db.DB.Delete(&block).Error; err != nil {
		log.Printf("Failed to delete time block %s: %v", id, err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete time block")
	}
	redis.InvalidateSlots()
	return utils.Success(c, fiber.Map{"deleted": block.ID})
}
