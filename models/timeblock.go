package models

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/serviclima/scheduling/utils"
)

type BlockType string

const (
	BlockCorporateContract BlockType = "corporate-contract"
	BlockPersonalDeal      BlockType = "personal-deal"
	BlockInternal          BlockType = "internal"
	BlockMaintenance       BlockType = "maintenance"
	BlockOther             BlockType = "other"
)

var blockColors = map[BlockType]string{
	BlockCorporateContract: "#4f46e5",
	BlockPersonalDeal:      "#0d9488",
	BlockInternal:          "#64748b",
	BlockMaintenance:       "#b45309",
	BlockOther:             "#6b7280",
}

func (b BlockType) IsValid() bool {
	_, ok := blockColors[b]
	return ok
}

func (b BlockType) Color() string {
	return blockColors[b]
}

// TimeBlock reserves calendar capacity with no customer attached.
type TimeBlock struct {
	gorm.Model
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ScheduledDate string    `json:"scheduled_date" gorm:"index"` // "YYYY-MM-DD"
	StartTime     string    `json:"start_time"`                  // "HH:MM"
	EndTime       string    `json:"end_time"`                    // "HH:MM"
	BlockType     BlockType `json:"block_type"`
	Notes         string    `json:"notes,omitempty"` // internal only, never shown to customers
	Color         string    `json:"color"`
	Version       uint      `json:"version"`
}

func (t *TimeBlock) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !t.BlockType.IsValid() {
		return fmt.Errorf("unknown block type %q", t.BlockType)
	}
	if _, err := utils.ParseDate(t.ScheduledDate); err != nil {
		return err
	}
	span, err := utils.MinutesBetween(t.StartTime, t.EndTime)
	if err != nil {
		return err
	}
	if span <= 0 {
		return fmt.Errorf("start time %s must be before end time %s", t.StartTime, t.EndTime)
	}
	return nil
}

func (t *TimeBlock) BeforeCreate(tx *gorm.DB) error {
	if t.Color == "" {
		t.Color = t.BlockType.Color()
	}
	if t.Version == 0 {
		t.Version = 1
	}
	return nil
}
