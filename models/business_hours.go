package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// BusinessHours is the opening schedule for one weekday. Times are
// "HH:MM" in 24h local wall clock.
type BusinessHours struct {
	gorm.Model
	DayOfWeek  DayOfWeek `json:"day_of_week" gorm:"uniqueIndex"`
	OpenTime   string    `json:"open_time"`
	CloseTime  string    `json:"close_time"`
	IsWorkDay  bool      `json:"is_work_day" gorm:"default:true"`
	BreakStart *string   `json:"break_start"`
	BreakEnd   *string   `json:"break_end"`
}

// DefaultBusinessHours is the seed schedule: weekdays 08:00-18:00 with a
// lunch break, Saturday mornings, Sunday closed.
func DefaultBusinessHours() []BusinessHours {
	breakStart := "12:00"
	breakEnd := "13:00"
	hours := []BusinessHours{
		{DayOfWeek: Sunday, OpenTime: "00:00", CloseTime: "00:00", IsWorkDay: false},
		{DayOfWeek: Saturday, OpenTime: "08:00", CloseTime: "13:00", IsWorkDay: true},
	}
	for day := Monday; day <= Friday; day++ {
		hours = append(hours, BusinessHours{
			DayOfWeek:  day,
			OpenTime:   "08:00",
			CloseTime:  "18:00",
			IsWorkDay:  true,
			BreakStart: &breakStart,
			BreakEnd:   &breakEnd,
		})
	}
	return hours
}
