package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/db"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/redis"
	"github.com/serviclima/scheduling/utils"
)

const (
	slotStepMinutes = 30
	bufferMinutes   = 15 // padding between a booking and the next slot
)

// GetAvailableSlots computes the bookable windows for a date and service
// type: business hours minus break, stepped every 30 minutes, skipping any
// window that would touch an existing appointment (plus buffer) or time
// block. Slots already begun today are excluded.
func GetAvailableSlots(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	serviceType := models.ServiceType(c.Query("serviceType"))

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
	}
	if !serviceType.IsValid() {
		return utils.Fail(c, fiber.StatusBadRequest, "Unknown service type")
	}

	if cached, ok := redis.GetCachedSlots(dateStr, serviceType); ok {
		return utils.Success(c, cached)
	}

	var hours models.BusinessHours
	if err := db.DB.Where("day_of_week = ?", models.DayOfWeek(date.Weekday())).First(&hours).Error; err != nil || !hours.IsWorkDay {
		return utils.Success(c, []models.TimeSlot{})
	}

	busy, err := busyIntervals(dateStr)
	if err != nil {
		log.Printf("Failed to load bookings for %s: %v", dateStr, err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to compute availability")
	}

	slots, err := computeSlots(hours, serviceType.DefaultDuration(), busy, minutesNowIfToday(date))
	if err != nil {
		log.Printf("Bad business hours for weekday %d: %v", date.Weekday(), err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to compute availability")
	}

	redis.CacheSlots(dateStr, serviceType, slots)
	return utils.Success(c, slots)
}

// GetAppointmentTypes serves the static service-type catalog that drives
// the wizard's first step.
func GetAppointmentTypes(c *fiber.Ctx) error {
	return utils.Success(c, models.AppointmentTypeCatalog())
}

// interval is a half-open busy window [Start, End) in minutes since midnight.
type interval struct {
	Start, End int
}

// busyIntervals collects the occupied windows on a date from both
// collections. Appointments are padded with the buffer on each side;
// cancelled and no-show appointments free their slot.
func busyIntervals(date string) ([]interval, error) {
	var appointments []models.Appointment
	err := db.DB.
		Where("scheduled_date = ?", date).
		Where("status NOT IN ?", []models.AppointmentStatus{models.StatusCancelled, models.StatusNoShow}).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	var blocks []models.TimeBlock
	if err := db.DB.Where("scheduled_date = ?", date).Find(&blocks).Error; err != nil {
		return nil, err
	}

	busy := make([]interval, 0, len(appointments)+len(blocks))
	for _, a := range appointments {
		start, err := utils.ParseClock(a.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(a.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, interval{Start: start - bufferMinutes, End: end + bufferMinutes})
	}
	for _, b := range blocks {
		start, err := utils.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, interval{Start: start, End: end})
	}
	return busy, nil
}

// computeSlots steps through the working window and keeps every slot whose
// full duration fits before close, avoids the break, and overlaps nothing.
func computeSlots(hours models.BusinessHours, duration int, busy []interval, notBefore int) ([]models.TimeSlot, error) {
	open, err := utils.ParseClock(hours.OpenTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := utils.ParseClock(hours.CloseTime)
	if err != nil {
		return nil, err
	}

	var breakWindow *interval
	if hours.BreakStart != nil && hours.BreakEnd != nil {
		bs, err := utils.ParseClock(*hours.BreakStart)
		if err != nil {
			return nil, err
		}
		be, err := utils.ParseClock(*hours.BreakEnd)
		if err != nil {
			return nil, err
		}
		breakWindow = &interval{Start: bs, End: be}
	}

	// A kept slot advances the cursor to its own end so the returned list
	// never overlaps; only skipped starts probe ahead in half-hour steps.
	slots := []models.TimeSlot{}
	for start := open; start+duration <= closeAt; {
		end := start + duration
		if start < notBefore ||
			(breakWindow != nil && overlaps(start, end, *breakWindow)) ||
			overlapsAny(start, end, busy) {
			start += slotStepMinutes
			continue
		}
		slots = append(slots, models.TimeSlot{
			Start: utils.FormatClock(start),
			End:   utils.FormatClock(end),
		})
		start = end
	}
	return slots, nil
}

// Half-open intervals: [start,end) overlaps [b.Start,b.End) iff
// start < b.End && b.Start < end.
func overlaps(start, end int, b interval) bool {
	return start < b.End && b.Start < end
}

func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if overlaps(start, end, b) {
			return true
		}
	}
	return false
}

// minutesNowIfToday returns the current wall-clock minute when date is
// today, otherwise 0 so every slot qualifies.
func minutesNowIfToday(date time.Time) int {
	now := time.Now()
	if date.Year() == now.Year() && date.YearDay() == now.YearDay() {
		return now.Hour()*60 + now.Minute()
	}
	return 0
}
