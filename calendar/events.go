package calendar

import (
	"fmt"

	"github.com/serviclima/scheduling/models"
)

type EventKind string

const (
	KindAppointment EventKind = "appointment"
	KindTimeBlock   EventKind = "time-block"
)

// Event is one positioned entry on the calendar grid. The grid widget owns
// overlap layout; the engine only supplies kind, window and colors.
type Event struct {
	Kind        EventKind `json:"kind"`
	RefID       uint      `json:"ref_id"` // id of the backing appointment or time block
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Background  string    `json:"background"`
	Border      string    `json:"border"`
	FillOpacity float64   `json:"fill_opacity"`
	Locked      bool      `json:"locked"` // shown with a lock indicator
}

func appointmentEvent(a models.Appointment) Event {
	colors := models.StatusColors[a.Status]
	return Event{
		Kind:        KindAppointment,
		RefID:       a.ID,
		Title:       fmt.Sprintf("%s - %s", a.ServiceType.Label(), a.Customer.Name),
		Date:        a.ScheduledDate,
		Start:       a.StartTime,
		End:         a.EndTime,
		Background:  colors.Background,
		Border:      colors.Border,
		FillOpacity: 1,
	}
}

func timeBlockEvent(b models.TimeBlock) Event {
	return Event{
		Kind:        KindTimeBlock,
		RefID:       b.ID,
		Title:       b.Title,
		Date:        b.ScheduledDate,
		Start:       b.StartTime,
		End:         b.EndTime,
		Background:  b.Color,
		Border:      b.Color,
		FillOpacity: 0.35, // translucent fill, solid border
		Locked:      true,
	}
}
