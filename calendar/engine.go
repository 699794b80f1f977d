// Package calendar turns the appointment and time-block collections into
// renderable events and runs the interaction protocol behind the admin
// calendar: click dispatch, creation seeding, and the optimistic
// drag/resize mutation flow with confirmation, revert and reconciliation.
package calendar

import (
	"context"
	"fmt"

	"github.com/serviclima/scheduling/client"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/notify"
	"github.com/serviclima/scheduling/utils"
)

// API is the slice of the scheduling contract the engine needs.
// *client.Client satisfies it.
type API interface {
	ListAppointments(ctx context.Context, filter client.AppointmentFilter) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, id uint, patch client.AppointmentPatch) (*models.Appointment, error)
	ListTimeBlocks(ctx context.Context) ([]models.TimeBlock, error)
	CreateTimeBlock(ctx context.Context, block models.TimeBlock) (*models.TimeBlock, error)
	UpdateTimeBlock(ctx context.Context, id uint, patch client.TimeBlockPatch) (*models.TimeBlock, error)
	DeleteTimeBlock(ctx context.Context, id uint) error
}

// Engine holds the two in-memory collections backing the calendar. The
// collections are only ever replaced wholesale by a fetch; there are no
// partial cache updates. All methods run on the UI goroutine.
type Engine struct {
	api          API
	hub          *notify.Hub
	appointments []models.Appointment
	blocks       []models.TimeBlock
}

func NewEngine(api API, hub *notify.Hub) *Engine {
	return &Engine{api: api, hub: hub}
}

// RefreshAppointments discards the local appointment cache and refetches.
func (e *Engine) RefreshAppointments(ctx context.Context) error {
	appointments, err := e.api.ListAppointments(ctx, client.AppointmentFilter{})
	if err != nil {
		return err
	}
	e.appointments = appointments
	return nil
}

// RefreshTimeBlocks discards the local time-block cache and refetches.
func (e *Engine) RefreshTimeBlocks(ctx context.Context) error {
	blocks, err := e.api.ListTimeBlocks(ctx)
	if err != nil {
		return err
	}
	e.blocks = blocks
	return nil
}

// Refresh reloads both collections. A failed fetch leaves the prior cache
// intact, stale but consistent.
func (e *Engine) Refresh(ctx context.Context) error {
	if err := e.RefreshAppointments(ctx); err != nil {
		return err
	}
	return e.RefreshTimeBlocks(ctx)
}

// Events maps both collections into renderable events, in array order.
// Same-range events are not sorted; the grid widget resolves the layout.
func (e *Engine) Events() []Event {
	events := make([]Event, 0, len(e.appointments)+len(e.blocks))
	for _, a := range e.appointments {
		events = append(events, appointmentEvent(a))
	}
	for _, b := range e.blocks {
		events = append(events, timeBlockEvent(b))
	}
	return events
}

// ClickAppointment resolves a click on an appointment event to the record
// the details view edits.
func (e *Engine) ClickAppointment(refID uint) (*models.Appointment, bool) {
	for i := range e.appointments {
		if e.appointments[i].ID == refID {
			return &e.appointments[i], true
		}
	}
	return nil, false
}

// ClickTimeBlock starts the delete-confirmation flow for a time block.
// Blocks are not editable by click, only deletable (and movable by
// drag/resize). The returned decision stays pending until the user
// answers the published prompt.
func (e *Engine) ClickTimeBlock(refID uint) (*PendingDelete, bool) {
	for i := range e.blocks {
		if e.blocks[i].ID == refID {
			block := e.blocks[i]
			pending := newPendingDelete(e, block)
			e.hub.RequestConfirm(pending.ID, fmt.Sprintf(
				"Delete time block %q (%s, %s %s-%s)?",
				block.Title, block.BlockType, block.ScheduledDate, block.StartTime, block.EndTime))
			return pending, true
		}
	}
	return nil, false
}

// TimeBlockSeed pre-fills the creation form opened by a date-cell click.
type TimeBlockSeed struct {
	ScheduledDate string
	StartTime     string
	EndTime       string
}

// ClickDateCell seeds a one-hour window at the clicked time. Month-view
// cells carry no time component; they seed 09:00-10:00.
func (e *Engine) ClickDateCell(date, clock string) TimeBlockSeed {
	seed := TimeBlockSeed{ScheduledDate: date, StartTime: "09:00", EndTime: "10:00"}
	if clock == "" {
		return seed
	}
	end, err := utils.AddMinutes(clock, 60)
	if err != nil {
		return seed
	}
	seed.StartTime = clock
	seed.EndTime = end
	return seed
}

// SubmitTimeBlock is the single-shot creation protocol: on success the
// collection is refetched and the caller closes the form; on failure an
// error notification is published and the form stays open for correction.
func (e *Engine) SubmitTimeBlock(ctx context.Context, block models.TimeBlock) error {
	if err := block.Validate(); err != nil {
		// Invariant violations never reach the network.
		return err
	}
	if _, err := e.api.CreateTimeBlock(ctx, block); err != nil {
		e.hub.Error(fmt.Sprintf("Could not create time block: %v", err))
		return err
	}
	e.hub.Success(fmt.Sprintf("Time block %q created", block.Title))
	return e.RefreshTimeBlocks(ctx)
}
