package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/serviclima/scheduling/client"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/utils"
)

type GestureKind string

const (
	GestureMove   GestureKind = "move"
	GestureResize GestureKind = "resize"
)

var (
	ErrGestureResolved = errors.New("gesture already confirmed or declined")
	ErrEventNotFound   = errors.New("no event with that id")
)

// window is one entity's time placement.
type window struct {
	Date  string
	Start string
	End   string
}

// PendingGesture is a drag or resize waiting on the user's confirmation.
// The visual change is already applied to the engine's local collection;
// Decline or a failed Confirm reverts it, a successful Confirm commits it
// and reconciles with a wholesale refetch.
type PendingGesture struct {
	ID        string
	Kind      GestureKind
	EventKind EventKind
	RefID     uint

	engine   *Engine
	original window
	proposed window
	version  uint
	resolved bool

	// snapshots for revert
	prevAppointment *models.Appointment
	prevBlock       *models.TimeBlock
}

// BeginMove starts the optimistic move protocol for a dragged event. The
// event keeps its span: the new end is the new start plus the original
// duration. The visual relocation is applied immediately and a
// confirmation prompt is published; nothing hits the network until
// Confirm.
func (e *Engine) BeginMove(kind EventKind, refID uint, newDate, newStart string) (*PendingGesture, error) {
	gesture, err := e.beginGesture(GestureMove, kind, refID)
	if err != nil {
		return nil, err
	}
	span, err := utils.MinutesBetween(gesture.original.Start, gesture.original.End)
	if err != nil {
		return nil, err
	}
	startMinutes, err := utils.ParseClock(newStart)
	if err != nil {
		return nil, err
	}
	endMinutes := startMinutes + span
	if endMinutes > 23*60+59 {
		return nil, fmt.Errorf("cannot move to %s: the %d minute span would run past midnight", newStart, span)
	}
	if _, err := utils.ParseDate(newDate); err != nil {
		return nil, err
	}
	gesture.proposed = window{Date: newDate, Start: newStart, End: utils.FormatClock(endMinutes)}
	gesture.apply()
	e.hub.RequestConfirm(gesture.ID, gesture.prompt())
	return gesture, nil
}

// BeginResize starts the optimistic resize protocol: the date and start
// stay, only the end (and so the duration) changes.
func (e *Engine) BeginResize(kind EventKind, refID uint, newEnd string) (*PendingGesture, error) {
	gesture, err := e.beginGesture(GestureResize, kind, refID)
	if err != nil {
		return nil, err
	}
	span, err := utils.MinutesBetween(gesture.original.Start, newEnd)
	if err != nil {
		return nil, err
	}
	if span <= 0 {
		return nil, fmt.Errorf("end time %s must be after start time %s", newEnd, gesture.original.Start)
	}
	gesture.proposed = window{Date: gesture.original.Date, Start: gesture.original.Start, End: newEnd}
	gesture.apply()
	e.hub.RequestConfirm(gesture.ID, gesture.prompt())
	return gesture, nil
}

func (e *Engine) beginGesture(gestureKind GestureKind, kind EventKind, refID uint) (*PendingGesture, error) {
	gesture := &PendingGesture{
		ID:        uuid.NewString(),
		Kind:      gestureKind,
		EventKind: kind,
		RefID:     refID,
		engine:    e,
	}
	switch kind {
	case KindAppointment:
		for i := range e.appointments {
			if e.appointments[i].ID == refID {
				snapshot := e.appointments[i]
				gesture.prevAppointment = &snapshot
				gesture.original = window{snapshot.ScheduledDate, snapshot.StartTime, snapshot.EndTime}
				gesture.version = snapshot.Version
				return gesture, nil
			}
		}
	case KindTimeBlock:
		for i := range e.blocks {
			if e.blocks[i].ID == refID {
				snapshot := e.blocks[i]
				gesture.prevBlock = &snapshot
				gesture.original = window{snapshot.ScheduledDate, snapshot.StartTime, snapshot.EndTime}
				gesture.version = snapshot.Version
				return gesture, nil
			}
		}
	}
	return nil, ErrEventNotFound
}

func (g *PendingGesture) prompt() string {
	verb := "Move"
	if g.Kind == GestureResize {
		verb = "Resize"
	}
	if g.prevAppointment != nil {
		return fmt.Sprintf("%s appointment of %s to %s %s-%s?",
			verb, g.prevAppointment.Customer.Name, g.proposed.Date, g.proposed.Start, g.proposed.End)
	}
	return fmt.Sprintf("%s time block %q to %s %s-%s?",
		verb, g.prevBlock.Title, g.proposed.Date, g.proposed.Start, g.proposed.End)
}

// apply writes the proposed window into the engine's local collection.
func (g *PendingGesture) apply() {
	g.setWindow(g.proposed)
}

// revert restores the pre-gesture window.
func (g *PendingGesture) revert() {
	g.setWindow(g.original)
}

func (g *PendingGesture) setWindow(w window) {
	switch g.EventKind {
	case KindAppointment:
		for i := range g.engine.appointments {
			if g.engine.appointments[i].ID == g.RefID {
				a := &g.engine.appointments[i]
				a.ScheduledDate = w.Date
				a.StartTime = w.Start
				a.EndTime = w.End
				if span, err := utils.MinutesBetween(w.Start, w.End); err == nil {
					a.Duration = span
				}
			}
		}
	case KindTimeBlock:
		for i := range g.engine.blocks {
			if g.engine.blocks[i].ID == g.RefID {
				b := &g.engine.blocks[i]
				b.ScheduledDate = w.Date
				b.StartTime = w.Start
				b.EndTime = w.End
			}
		}
	}
}

// Decline reverts the visual change without touching the network.
func (g *PendingGesture) Decline() {
	if g.resolved {
		return
	}
	g.resolved = true
	g.revert()
}

// Confirm commits the gesture: the partial update is sent (times only for
// a resize, the full window for a move), then on success the matching
// collection is refetched so the UI reflects server truth rather than the
// optimistic value. Any failure reverts the visual change; nothing is
// retried.
func (g *PendingGesture) Confirm(ctx context.Context) error {
	if g.resolved {
		return ErrGestureResolved
	}
	g.resolved = true

	err := g.commit(ctx)
	if err != nil {
		g.revert()
		if errors.Is(err, client.ErrConflict) {
			g.engine.hub.ConflictError("Someone else changed this entry. Refresh and try again.")
		} else {
			g.engine.hub.Error(fmt.Sprintf("Could not save the change: %v", err))
		}
		return err
	}

	g.engine.hub.Success("Schedule updated")
	switch g.EventKind {
	case KindAppointment:
		return g.engine.RefreshAppointments(ctx)
	default:
		return g.engine.RefreshTimeBlocks(ctx)
	}
}

func (g *PendingGesture) commit(ctx context.Context) error {
	switch g.EventKind {
	case KindAppointment:
		patch := client.AppointmentPatch{Version: g.version}
		patch.EndTime = &g.proposed.End
		if g.Kind == GestureMove {
			patch.ScheduledDate = &g.proposed.Date
			patch.StartTime = &g.proposed.Start
		} else if span, err := utils.MinutesBetween(g.proposed.Start, g.proposed.End); err == nil {
			patch.Duration = &span
		}
		_, err := g.engine.api.UpdateAppointment(ctx, g.RefID, patch)
		return err
	default:
		patch := client.TimeBlockPatch{Version: g.version}
		patch.EndTime = &g.proposed.End
		if g.Kind == GestureMove {
			patch.ScheduledDate = &g.proposed.Date
			patch.StartTime = &g.proposed.Start
		}
		_, err := g.engine.api.UpdateTimeBlock(ctx, g.RefID, patch)
		return err
	}
}

// PendingDelete is a time-block deletion waiting on the user's yes/no.
// Unlike drag gestures nothing is applied optimistically; the block stays
// until the deletion is confirmed and acknowledged.
type PendingDelete struct {
	ID       string
	Block    models.TimeBlock
	engine   *Engine
	resolved bool
}

func newPendingDelete(e *Engine, block models.TimeBlock) *PendingDelete {
	return &PendingDelete{ID: uuid.NewString(), Block: block, engine: e}
}

func (d *PendingDelete) Decline() {
	d.resolved = true
}

func (d *PendingDelete) Confirm(ctx context.Context) error {
	if d.resolved {
		return ErrGestureResolved
	}
	d.resolved = true

	if err := d.engine.api.DeleteTimeBlock(ctx, d.Block.ID); err != nil {
		d.engine.hub.Error(fmt.Sprintf("Could not delete time block: %v", err))
		return err
	}
	d.engine.hub.Success(fmt.Sprintf("Time block %q deleted", d.Block.Title))
	return d.engine.RefreshTimeBlocks(ctx)
}
