// Package wizard is the public three-step booking flow: a customer picks a
// service, then a date and free slot, then enters contact details, and one
// pending appointment is created. Navigation is strictly Select Service →
// Select Date/Time → Enter Details → Submitted, with backward steps that
// never lose entered state.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/notify"
	"github.com/serviclima/scheduling/utils"
)

type Step string

const (
	StepSelectService  Step = "select-service"
	StepSelectDateTime Step = "select-date-time"
	StepEnterDetails   Step = "enter-details"
	StepSubmitted      Step = "submitted"
)

var (
	ErrWrongStep      = fmt.Errorf("action not available in this step")
	ErrNoSlotSelected = fmt.Errorf("select a time slot first")
	ErrDateTooEarly   = fmt.Errorf("bookings start from tomorrow")
	ErrUnknownSlot    = fmt.Errorf("slot is not in the offered list")
)

// API is the contract slice the wizard consumes; *client.Client satisfies it.
type API interface {
	AppointmentTypes(ctx context.Context) ([]models.AppointmentType, error)
	AvailableSlots(ctx context.Context, date string, serviceType models.ServiceType) []models.TimeSlot
	CreateAppointment(ctx context.Context, appointment models.Appointment) (*models.Appointment, error)
}

// Wizard is the booking state machine. It is driven from a single UI
// goroutine; every network call is awaited by the triggering action.
type Wizard struct {
	api API
	hub *notify.Hub
	now func() time.Time

	step        Step
	serviceType models.ServiceType
	duration    int
	date        string
	slots       []models.TimeSlot
	slot        *models.TimeSlot
	customer    models.Customer
	issue       string
	created     *models.Appointment
}

func New(api API, hub *notify.Hub) *Wizard {
	return &Wizard{api: api, hub: hub, now: time.Now, step: StepSelectService}
}

func (w *Wizard) Step() Step { return w.step }

// ServiceCatalog lists the bookable service types with label, description,
// default duration and color. A fetch failure yields an empty catalog; the
// customer retries by reopening the step.
func (w *Wizard) ServiceCatalog(ctx context.Context) []models.AppointmentType {
	types, err := w.api.AppointmentTypes(ctx)
	if err != nil {
		w.hub.Error("Could not load the service list. Please try again.")
		return []models.AppointmentType{}
	}
	return types
}

// SelectService stores the chosen type and its default duration and moves
// to date/time selection. Choosing a different type while already past
// this step invalidates any previously chosen slot.
func (w *Wizard) SelectService(ctx context.Context, serviceType models.ServiceType) error {
	if !serviceType.IsValid() {
		return fmt.Errorf("unknown service type %q", serviceType)
	}
	if serviceType != w.serviceType {
		w.slot = nil
		w.slots = nil
	}
	w.serviceType = serviceType
	w.duration = serviceType.DefaultDuration()
	w.step = StepSelectDateTime
	if w.date != "" {
		w.requery(ctx)
	}
	return nil
}

// MinDate is the earliest bookable date: same-day booking is disallowed.
func (w *Wizard) MinDate() string {
	return w.now().AddDate(0, 0, 1).Format(utils.DateLayout)
}

// SetDate picks the visit date and re-queries availability. A date change
// drops a previously chosen slot since it belonged to the old query.
func (w *Wizard) SetDate(ctx context.Context, date string) error {
	if w.step != StepSelectDateTime {
		return ErrWrongStep
	}
	if _, err := utils.ParseDate(date); err != nil {
		return err
	}
	if date < w.MinDate() {
		return ErrDateTooEarly
	}
	if date != w.date {
		w.slot = nil
	}
	w.date = date
	w.requery(ctx)
	return nil
}

func (w *Wizard) requery(ctx context.Context) {
	w.slots = w.api.AvailableSlots(ctx, w.date, w.serviceType)
}

// Slots is the current availability for the chosen date and service.
func (w *Wizard) Slots() []models.TimeSlot { return w.slots }

// SelectSlot stores one offered window. The slot must come from the last
// query result; the wizard never invents or adjusts windows.
func (w *Wizard) SelectSlot(slot models.TimeSlot) error {
	if w.step != StepSelectDateTime {
		return ErrWrongStep
	}
	for _, offered := range w.slots {
		if offered == slot {
			w.slot = &offered
			return nil
		}
	}
	return ErrUnknownSlot
}

// CanContinue reports whether the Continue action is available: only once
// a slot has been chosen.
func (w *Wizard) CanContinue() bool {
	return w.step == StepSelectDateTime && w.slot != nil
}

// Continue advances to the details step; it is gated on a chosen slot.
func (w *Wizard) Continue() error {
	if !w.CanContinue() {
		return ErrNoSlotSelected
	}
	w.step = StepEnterDetails
	return nil
}

// Back steps to the previous screen. All entered state is preserved,
// including a previously chosen slot when returning to date/time.
func (w *Wizard) Back() error {
	switch w.step {
	case StepSelectDateTime:
		w.step = StepSelectService
	case StepEnterDetails:
		w.step = StepSelectDateTime
	default:
		return ErrWrongStep
	}
	return nil
}

// SetDetails records the customer's contact details and described issue.
// Email format is left to the input widget; only presence is checked here.
func (w *Wizard) SetDetails(customer models.Customer, issue string) {
	w.customer = customer
	w.issue = issue
}

// Submit validates the required fields and posts one pending appointment
// built from the selected service, date and slot. On failure the wizard
// stays on the details step so the customer can correct and resubmit.
func (w *Wizard) Submit(ctx context.Context) (*models.Appointment, error) {
	if w.step != StepEnterDetails {
		return nil, ErrWrongStep
	}
	if w.slot == nil {
		return nil, ErrNoSlotSelected
	}
	if w.customer.Name == "" || w.customer.Email == "" || w.customer.Phone == "" || w.customer.Address == "" {
		return nil, fmt.Errorf("name, email, phone and address are required")
	}

	appointment := models.Appointment{
		ServiceType:   w.serviceType,
		Status:        models.StatusPending,
		Customer:      w.customer,
		ScheduledDate: w.date,
		StartTime:     w.slot.Start,
		EndTime:       w.slot.End,
		Duration:      w.duration,
		Details:       models.ServiceDetails{DescribedIssue: w.issue},
	}

	created, err := w.api.CreateAppointment(ctx, appointment)
	if err != nil {
		w.hub.Error(fmt.Sprintf("Could not complete the booking: %v", err))
		return nil, err
	}
	w.created = created
	w.step = StepSubmitted
	w.hub.Success("Booking received. A confirmation email is on its way.")
	return created, nil
}

// Summary is the confirmation shown on the terminal step.
type Summary struct {
	ServiceLabel string
	Date         string
	StartTime    string
}

func (w *Wizard) Summary() (Summary, bool) {
	if w.step != StepSubmitted || w.created == nil {
		return Summary{}, false
	}
	formatted := w.created.ScheduledDate
	if d, err := utils.ParseDate(w.created.ScheduledDate); err == nil {
		formatted = d.Format("Monday, 2 January 2006")
	}
	return Summary{
		ServiceLabel: w.created.ServiceType.Label(),
		Date:         formatted,
		StartTime:    w.created.StartTime,
	}, true
}

// Reset is the "book another" action: back to service selection with every
// field cleared.
func (w *Wizard) Reset() {
	w.step = StepSelectService
	w.serviceType = ""
	w.duration = 0
	w.date = ""
	w.slots = nil
	w.slot = nil
	w.customer = models.Customer{}
	w.issue = ""
	w.created = nil
}
