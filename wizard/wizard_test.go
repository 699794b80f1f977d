package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/notify"
)

type stubAPI struct {
	slots       []models.TimeSlot
	createErr   error
	created     *models.Appointment
	queryCalls  int
	createCalls int
	lastDate    string
	lastType    models.ServiceType
}

func (s *stubAPI) AppointmentTypes(ctx context.Context) ([]models.AppointmentType, error) {
	return models.AppointmentTypeCatalog(), nil
}

func (s *stubAPI) AvailableSlots(ctx context.Context, date string, serviceType models.ServiceType) []models.TimeSlot {
	s.queryCalls++
	s.lastDate = date
	s.lastType = serviceType
	return s.slots
}

func (s *stubAPI) CreateAppointment(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := appointment
	created.ID = 42
	s.created = &created
	return &created, nil
}

var frozenNow = time.Date(2026, 9, 14, 10, 0, 0, 0, time.Local)

func newTestWizard(slots []models.TimeSlot) (*Wizard, *stubAPI, *notify.Hub) {
	api := &stubAPI{slots: slots}
	hub := notify.NewHub()
	w := New(api, hub)
	w.now = func() time.Time { return frozenNow }
	return w, api, hub
}

func details() models.Customer {
	return models.Customer{
		Name:    "Carlos Lima",
		Email:   "carlos@example.com",
		Phone:   "11988887777",
		Address: "Av. Central 52",
	}
}

func TestSelectServiceStoresDefaultDuration(t *testing.T) {
	w, _, _ := newTestWizard(nil)
	require.NoError(t, w.SelectService(context.Background(), models.ServiceInstallation))
	assert.Equal(t, StepSelectDateTime, w.Step())

	// The documented default for installation.
	assert.Equal(t, 240, w.duration)

	assert.Error(t, w.SelectService(context.Background(), "haircut"))
}

func TestMinDateIsTomorrow(t *testing.T) {
	w, _, _ := newTestWizard(nil)
	assert.Equal(t, "2026-09-15", w.MinDate())

	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	assert.ErrorIs(t, w.SetDate(context.Background(), "2026-09-14"), ErrDateTooEarly)
	assert.NoError(t, w.SetDate(context.Background(), "2026-09-15"))
}

func TestDateChangeRequeriesAvailability(t *testing.T) {
	w, api, _ := newTestWizard([]models.TimeSlot{{Start: "09:00", End: "10:30"}})
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))

	require.NoError(t, w.SetDate(context.Background(), "2026-09-15"))
	assert.Equal(t, 1, api.queryCalls)
	assert.Equal(t, "2026-09-15", api.lastDate)
	assert.Equal(t, models.ServiceMaintenance, api.lastType)

	require.NoError(t, w.SetDate(context.Background(), "2026-09-16"))
	assert.Equal(t, 2, api.queryCalls)

	// Service change re-queries too.
	require.NoError(t, w.SelectService(context.Background(), models.ServiceRepair))
	assert.Equal(t, 3, api.queryCalls)
	assert.Equal(t, models.ServiceRepair, api.lastType)
}

func TestContinueGatedOnSlot(t *testing.T) {
	w, _, _ := newTestWizard([]models.TimeSlot{{Start: "09:00", End: "10:30"}})
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	require.NoError(t, w.SetDate(context.Background(), "2026-09-15"))

	assert.False(t, w.CanContinue())
	assert.ErrorIs(t, w.Continue(), ErrNoSlotSelected)

	assert.ErrorIs(t, w.SelectSlot(models.TimeSlot{Start: "11:00", End: "12:30"}), ErrUnknownSlot)
	require.NoError(t, w.SelectSlot(models.TimeSlot{Start: "09:00", End: "10:30"}))
	assert.True(t, w.CanContinue())
	require.NoError(t, w.Continue())
	assert.Equal(t, StepEnterDetails, w.Step())
}

func TestSlotRoundTripsIntoAppointment(t *testing.T) {
	w, api, _ := newTestWizard([]models.TimeSlot{{Start: "09:00", End: "10:30"}})
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	require.NoError(t, w.SetDate(context.Background(), "2026-09-15"))
	require.NoError(t, w.SelectSlot(models.TimeSlot{Start: "09:00", End: "10:30"}))
	require.NoError(t, w.Continue())

	w.SetDetails(details(), "unit drips in cooling mode")
	created, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "09:00", created.StartTime)
	assert.Equal(t, "10:30", created.EndTime)
	assert.Equal(t, 90, created.Duration)
	assert.Equal(t, "2026-09-15", created.ScheduledDate)
	assert.Equal(t, "unit drips in cooling mode", created.Details.DescribedIssue)
	assert.Equal(t, StepSubmitted, w.Step())
	assert.Equal(t, 1, api.createCalls)
}

func TestSubmitRequiresAllCustomerFields(t *testing.T) {
	w, api, _ := newTestWizard([]models.TimeSlot{{Start: "09:00", End: "10:30"}})
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	require.NoError(t, w.SetDate(context.Background(), "2026-09-15"))
	require.NoError(t, w.SelectSlot(models.TimeSlot{Start: "09:00", End: "10:30"}))
	require.NoError(t, w.Continue())

	for _, breakField := range []func(*models.Customer){
		func(c *models.Customer) { c.Name = "" },
		func(c *models.Customer) { c.Email = "" },
		func(c *models.Customer) { c.Phone = "" },
		func(c *models.Customer) { c.Address = "" },
	} {
		customer := details()
		breakField(&customer)
		w.SetDetails(customer, "")
		_, err := w.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, StepEnterDetails, w.Step())
	}
	assert.Zero(t, api.createCalls, "validation failures never reach the network")
}

func TestSubmitFailureStaysOnDetails(t *testing.T) {
	w, api, hub := newTestWizard([]models.TimeSlot{{Start: "09:00", End: "10:30"}})
	api.createErr = assert.AnError
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	require.NoError(t, w.SetDate(context.Background(), "2026-09-15"))
	require.NoError(t, w.SelectSlot(models.TimeSlot{Start: "09:00", End: "10:30"}))
	require.NoError(t, w.Continue())
	w.SetDetails(details(), "")

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StepEnterDetails, w.Step())

	var kinds []notify.Kind
	for {
		select {
		case cmd := <-hub.Commands():
			kinds = append(kinds, cmd.Kind)
			continue
		default:
		}
		break
	}
	assert.Contains(t, kinds, notify.Error)
}

func TestBackNavigationPreservesState(t *testing.T) {
	w, api, _ := newTestWizard([]models.TimeSlot{{Start: "09:00", End: "10:30"}})
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	require.NoError(t, w.SetDate(context.Background(), "2026-09-15"))
	require.NoError(t, w.SelectSlot(models.TimeSlot{Start: "09:00", End: "10:30"}))
	require.NoError(t, w.Continue())

	// Details → date/time: the chosen slot survives.
	require.NoError(t, w.Back())
	assert.Equal(t, StepSelectDateTime, w.Step())
	assert.True(t, w.CanContinue())

	// Date/time → service, re-select the same service: still intact.
	require.NoError(t, w.Back())
	assert.Equal(t, StepSelectService, w.Step())
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	assert.True(t, w.CanContinue())

	// A different service drops the slot.
	require.NoError(t, w.Back())
	require.NoError(t, w.SelectService(context.Background(), models.ServiceRepair))
	assert.False(t, w.CanContinue())
	assert.Equal(t, 3, api.queryCalls, "each re-entry with a date re-queries")
}

func TestSummaryAndReset(t *testing.T) {
	w, _, _ := newTestWizard([]models.TimeSlot{{Start: "09:00", End: "10:30"}})
	require.NoError(t, w.SelectService(context.Background(), models.ServiceMaintenance))
	require.NoError(t, w.SetDate(context.Background(), "2026-09-15"))
	require.NoError(t, w.SelectSlot(models.TimeSlot{Start: "09:00", End: "10:30"}))
	require.NoError(t, w.Continue())
	w.SetDetails(details(), "")
	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	summary, ok := w.Summary()
	require.True(t, ok)
	assert.Equal(t, "Preventive Maintenance", summary.ServiceLabel)
	assert.Equal(t, "Tuesday, 15 September 2026", summary.Date)
	assert.Equal(t, "09:00", summary.StartTime)

	w.Reset()
	assert.Equal(t, StepSelectService, w.Step())
	assert.False(t, w.CanContinue())
	_, ok = w.Summary()
	assert.False(t, ok)
	assert.Empty(t, w.Slots())
}
