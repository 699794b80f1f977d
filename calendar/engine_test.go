package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviclima/scheduling/client"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/notify"
)

// stubAPI records every call and serves canned collections.
type stubAPI struct {
	appointments []models.Appointment
	blocks       []models.TimeBlock

	updateErr error
	deleteErr error
	createErr error

	listAppointmentCalls int
	listBlockCalls       int
	updateCalls          int
	deleteCalls          int
	lastAppointmentPatch client.AppointmentPatch
	lastBlockPatch       client.TimeBlockPatch
}

func (s *stubAPI) ListAppointments(ctx context.Context, filter client.AppointmentFilter) ([]models.Appointment, error) {
	s.listAppointmentCalls++
	return append([]models.Appointment(nil), s.appointments...), nil
}

func (s *stubAPI) UpdateAppointment(ctx context.Context, id uint, patch client.AppointmentPatch) (*models.Appointment, error) {
	s.updateCalls++
	s.lastAppointmentPatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Appointment{}, nil
}

func (s *stubAPI) ListTimeBlocks(ctx context.Context) ([]models.TimeBlock, error) {
	s.listBlockCalls++
	return append([]models.TimeBlock(nil), s.blocks...), nil
}

func (s *stubAPI) CreateTimeBlock(ctx context.Context, block models.TimeBlock) (*models.TimeBlock, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := block
	created.ID = 99
	s.blocks = append(s.blocks, created)
	return &created, nil
}

func (s *stubAPI) UpdateTimeBlock(ctx context.Context, id uint, patch client.TimeBlockPatch) (*models.TimeBlock, error) {
	s.updateCalls++
	s.lastBlockPatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.TimeBlock{}, nil
}

func (s *stubAPI) DeleteTimeBlock(ctx context.Context, id uint) error {
	s.deleteCalls++
	return s.deleteErr
}

func testAppointment() models.Appointment {
	a := models.Appointment{
		ServiceType:   models.ServiceMaintenance,
		Status:        models.StatusConfirmed,
		Customer:      models.Customer{Name: "Ana Souza", Email: "ana@example.com", Phone: "11999990000", Address: "Rua A 100"},
		ScheduledDate: "2026-09-15",
		StartTime:     "09:00",
		EndTime:       "10:30",
		Duration:      90,
		Version:       1,
	}
	a.ID = 1
	return a
}

func testBlock() models.TimeBlock {
	b := models.TimeBlock{
		Title:         "Contrato ABC",
		ScheduledDate: "2026-09-16",
		StartTime:     "08:00",
		EndTime:       "12:00",
		BlockType:     models.BlockCorporateContract,
		Color:         models.BlockCorporateContract.Color(),
		Version:       1,
	}
	b.ID = 2
	return b
}

func newTestEngine(t *testing.T) (*Engine, *stubAPI, *notify.Hub) {
	t.Helper()
	api := &stubAPI{
		appointments: []models.Appointment{testAppointment()},
		blocks:       []models.TimeBlock{testBlock()},
	}
	hub := notify.NewHub()
	engine := NewEngine(api, hub)
	require.NoError(t, engine.Refresh(context.Background()))
	return engine, api, hub
}

func drain(hub *notify.Hub) []notify.Command {
	var commands []notify.Command
	for {
		select {
		case cmd := <-hub.Commands():
			commands = append(commands, cmd)
		default:
			return commands
		}
	}
}

func TestEventsMapping(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	events := engine.Events()
	require.Len(t, events, 2)

	appointment := events[0]
	assert.Equal(t, KindAppointment, appointment.Kind)
	assert.Equal(t, uint(1), appointment.RefID)
	assert.Equal(t, "Preventive Maintenance - Ana Souza", appointment.Title)
	assert.Equal(t, "2026-09-15", appointment.Date)
	assert.Equal(t, "09:00", appointment.Start)
	assert.Equal(t, "10:30", appointment.End)
	assert.Equal(t, models.StatusColors[models.StatusConfirmed].Background, appointment.Background)
	assert.Equal(t, models.StatusColors[models.StatusConfirmed].Border, appointment.Border)
	assert.Equal(t, 1.0, appointment.FillOpacity)
	assert.False(t, appointment.Locked)

	block := events[1]
	assert.Equal(t, KindTimeBlock, block.Kind)
	assert.Equal(t, "Contrato ABC", block.Title)
	assert.Equal(t, models.BlockCorporateContract.Color(), block.Background)
	assert.Less(t, block.FillOpacity, 1.0)
	assert.True(t, block.Locked)
}

func TestClickAppointmentOpensDetails(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	appointment, ok := engine.ClickAppointment(1)
	require.True(t, ok)
	assert.Equal(t, "Ana Souza", appointment.Customer.Name)

	_, ok = engine.ClickAppointment(404)
	assert.False(t, ok)
}

func TestClickTimeBlockAsksForConfirmation(t *testing.T) {
	engine, api, hub := newTestEngine(t)
	pending, ok := engine.ClickTimeBlock(2)
	require.True(t, ok)

	commands := drain(hub)
	require.Len(t, commands, 1)
	assert.Equal(t, notify.Confirm, commands[0].Kind)
	assert.Equal(t, pending.ID, commands[0].GestureID)
	assert.Contains(t, commands[0].Message, "Contrato ABC")
	assert.Contains(t, commands[0].Message, "corporate-contract")
	assert.Contains(t, commands[0].Message, "08:00-12:00")
	assert.Zero(t, api.deleteCalls, "no request before confirmation")
}

func TestConfirmedDeleteRemovesBlock(t *testing.T) {
	engine, api, hub := newTestEngine(t)
	pending, ok := engine.ClickTimeBlock(2)
	require.True(t, ok)
	drain(hub)

	api.blocks = nil // server side: the block is gone after delete
	require.NoError(t, pending.Confirm(context.Background()))
	assert.Equal(t, 1, api.deleteCalls)
	assert.Empty(t, engine.Events()[1:], "block gone from the next render")

	commands := drain(hub)
	require.Len(t, commands, 1)
	assert.Equal(t, notify.Success, commands[0].Kind)
}

func TestDeclinedDeleteKeepsBlock(t *testing.T) {
	engine, api, hub := newTestEngine(t)
	pending, ok := engine.ClickTimeBlock(2)
	require.True(t, ok)
	drain(hub)

	pending.Decline()
	assert.Zero(t, api.deleteCalls)
	assert.Len(t, engine.Events(), 2)
	assert.ErrorIs(t, pending.Confirm(context.Background()), ErrGestureResolved)
}

func TestClickDateCellSeeding(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	seeded := engine.ClickDateCell("2026-09-20", "14:30")
	assert.Equal(t, TimeBlockSeed{ScheduledDate: "2026-09-20", StartTime: "14:30", EndTime: "15:30"}, seeded)

	// Month view cells have no time component.
	monthView := engine.ClickDateCell("2026-09-20", "")
	assert.Equal(t, TimeBlockSeed{ScheduledDate: "2026-09-20", StartTime: "09:00", EndTime: "10:00"}, monthView)
}

func TestSubmitTimeBlockInvalidNeverSent(t *testing.T) {
	engine, api, _ := newTestEngine(t)
	listsBefore := api.listBlockCalls

	invalid := testBlock()
	invalid.StartTime = "14:00"
	invalid.EndTime = "13:00"
	err := engine.SubmitTimeBlock(context.Background(), invalid)
	require.Error(t, err)
	assert.Equal(t, listsBefore, api.listBlockCalls, "no reconciliation fetch")
}

func TestSubmitTimeBlockSuccessRefetches(t *testing.T) {
	engine, api, hub := newTestEngine(t)
	listsBefore := api.listBlockCalls

	block := testBlock()
	block.ID = 0
	block.Title = "Internal training"
	block.BlockType = models.BlockInternal
	require.NoError(t, engine.SubmitTimeBlock(context.Background(), block))
	assert.Equal(t, listsBefore+1, api.listBlockCalls)
	assert.Len(t, engine.Events(), 3)

	commands := drain(hub)
	require.Len(t, commands, 1)
	assert.Equal(t, notify.Success, commands[0].Kind)
}

func TestSubmitTimeBlockFailureKeepsFormOpen(t *testing.T) {
	engine, api, hub := newTestEngine(t)
	api.createErr = assert.AnError

	err := engine.SubmitTimeBlock(context.Background(), testBlock())
	require.Error(t, err)

	commands := drain(hub)
	require.Len(t, commands, 1)
	assert.Equal(t, notify.Error, commands[0].Kind)
}
