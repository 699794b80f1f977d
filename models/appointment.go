package models

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/serviclima/scheduling/utils"
)

type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no-show"
)

// StatusColors maps each status to its calendar background and border colors.
var StatusColors = map[AppointmentStatus]struct{ Background, Border string }{
	StatusPending:    {"#fbbf24", "#d97706"},
	StatusConfirmed:  {"#34d399", "#059669"},
	StatusInProgress: {"#60a5fa", "#2563eb"},
	StatusCompleted:  {"#9ca3af", "#4b5563"},
	StatusCancelled:  {"#f87171", "#dc2626"},
	StatusNoShow:     {"#f472b6", "#be185d"},
}

func (s AppointmentStatus) IsValid() bool {
	_, ok := StatusColors[s]
	return ok
}

// Customer is the immutable identity of the person who booked.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// ServiceDetails is free-form equipment metadata captured at booking time.
type ServiceDetails struct {
	EquipmentType  string `json:"equipment_type,omitempty"`
	Brand          string `json:"brand,omitempty"`
	Model          string `json:"model,omitempty"`
	DescribedIssue string `json:"described_issue,omitempty"`
}

// Technician is a back-reference to an assigned staff member. The
// appointment does not own the technician entity.
type Technician struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Appointment struct {
	gorm.Model
	ServiceType   ServiceType       `json:"service_type" gorm:"index"`
	Status        AppointmentStatus `json:"status" gorm:"index"`
	Customer      Customer          `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	ScheduledDate string            `json:"scheduled_date" gorm:"index"` // "YYYY-MM-DD"
	StartTime     string            `json:"start_time"`                  // "HH:MM"
	EndTime       string            `json:"end_time"`                    // "HH:MM"
	Duration      int               `json:"duration"`                    // minutes
	Technician    *Technician       `json:"technician,omitempty" gorm:"embedded;embeddedPrefix:technician_"`
	Details       ServiceDetails    `json:"service_details" gorm:"embedded;embeddedPrefix:details_"`
	Version       uint              `json:"version"`
}

// Validate enforces the time-ordering and enumeration invariants.
func (a *Appointment) Validate() error {
	if !a.ServiceType.IsValid() {
		return fmt.Errorf("unknown service type %q", a.ServiceType)
	}
	if a.Status != "" && !a.Status.IsValid() {
		return fmt.Errorf("unknown status %q", a.Status)
	}
	if _, err := utils.ParseDate(a.ScheduledDate); err != nil {
		return err
	}
	span, err := utils.MinutesBetween(a.StartTime, a.EndTime)
	if err != nil {
		return err
	}
	if span <= 0 {
		return fmt.Errorf("start time %s must be before end time %s", a.StartTime, a.EndTime)
	}
	return nil
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Duration == 0 {
		a.Duration = a.ServiceType.DefaultDuration()
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
