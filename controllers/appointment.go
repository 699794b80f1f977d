package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/serviclima/scheduling/db"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/redis"
	"github.com/serviclima/scheduling/utils"
)

// GetAllAppointments returns appointments, optionally filtered by status,
// service type and scheduled date.
func GetAllAppointments(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Appointment{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if serviceType := c.Query("type"); serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("scheduled_date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Order("scheduled_date asc, start_time asc").Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch appointments: %v", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}
	return utils.Success(c, appointments)
}

func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	return utils.Success(c, appointment)
}

// CreateAppointment books a new appointment. Public: the booking wizard
// posts here without credentials.
func CreateAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if appointment.Customer.Name == "" || appointment.Customer.Email == "" ||
		appointment.Customer.Phone == "" || appointment.Customer.Address == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Customer name, email, phone and address are required")
	}
	if err := appointment.Validate(); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if err := db.DB.Create(&appointment).Error; err != nil {
		log.Printf("Failed to create appointment: %v", err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create appointment")
	}
	redis.InvalidateSlots()
	go sendBookingConfirmation(&appointment)
	return utils.Created(c, appointment)
}

// AppointmentUpdate is the partial PUT payload. Nil fields keep their
// current value. Version must match the stored row or the write is stale.
type AppointmentUpdate struct {
	Status        *models.AppointmentStatus `json:"status"`
	ScheduledDate *string                   `json:"scheduled_date"`
	StartTime     *string                   `json:"start_time"`
	EndTime       *string                   `json:"end_time"`
	Duration      *int                      `json:"duration"`
	Technician    *models.Technician        `json:"technician"`
	Version       uint                      `json:"version"`
}

func UpdateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var update AppointmentUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	if err := checkVersion(update.Version, appointment.Version); err != nil {
		return utils.Fail(c, versionFailStatus(err), err.Error())
	}

	// Any status from the enumeration is accepted regardless of the
	// current one; staff corrections are allowed.
	if update.Status != nil {
		if !update.Status.IsValid() {
			return utils.Fail(c, fiber.StatusBadRequest, fmt.Sprintf("unknown status %q", *update.Status))
		}
		appointment.Status = *update.Status
	}
	if update.ScheduledDate != nil {
		appointment.ScheduledDate = *update.ScheduledDate
	}
	if update.StartTime != nil {
		appointment.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		appointment.EndTime = *update.EndTime
	}
	if update.Duration != nil {
		appointment.Duration = *update.Duration
	}
	if update.Technician != nil {
		appointment.Technician = update.Technician
	}
	if err := appointment.Validate(); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	appointment.Version++
	if err := db.DB.Save(&appointment).Error; err != nil {
		log.Printf("Failed to update appointment %s: %v", id, err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update appointment")
	}
	redis.InvalidateSlots()
	return utils.Success(c, appointment)
}

func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	if err := db.DB.Delete(&appointment).Error; err != nil {
		log.Printf("Failed to delete appointment %s: %v", id, err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete appointment")
	}
	redis.InvalidateSlots()
	return utils.Success(c, fiber.Map{"deleted": appointment.ID})
}

// sendBookingConfirmation emails the customer after a successful booking.
// Failures are logged only; the booking already exists.
func sendBookingConfirmation(appointment *models.Appointment) {
	subject := fmt.Sprintf("Booking received: %s", appointment.ServiceType.Label())
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received your booking request. Our team will confirm it shortly.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
		</ul>
		<p>If you need to reschedule or cancel, reply to this email.</p>
	`, appointment.Customer.Name, appointment.ServiceType.Label(),
		appointment.ScheduledDate, appointment.StartTime, appointment.EndTime)

	if err := utils.SendEmail(appointment.Customer.Email, subject, body); err != nil {
		log.Printf("Failed to send confirmation for appointment %d: %v", appointment.ID, err)
	}
}
