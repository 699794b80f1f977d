package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/serviclima/scheduling/db"
	"github.com/serviclima/scheduling/models"
	"github.com/serviclima/scheduling/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Every evening at 18:00 remind customers about tomorrow's visits
	_, err := c.AddFunc("0 18 * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders emails every customer with a confirmed
// appointment scheduled for tomorrow.
func sendAppointmentReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(utils.DateLayout)

	var appointments []models.Appointment
	err := db.DB.
		Where("status = ? AND scheduled_date = ?", models.StatusConfirmed, tomorrow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	log.Printf("Found %d appointments for reminders", len(appointments))

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Customer.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: %s tomorrow", appointment.ServiceType.Label())
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment scheduled tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Address:</strong> %s</li>
		</ul>
		<p>Please make sure someone is home. If you need to reschedule or cancel, contact us as soon as possible.</p>
	`, appointment.Customer.Name, appointment.ServiceType.Label(),
		appointment.ScheduledDate, appointment.StartTime, appointment.EndTime,
		appointment.Customer.Address)

	return utils.SendEmail(appointment.Customer.Email, subject, body)
}
