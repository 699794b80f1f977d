// Package client implements the HTTP contract the calendar engine and the
// booking wizard consume: appointments and time blocks CRUD, availability
// queries, and the service-type catalog. Every response is the
// {success, data|message} envelope; non-success is surfaced as *APIError,
// with stale-write rejections mapped to ErrConflict.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/serviclima/scheduling/models"
)

// ErrConflict marks a rejected stale write (version mismatch). Callers
// distinguish it from generic failures with errors.Is.
var ErrConflict = errors.New("version conflict")

// APIError is a non-success response from the scheduling API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusConflict {
		return ErrConflict
	}
	return nil
}

type Client struct {
	base  string
	http  *http.Client
	token string
}

func New(base string) *Client {
	return &Client{base: base, http: http.DefaultClient}
}

// SetToken attaches the staff bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues one request and decodes the envelope into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// Login exchanges the staff credential for a bearer token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var result struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &result); err != nil {
		return err
	}
	c.token = result.Token
	return nil
}

// AppointmentFilter narrows ListAppointments. Zero values mean no filter.
type AppointmentFilter struct {
	Status models.AppointmentStatus
	Type   models.ServiceType
	Date   string
}

func (c *Client) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}
	path := "/appointments"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var appointments []models.Appointment
	if err := c.do(ctx, http.MethodGet, path, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) CreateAppointment(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	var created models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", appointment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AppointmentPatch is the partial update payload; nil fields are left
// untouched server-side. Version guards against stale writes.
type AppointmentPatch struct {
	Status        *models.AppointmentStatus `json:"status,omitempty"`
	ScheduledDate *string                   `json:"scheduled_date,omitempty"`
	StartTime     *string                   `json:"start_time,omitempty"`
	EndTime       *string                   `json:"end_time,omitempty"`
	Duration      *int                      `json:"duration,omitempty"`
	Technician    *models.Technician        `json:"technician,omitempty"`
	Version       uint                      `json:"version"`
}

func (c *Client) UpdateAppointment(ctx context.Context, id uint, patch AppointmentPatch) (*models.Appointment, error) {
	var updated models.Appointment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/appointments/%d", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil)
}

func (c *Client) ListTimeBlocks(ctx context.Context) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	if err := c.do(ctx, http.MethodGet, "/time-blocks", nil, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (c *Client) CreateTimeBlock(ctx context.Context, block models.TimeBlock) (*models.TimeBlock, error) {
	var created models.TimeBlock
	if err := c.do(ctx, http.MethodPost, "/time-blocks", block, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// TimeBlockPatch mirrors AppointmentPatch for time blocks.
type TimeBlockPatch struct {
	Title         *string           `json:"title,omitempty"`
	Description   *string           `json:"description,omitempty"`
	ScheduledDate *string           `json:"scheduled_date,omitempty"`
	StartTime     *string           `json:"start_time,omitempty"`
	EndTime       *string           `json:"end_time,omitempty"`
	BlockType     *models.BlockType `json:"block_type,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
	Color         *string           `json:"color,omitempty"`
	Version       uint              `json:"version"`
}

func (c *Client) UpdateTimeBlock(ctx context.Context, id uint, patch TimeBlockPatch) (*models.TimeBlock, error) {
	var updated models.TimeBlock
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/time-blocks/%d", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTimeBlock(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/time-blocks/%d", id), nil, nil)
}

// AvailableSlots queries the bookable windows for a date and service type.
// Any failure is treated as "no availability": the caller gets an empty
// list and may retry by re-issuing the query.
func (c *Client) AvailableSlots(ctx context.Context, date string, serviceType models.ServiceType) []models.TimeSlot {
	q := url.Values{}
	q.Set("date", date)
	q.Set("serviceType", string(serviceType))
	var slots []models.TimeSlot
	if err := c.do(ctx, http.MethodGet, "/available-slots?"+q.Encode(), nil, &slots); err != nil {
		return []models.TimeSlot{}
	}
	if slots == nil {
		return []models.TimeSlot{}
	}
	return slots
}

// AppointmentTypes fetches the service-type catalog that drives the
// wizard's first step.
func (c *Client) AppointmentTypes(ctx context.Context) ([]models.AppointmentType, error) {
	var types []models.AppointmentType
	if err := c.do(ctx, http.MethodGet, "/appointment-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}
