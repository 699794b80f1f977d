package models

// TimeSlot is one bookable window returned by the availability query.
// It is a query result, never persisted, and recomputed on every request.
type TimeSlot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}
