// Package notify is the single outbound channel through which the
// scheduling core asks the presentation layer to show something: success
// and error notices, and yes/no confirmation prompts. Business logic never
// renders; it publishes commands here and the UI consumes them.
package notify

type Kind string

const (
	Success  Kind = "success"
	Error    Kind = "error"
	Conflict Kind = "conflict"
	Confirm  Kind = "confirm"
)

// Command is one presentation request. Confirm commands carry the id of
// the pending decision that answers them; the consumer answers by calling
// Confirm or Decline on that pending object, never through the hub.
type Command struct {
	Kind      Kind   `json:"kind"`
	Message   string `json:"message"`
	GestureID string `json:"gesture_id,omitempty"`
}

type Hub struct {
	ch chan Command
}

func NewHub() *Hub {
	return &Hub{ch: make(chan Command, 64)}
}

// Commands is the stream the presentation layer drains.
func (h *Hub) Commands() <-chan Command {
	return h.ch
}

func (h *Hub) publish(cmd Command) {
	// A lagging or absent consumer must never stall a mutation.
	select {
	case h.ch <- cmd:
	default:
	}
}

func (h *Hub) Success(message string) {
	h.publish(Command{Kind: Success, Message: message})
}

func (h *Hub) Error(message string) {
	h.publish(Command{Kind: Error, Message: message})
}

// ConflictError reports a stale-write rejection, distinct from a generic
// failure so the UI can suggest a refresh.
func (h *Hub) ConflictError(message string) {
	h.publish(Command{Kind: Conflict, Message: message})
}

// RequestConfirm asks the user a yes/no question tied to a pending
// decision. The answer arrives out of band on the pending object.
func (h *Hub) RequestConfirm(gestureID, prompt string) {
	h.publish(Command{Kind: Confirm, Message: prompt, GestureID: gestureID})
}
