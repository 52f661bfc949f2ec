package domain

import "time"

var (
	MessageSuccessGetNotification     = "notification retrieved successfully"
	MessageSuccessDismissNotification = "notification dismissed"
)

// Notification is one transient advisory banner. It expires automatically
// after a fixed visibility window regardless of user interaction.
type Notification struct {
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	DispatchedAt time.Time `json:"dispatched_at"`
}
