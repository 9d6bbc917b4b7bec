package alerts

import "time"

// Notification kinds
const (
	KindSession   = "session"
	KindBooking   = "booking:request"
	KindPayment   = "payment:confirmed"
	KindMessage   = "message:new"
	KindReview    = "review:new"
	KindPortfolio = "portfolio:new"
	KindError     = "error"
)

// Notification is one in-app alert record. Notifications are one-shot: they
// are written once, optionally marked read, never retried.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Reference string     `json:"reference,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}
