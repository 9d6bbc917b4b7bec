package marketplace

import "time"

// Order statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
)

// Provider is the creator identity embedded in a service listing.
type Provider struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Service is a user-created listing.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price,omitempty"`
	FreeOffer   bool      `json:"freeOffer"`
	Provider    Provider  `json:"provider"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Order is a hire request as the client sees it. Its Booking twin carries
// the same id, so the pair is correlated by primary key; the
// (creatorId, clientId, serviceId) tuple stays on both records for
// tuple-based reads.
type Order struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"clientId"`
	ClientName    string     `json:"clientName"`
	ClientAvatar  string     `json:"clientAvatar"`
	CreatorID     string     `json:"creatorId"`
	CreatorName   string     `json:"creatorName"`
	CreatorAvatar string     `json:"creatorAvatar"`
	ServiceID     string     `json:"serviceId"`
	ServiceName   string     `json:"serviceName"`
	Description   string     `json:"description"`
	Budget        string     `json:"budget"`
	Deadline      string     `json:"deadline"`
	Status        string     `json:"status"` // pending|confirmed|completed
	CreatedAt     time.Time  `json:"createdAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

// Booking mirrors an Order record one-for-one in its own collection, the
// creator-side view of the same hire.
type Booking = Order

// FreeTrial reports whether the order skips the card form.
func (o Order) FreeTrial() bool {
	return o.Budget == "Free trial" || o.Budget == "$0"
}
