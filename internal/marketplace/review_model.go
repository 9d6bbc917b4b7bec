package marketplace

import "time"

// Review is immutable once written. Service, provider and author identity
// are denormalized at creation time, so a review survives its service.
type Review struct {
	ID           string    `json:"id"`
	ServiceID    string    `json:"serviceId"`
	ServiceName  string    `json:"serviceName"`
	ProviderID   string    `json:"providerId"`
	ProviderName string    `json:"providerName"`
	Rating       int       `json:"rating"`
	Content      string    `json:"content"`
	Author       string    `json:"author"`
	AuthorID     string    `json:"authorId"`
	Avatar       string    `json:"avatar"`
	Date         time.Time `json:"date"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}
