package portfolio

import "time"

// Creator is the owner identity embedded in a portfolio piece.
type Creator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Portfolio is a showcase piece. Created once via the creation form, never
// updated or deleted in-app.
type Portfolio struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       string    `json:"image"` // data URL from the upload form
	Creator     Creator   `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Categories offered by the creation form.
var Categories = []string{
	"Graphic Design",
	"UI/UX Design",
	"Web Development",
	"Mobile Development",
	"Illustration",
	"Animation",
	"Photography",
	"Videography",
	"Writing",
	"Marketing",
	"Other",
}

// ValidCategory reports whether the form category is one of the offered ones.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}
