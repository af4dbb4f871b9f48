package checkavailability

import "archibald/internal/models"

type Status string

const (
	StatusUnspecified Status = "unspecified"
	StatusExceptional Status = "exceptional"
	StatusOpen        Status = "open"
	StatusClosed      Status = "closed"
)

// Result is the opening status for one date. Hours and LastEntry are empty
// unless the site is open.
type Result struct {
	Status    Status      `json:"status"`
	Date      models.Date `json:"date"`
	Hours     string      `json:"hours,omitempty"`
	LastEntry string      `json:"lastEntry,omitempty"`
}

// Open reports whether the site opens on the requested date.
func (r Result) Open() bool {
	return r.Status == StatusOpen || r.Status == StatusExceptional
}
