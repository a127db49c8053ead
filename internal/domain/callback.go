package domain

import "time"

// CallbackRequest is a call-me-back submission from the public landing
// page. Admins work the queue and flag entries as contacted.
type CallbackRequest struct {
	ID        string
	Name      string
	Phone     string
	Message   string
	Contacted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
