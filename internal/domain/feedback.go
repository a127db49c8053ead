package domain

import "time"

// Feedback is a patient testimonial shown on the public site.
type Feedback struct {
	ID        string
	PatientID string
	Name      string
	Message   string
	Rating    int
	CreatedAt time.Time
}
