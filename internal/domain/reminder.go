package domain

import "time"

// Reminder is a doctor's private follow-up note. The patient is a free-form
// name, not a reference.
type Reminder struct {
	ID          string
	DoctorID    string
	PatientName string
	Description string
	Date        time.Time
	IsDone      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
