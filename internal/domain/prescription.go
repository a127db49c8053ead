package domain

import "time"

// Prescription records what a doctor prescribed to a patient. Only the
// read side is exposed; prescriptions appear on the patient dashboard.
type Prescription struct {
	ID        string
	PatientID string
	DoctorID  string
	Date      time.Time
	Details   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrescriptionSummary is the joined read model with the prescriber's name.
type PrescriptionSummary struct {
	ID         string
	Date       time.Time
	Details    string
	DoctorName string
}
