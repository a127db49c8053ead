package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newServerFixture(t)

	status, body := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha Verma",
		"email":    "asha@clinic.test",
		"phone":    "5550101",
		"password": "s3cret",
		"role":     "patient",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, "patient registered successfully!", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha Again",
		"email":    "asha@clinic.test",
		"phone":    "5550102",
		"password": "other",
		"role":     "patient",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email already exists", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@clinic.test",
		"password": "wrong",
		"role":     "patient",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid Password", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@clinic.test",
		"password": "s3cret",
		"role":     "doctor",
	})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Invalid Email or Role", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@clinic.test",
		"password": "s3cret",
		"role":     "patient",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Login Successful", body["message"])
	require.NotEmpty(t, body["token"])
	require.Equal(t, "patient", body["role"])
	require.Equal(t, "Asha Verma", body["name"])
}

func TestDoctorSelfRegistrationRejected(t *testing.T) {
	f := newServerFixture(t)

	status, body := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Dr. Mallory",
		"email":    "mallory@clinic.test",
		"phone":    "5550103",
		"password": "s3cret",
		"role":     "doctor",
	})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Doctors can only be added by Admin.", body["message"])
}

func TestProtectedRoutesEnforceRoles(t *testing.T) {
	f := newServerFixture(t)
	patient := f.seedUser(t, "Asha", "asha@clinic.test", "pw", domain.RolePatient)
	doctor := f.seedUser(t, "Dr. Rao", "rao@clinic.test", "pw", domain.RoleDoctor)

	status, body := f.do(t, http.MethodGet, "/api/doctor/appointments", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "No token provided", body["message"])

	status, body = f.do(t, http.MethodGet, "/api/admin/doctors", f.tokenFor(t, patient), nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Access denied", body["message"])

	status, body = f.do(t, http.MethodGet, "/api/admin/appointments", f.tokenFor(t, doctor), nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Access denied", body["message"])

	status, _ = f.do(t, http.MethodGet, "/api/doctor/appointments", f.tokenFor(t, doctor), nil)
	require.Equal(t, http.StatusOK, status)
}

func TestAdminDoctorRoster(t *testing.T) {
	f := newServerFixture(t)
	admin := f.seedUser(t, "Root", "root@clinic.test", "pw", domain.RoleAdmin)
	adminToken := f.tokenFor(t, admin)

	status, body := f.do(t, http.MethodPost, "/api/admin/add-doctor", adminToken, map[string]any{
		"name":       "Dr. Rao",
		"email":      "rao@clinic.test",
		"phone":      "5550104",
		"password":   "docpass",
		"speciality": "Cardiology",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Doctor added successfully!", body["message"])
	doctorID := body["doctor"].(map[string]any)["_id"].(string)
	require.NotEmpty(t, doctorID)

	status, body = f.do(t, http.MethodPost, "/api/admin/add-doctor", adminToken, map[string]any{
		"name":     "Dr. Rao Again",
		"email":    "rao@clinic.test",
		"phone":    "5550105",
		"password": "docpass",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Doctor already exists", body["message"])

	// The booking page roster needs no session.
	status, body = f.do(t, http.MethodGet, "/api/admin/public/doctors", "", nil)
	require.Equal(t, http.StatusOK, status)
	doctors := body["doctors"].([]any)
	require.Len(t, doctors, 1)
	require.Equal(t, "Cardiology", doctors[0].(map[string]any)["speciality"])

	status, body = f.do(t, http.MethodPut, "/api/admin/edit-doctor/"+doctorID, adminToken, map[string]any{
		"speciality": "Neurology",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Doctor updated successfully", body["message"])
	require.Equal(t, "Neurology", body["doctor"].(map[string]any)["speciality"])

	// A partial edit leaves omitted fields untouched.
	status, body = f.do(t, http.MethodPut, "/api/admin/edit-doctor/"+doctorID, adminToken, map[string]any{
		"name": "Dr. V. Rao",
	})
	require.Equal(t, http.StatusOK, status)
	edited := body["doctor"].(map[string]any)
	require.Equal(t, "Dr. V. Rao", edited["name"])
	require.Equal(t, "Neurology", edited["speciality"])

	status, body = f.do(t, http.MethodDelete, "/api/admin/delete-doctor/"+uuid.NewString(), adminToken, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Doctor not found", body["message"])

	status, body = f.do(t, http.MethodDelete, "/api/admin/delete-doctor/"+doctorID, adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Doctor deleted successfully", body["message"])

	status, body = f.do(t, http.MethodGet, "/api/admin/doctors", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["doctors"])
}

func TestAppointmentFlow(t *testing.T) {
	f := newServerFixture(t)
	patient := f.seedUser(t, "Asha", "asha@clinic.test", "pw", domain.RolePatient)
	doctor := f.seedUser(t, "Dr. Rao", "rao@clinic.test", "pw", domain.RoleDoctor)
	admin := f.seedUser(t, "Root", "root@clinic.test", "pw", domain.RoleAdmin)

	patientToken := f.tokenFor(t, patient)
	doctorToken := f.tokenFor(t, doctor)

	status, body := f.do(t, http.MethodPost, "/api/patient/appointments", patientToken, map[string]any{
		"doctorId": uuid.NewString(),
		"date":     "2026-09-15",
		"timeSlot": "10:00-10:30",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid patient or doctor", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/patient/appointments", patientToken, map[string]any{
		"doctorId": doctor.ID,
		"date":     "2026-09-15",
		"timeSlot": "10:00-10:30",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Appointment booked successfully", body["message"])
	booked := body["appointment"].(map[string]any)
	apptID := booked["_id"].(string)
	require.Equal(t, string(domain.AppointmentPending), booked["status"])
	require.Equal(t, "Dr. Rao", booked["doctorName"])

	f.prescriptions.Add(domain.Prescription{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Now(),
		Details:   "Amoxicillin 500mg",
	})

	status, body = f.do(t, http.MethodGet, "/api/patient/dashboard", patientToken, nil)
	require.Equal(t, http.StatusOK, status)
	dashAppointments := body["appointments"].([]any)
	require.Len(t, dashAppointments, 1)
	require.Equal(t, "Dr. Rao", dashAppointments[0].(map[string]any)["doctorName"])
	dashPrescriptions := body["prescriptions"].([]any)
	require.Len(t, dashPrescriptions, 1)
	prescription := dashPrescriptions[0].(map[string]any)
	require.Equal(t, "Amoxicillin 500mg", prescription["details"])
	require.Equal(t, "Dr. Rao", prescription["doctorName"])

	status, body = f.do(t, http.MethodGet, "/api/doctor/appointments", doctorToken, nil)
	require.Equal(t, http.StatusOK, status)
	docAppointments := body["appointments"].([]any)
	require.Len(t, docAppointments, 1)
	require.Equal(t, "Asha", docAppointments[0].(map[string]any)["patientName"])

	status, body = f.do(t, http.MethodPatch, "/api/doctor/appointments/"+apptID+"/status", doctorToken, map[string]any{
		"status": "Approved",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid status", body["message"])

	status, body = f.do(t, http.MethodPatch, "/api/doctor/appointments/"+apptID+"/status", doctorToken, map[string]any{
		"status": "Confirmed",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Status updated", body["message"])
	require.Equal(t, string(domain.AppointmentConfirmed), body["appointment"].(map[string]any)["status"])

	// Another doctor cannot see or mutate this appointment.
	other := f.seedUser(t, "Dr. Iyer", "iyer@clinic.test", "pw", domain.RoleDoctor)
	status, body = f.do(t, http.MethodPatch, "/api/doctor/appointments/"+apptID+"/status", f.tokenFor(t, other), map[string]any{
		"status": "Cancelled",
	})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Appointment not found", body["message"])

	appt, err := f.appointments.GetByID(context.Background(), apptID)
	require.NoError(t, err)
	require.Equal(t, domain.AppointmentConfirmed, appt.Status)

	adminToken := f.tokenFor(t, admin)
	status, body = f.do(t, http.MethodPatch, "/api/admin/appointments/"+apptID+"/status", adminToken, map[string]any{
		"status": "done",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid status value", body["message"])

	status, body = f.do(t, http.MethodPatch, "/api/admin/appointments/"+apptID+"/status", adminToken, map[string]any{
		"status": "Completed",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, string(domain.AppointmentCompleted), body["appointment"].(map[string]any)["status"])

	status, body = f.do(t, http.MethodPost, "/api/doctor/appointments/"+apptID+"/next", doctorToken, map[string]any{
		"date":     "2026-09-22",
		"timeSlot": "11:00-11:30",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "Next appointment scheduled", body["message"])
	next := body["appointment"].(map[string]any)
	require.Equal(t, string(domain.AppointmentPending), next["status"])
	require.NotEqual(t, apptID, next["_id"])

	status, body = f.do(t, http.MethodGet, "/api/doctor/patients", doctorToken, nil)
	require.Equal(t, http.StatusOK, status)
	patients := body["patients"].([]any)
	require.Len(t, patients, 1)
	require.Equal(t, "Asha", patients[0].(map[string]any)["name"])
}

func TestReminderOwnershipIsolation(t *testing.T) {
	f := newServerFixture(t)
	doctorA := f.seedUser(t, "Dr. Rao", "rao@clinic.test", "pw", domain.RoleDoctor)
	doctorB := f.seedUser(t, "Dr. Iyer", "iyer@clinic.test", "pw", domain.RoleDoctor)
	tokenA := f.tokenFor(t, doctorA)
	tokenB := f.tokenFor(t, doctorB)

	status, body := f.do(t, http.MethodPost, "/api/doctor/reminders", tokenA, map[string]any{
		"patientName": "Asha",
		"description": "Review bloodwork",
		"date":        "2026-09-20",
	})
	require.Equal(t, http.StatusCreated, status)
	reminderID := body["reminder"].(map[string]any)["_id"].(string)

	status, body = f.do(t, http.MethodGet, "/api/doctor/reminders", tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["reminders"].([]any), 1)

	status, body = f.do(t, http.MethodGet, "/api/doctor/reminders", tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["reminders"])

	status, body = f.do(t, http.MethodPatch, "/api/doctor/reminders/"+reminderID, tokenB, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Reminder not found", body["message"])

	status, body = f.do(t, http.MethodPatch, "/api/doctor/reminders/"+reminderID, tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["reminder"].(map[string]any)["isDone"])

	// Completed reminders drop out of the open list.
	status, body = f.do(t, http.MethodGet, "/api/doctor/reminders", tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["reminders"])

	status, body = f.do(t, http.MethodDelete, "/api/doctor/reminders/"+reminderID, tokenB, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Reminder not found", body["message"])

	status, body = f.do(t, http.MethodDelete, "/api/doctor/reminders/"+reminderID, tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Reminder deleted", body["message"])
}

func TestCallbackIntake(t *testing.T) {
	f := newServerFixture(t)
	admin := f.seedUser(t, "Root", "root@clinic.test", "pw", domain.RoleAdmin)
	adminToken := f.tokenFor(t, admin)

	status, body := f.do(t, http.MethodPost, "/api/public/callback", "", map[string]any{
		"name":  "Asha",
		"phone": "  123  ",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Phone number is required", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/public/callback", "", map[string]any{
		"name":    "Asha",
		"phone":   "5550106",
		"message": "Please call after 5pm",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "Callback saved", body["message"])
	callbackID := body["callback"].(map[string]any)["_id"].(string)

	status, body = f.do(t, http.MethodGet, "/api/admin/callbacks", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "No token provided", body["message"])

	status, body = f.do(t, http.MethodGet, "/api/admin/callbacks", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["callbacks"].([]any), 1)

	status, body = f.do(t, http.MethodPatch, "/api/admin/callbacks/"+callbackID+"/contacted", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["callback"].(map[string]any)["contacted"])

	status, body = f.do(t, http.MethodDelete, "/api/admin/callbacks/"+uuid.NewString(), adminToken, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Callback not found", body["message"])

	status, body = f.do(t, http.MethodDelete, "/api/admin/callbacks/"+callbackID, adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Callback deleted", body["message"])
}

func TestFeedbackFlow(t *testing.T) {
	f := newServerFixture(t)
	patient := f.seedUser(t, "Asha", "asha@clinic.test", "pw", domain.RolePatient)

	status, body := f.do(t, http.MethodPost, "/api/patient/feedback", f.tokenFor(t, patient), map[string]any{
		"name":    "Asha V.",
		"message": "Great care, quick appointment.",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Feedback submitted successfully", body["message"])

	status, body = f.do(t, http.MethodGet, "/api/feedback/all", "", nil)
	require.Equal(t, http.StatusOK, status)
	feedbacks := body["feedbacks"].([]any)
	require.Len(t, feedbacks, 1)
	entry := feedbacks[0].(map[string]any)
	require.Equal(t, "Asha V.", entry["name"])
	require.EqualValues(t, 5, entry["rating"])
}

func TestPasswordResetFlow(t *testing.T) {
	f := newServerFixture(t)
	f.seedUser(t, "Asha", "asha@clinic.test", "oldpass", domain.RolePatient)

	status, body := f.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{
		"email": "nobody@clinic.test",
	})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Email not found", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{
		"email": "asha@clinic.test",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "OTP sent to your email", body["message"])

	code, err := f.otps.Get(context.Background(), "asha@clinic.test")
	require.NoError(t, err)
	require.Len(t, code, 6)

	status, body = f.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{
		"email":       "asha@clinic.test",
		"otp":         "000000",
		"newPassword": "newpass",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid OTP", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{
		"email":       "asha@clinic.test",
		"otp":         code,
		"newPassword": "newpass",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Password reset successfully!", body["message"])

	// The code is single use.
	status, body = f.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{
		"email":       "asha@clinic.test",
		"otp":         code,
		"newPassword": "again",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "OTP expired. Try again", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@clinic.test",
		"password": "newpass",
		"role":     "patient",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Login Successful", body["message"])

	status, body = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@clinic.test",
		"password": "oldpass",
		"role":     "patient",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid Password", body["message"])
}

func TestHealthLive(t *testing.T) {
	f := newServerFixture(t)

	status, body := f.do(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alive", body["status"])
	require.Equal(t, "clinic-service", body["service"])
}
