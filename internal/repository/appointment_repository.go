package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// AppointmentRepository defines persistence access for appointments. The
// ForDoctor variants carry the ownership filter in the query itself so a
// doctor can never read or mutate another doctor's rows.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByIDForDoctor(ctx context.Context, id, doctorID string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	UpdateStatusForDoctor(ctx context.Context, id, doctorID string, status domain.AppointmentStatus) error
	ListAll(ctx context.Context) ([]domain.AppointmentSummary, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.AppointmentSummary, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.AppointmentSummary, error)
	ListPatientsByDoctor(ctx context.Context, doctorID string) ([]domain.PatientContact, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository returns a Postgres-backed implementation.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (patient_id, doctor_id, date, time_slot, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		appt.PatientID,
		appt.DoctorID,
		appt.Date,
		appt.TimeSlot,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	if err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.Date,
		&appt.TimeSlot,
		&appt.Status,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

const appointmentColumns = `id, patient_id, doctor_id, date, time_slot, status, created_at, updated_at`

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id=$1`
	return scanAppointment(r.pool.QueryRow(ctx, query, id))
}

func (r *appointmentRepository) GetByIDForDoctor(ctx context.Context, id, doctorID string) (*domain.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id=$1 AND doctor_id=$2`
	return scanAppointment(r.pool.QueryRow(ctx, query, id, doctorID))
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	const query = `UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) UpdateStatusForDoctor(ctx context.Context, id, doctorID string, status domain.AppointmentStatus) error {
	const query = `UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2 AND doctor_id=$3`

	cmd, err := r.pool.Exec(ctx, query, status, id, doctorID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const summarySelect = `
        SELECT a.id, a.patient_id, a.doctor_id, p.name, d.name, a.date, a.time_slot, a.status
        FROM appointments a
        JOIN users p ON p.id = a.patient_id
        JOIN users d ON d.id = a.doctor_id`

func (r *appointmentRepository) listSummaries(ctx context.Context, query string, args ...any) ([]domain.AppointmentSummary, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.AppointmentSummary
	for rows.Next() {
		var s domain.AppointmentSummary
		if err := rows.Scan(
			&s.ID,
			&s.PatientID,
			&s.DoctorID,
			&s.PatientName,
			&s.DoctorName,
			&s.Date,
			&s.TimeSlot,
			&s.Status,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]domain.AppointmentSummary, error) {
	return r.listSummaries(ctx, summarySelect+` ORDER BY a.date`)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.AppointmentSummary, error) {
	return r.listSummaries(ctx, summarySelect+` WHERE a.doctor_id=$1 ORDER BY a.date`, doctorID)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.AppointmentSummary, error) {
	return r.listSummaries(ctx, summarySelect+` WHERE a.patient_id=$1 ORDER BY a.date`, patientID)
}

func (r *appointmentRepository) ListPatientsByDoctor(ctx context.Context, doctorID string) ([]domain.PatientContact, error) {
	const query = `
        SELECT DISTINCT p.id, p.name, p.email, p.phone
        FROM appointments a
        JOIN users p ON p.id = a.patient_id
        WHERE a.doctor_id=$1
        ORDER BY p.name`

	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []domain.PatientContact
	for rows.Next() {
		var p domain.PatientContact
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}
