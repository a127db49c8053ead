package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// ReminderRepository defines persistence access for doctor reminders. Every
// operation filters by doctor id; there is no cross-doctor access path.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	ListOpenByDoctor(ctx context.Context, doctorID string) ([]domain.Reminder, error)
	MarkDone(ctx context.Context, id, doctorID string) (*domain.Reminder, error)
	Delete(ctx context.Context, id, doctorID string) error
}

type reminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository returns a Postgres-backed implementation.
func NewReminderRepository(pool *pgxpool.Pool) ReminderRepository {
	return &reminderRepository{pool: pool}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	const query = `
        INSERT INTO reminders (doctor_id, patient_name, description, date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, is_done, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reminder.DoctorID,
		reminder.PatientName,
		reminder.Description,
		reminder.Date,
	).Scan(&reminder.ID, &reminder.IsDone, &reminder.CreatedAt, &reminder.UpdatedAt)
}

func (r *reminderRepository) ListOpenByDoctor(ctx context.Context, doctorID string) ([]domain.Reminder, error) {
	const query = `
        SELECT id, doctor_id, patient_name, description, date, is_done, created_at, updated_at
        FROM reminders WHERE doctor_id=$1 AND is_done=FALSE
        ORDER BY date`

	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		var reminder domain.Reminder
		if err := rows.Scan(
			&reminder.ID,
			&reminder.DoctorID,
			&reminder.PatientName,
			&reminder.Description,
			&reminder.Date,
			&reminder.IsDone,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (r *reminderRepository) MarkDone(ctx context.Context, id, doctorID string) (*domain.Reminder, error) {
	const query = `
        UPDATE reminders SET is_done=TRUE, updated_at=NOW()
        WHERE id=$1 AND doctor_id=$2
        RETURNING id, doctor_id, patient_name, description, date, is_done, created_at, updated_at`

	var reminder domain.Reminder
	if err := r.pool.QueryRow(ctx, query, id, doctorID).Scan(
		&reminder.ID,
		&reminder.DoctorID,
		&reminder.PatientName,
		&reminder.Description,
		&reminder.Date,
		&reminder.IsDone,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) Delete(ctx context.Context, id, doctorID string) error {
	const query = `DELETE FROM reminders WHERE id=$1 AND doctor_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, doctorID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
