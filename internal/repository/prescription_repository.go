package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// PrescriptionRepository defines read access for prescriptions shown on the
// patient dashboard.
type PrescriptionRepository interface {
	ListByPatient(ctx context.Context, patientID string) ([]domain.PrescriptionSummary, error)
}

type prescriptionRepository struct {
	pool *pgxpool.Pool
}

// NewPrescriptionRepository returns a Postgres-backed implementation.
func NewPrescriptionRepository(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepository{pool: pool}
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.PrescriptionSummary, error) {
	const query = `
        SELECT pr.id, pr.date, pr.details, d.name
        FROM prescriptions pr
        JOIN users d ON d.id = pr.doctor_id
        WHERE pr.patient_id=$1
        ORDER BY pr.date DESC`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescriptions []domain.PrescriptionSummary
	for rows.Next() {
		var p domain.PrescriptionSummary
		if err := rows.Scan(&p.ID, &p.Date, &p.Details, &p.DoctorName); err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}
