package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// FeedbackRepository defines persistence access for patient feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListRecent(ctx context.Context, limit int) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository returns a Postgres-backed implementation.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (patient_id, name, message, rating)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		feedback.PatientID,
		feedback.Name,
		feedback.Message,
		feedback.Rating,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) ListRecent(ctx context.Context, limit int) ([]domain.Feedback, error) {
	const query = `
        SELECT id, patient_id, name, message, rating, created_at
        FROM feedback
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.PatientID, &f.Name, &f.Message, &f.Rating, &f.CreatedAt); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, rows.Err()
}
