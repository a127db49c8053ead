package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// CallbackRepository defines persistence access for callback requests.
type CallbackRepository interface {
	Create(ctx context.Context, cb *domain.CallbackRequest) error
	List(ctx context.Context) ([]domain.CallbackRequest, error)
	MarkContacted(ctx context.Context, id string) (*domain.CallbackRequest, error)
	Delete(ctx context.Context, id string) error
}

type callbackRepository struct {
	pool *pgxpool.Pool
}

// NewCallbackRepository returns a Postgres-backed implementation.
func NewCallbackRepository(pool *pgxpool.Pool) CallbackRepository {
	return &callbackRepository{pool: pool}
}

func (r *callbackRepository) Create(ctx context.Context, cb *domain.CallbackRequest) error {
	const query = `
        INSERT INTO callback_requests (name, phone, message)
        VALUES ($1, $2, $3)
        RETURNING id, contacted, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		cb.Name,
		cb.Phone,
		cb.Message,
	).Scan(&cb.ID, &cb.Contacted, &cb.CreatedAt, &cb.UpdatedAt)
}

func (r *callbackRepository) List(ctx context.Context) ([]domain.CallbackRequest, error) {
	const query = `
        SELECT id, name, phone, message, contacted, created_at, updated_at
        FROM callback_requests
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var callbacks []domain.CallbackRequest
	for rows.Next() {
		var cb domain.CallbackRequest
		if err := rows.Scan(&cb.ID, &cb.Name, &cb.Phone, &cb.Message, &cb.Contacted, &cb.CreatedAt, &cb.UpdatedAt); err != nil {
			return nil, err
		}
		callbacks = append(callbacks, cb)
	}
	return callbacks, rows.Err()
}

func (r *callbackRepository) MarkContacted(ctx context.Context, id string) (*domain.CallbackRequest, error) {
	const query = `
        UPDATE callback_requests SET contacted=TRUE, updated_at=NOW()
        WHERE id=$1
        RETURNING id, name, phone, message, contacted, created_at, updated_at`

	var cb domain.CallbackRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&cb.ID,
		&cb.Name,
		&cb.Phone,
		&cb.Message,
		&cb.Contacted,
		&cb.CreatedAt,
		&cb.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cb, nil
}

func (r *callbackRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM callback_requests WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
