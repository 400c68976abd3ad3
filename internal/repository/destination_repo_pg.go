package repository

import (
	"context"

	"github.com/Domenick1991/dorado/internal/domain"
)

type DestinationRepository interface {
	List(ctx context.Context) ([]domain.Destination, error)
	GetByID(ctx context.Context, id int64) (*domain.Destination, error)
	Create(ctx context.Context, destination *domain.Destination) error
	Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error)
	Delete(ctx context.Context, id int64) error
}

type PGDestinationRepository struct {
	db DB
}

func NewDestinationRepository(db DB) DestinationRepository {
	return &PGDestinationRepository{db: db}
}

func (r *PGDestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, `SELECT id, description, created_at, updated_at FROM destinations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	destinations := make([]domain.Destination, 0)
	for rows.Next() {
		var a domain.Destination
		if err := rows.Scan(&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		destinations = append(destinations, a)
	}
	return destinations, rows.Err()
}

func (r *PGDestinationRepository) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	var a domain.Destination
	err := r.db.QueryRow(ctx, `SELECT id, description, created_at, updated_at FROM destinations WHERE id=$1`, id).
		Scan(&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGDestinationRepository) Create(ctx context.Context, destination *domain.Destination) error {
	err := r.db.QueryRow(ctx, `INSERT INTO destinations (description) VALUES ($1) RETURNING id, created_at, updated_at`, destination.Description).
		Scan(&destination.ID, &destination.CreatedAt, &destination.UpdatedAt)
	return mapError(err)
}

func (r *PGDestinationRepository) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	var a domain.Destination
	err := r.db.QueryRow(ctx, `UPDATE destinations SET description = COALESCE($2, description), updated_at = now()
		WHERE id=$1 RETURNING id, description, created_at, updated_at`, id, patch.Description).
		Scan(&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGDestinationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ DestinationRepository = (*PGDestinationRepository)(nil)
