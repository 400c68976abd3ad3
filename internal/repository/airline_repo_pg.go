package repository

import (
	"context"

	"github.com/Domenick1991/dorado/internal/domain"
)

type AirlineRepository interface {
	List(ctx context.Context) ([]domain.Airline, error)
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	Create(ctx context.Context, airline *domain.Airline) error
	Update(ctx context.Context, id int64, patch domain.AirlinePatch) (*domain.Airline, error)
	Delete(ctx context.Context, id int64) error
}

type PGAirlineRepository struct {
	db DB
}

func NewAirlineRepository(db DB) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, description, created_at, updated_at FROM airlines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	var a domain.Airline
	err := r.db.QueryRow(ctx, `SELECT id, description, created_at, updated_at FROM airlines WHERE id=$1`, id).
		Scan(&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airlines (description) VALUES ($1) RETURNING id, created_at, updated_at`, airline.Description).
		Scan(&airline.ID, &airline.CreatedAt, &airline.UpdatedAt)
	return mapError(err)
}

func (r *PGAirlineRepository) Update(ctx context.Context, id int64, patch domain.AirlinePatch) (*domain.Airline, error) {
	var a domain.Airline
	err := r.db.QueryRow(ctx, `UPDATE airlines SET description = COALESCE($2, description), updated_at = now()
		WHERE id=$1 RETURNING id, description, created_at, updated_at`, id, patch.Description).
		Scan(&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGAirlineRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM airlines WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
