package repository

import (
	"context"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/jackc/pgx/v5"
)

type PassengerRepository interface {
	List(ctx context.Context) ([]domain.Passenger, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Create(ctx context.Context, passenger *domain.Passenger) error
	// Update returns the row after the change and the row as it was before.
	Update(ctx context.Context, id int64, patch domain.PassengerPatch) (updated, previous *domain.Passenger, err error)
	Delete(ctx context.Context, id int64) error
	PhotoKeys(ctx context.Context) (map[string]struct{}, error)
}

type PGPassengerRepository struct {
	db DB
}

func NewPassengerRepository(db DB) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `p.id, p.first_name, p.last_name, p.email, p.phone, p.photo_url, p.photo_key, p.flight_id, p.created_at, p.updated_at`

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.PhotoURL, &p.PhotoKey, &p.FlightID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func queryPassengers(ctx context.Context, q querier, sql string, args ...any) ([]domain.Passenger, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, *p)
	}
	return passengers, rows.Err()
}

const passengerWithFlight = `SELECT ` + passengerColumns + `, ` + flightColumns + `
	FROM passengers p
	JOIN flights f ON f.id = p.flight_id`

func scanPassengerWithFlight(row pgx.Row) (*domain.Passenger, error) {
	var (
		p domain.Passenger
		f domain.Flight
	)
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.PhotoURL, &p.PhotoKey, &p.FlightID, &p.CreatedAt, &p.UpdatedAt,
		&f.ID, &f.Code, &f.BoardingRoom, &f.Origin, &f.DepartureTime, &f.ArrivalTime, &f.Price,
		&f.DestinationID, &f.AirlineID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	p.Flight = &f
	return &p, nil
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, passengerWithFlight+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassengerWithFlight(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, *p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Passenger, error) {
	return queryPassengers(ctx, r.db, `SELECT `+passengerColumns+` FROM passengers p WHERE p.flight_id=$1 ORDER BY p.id`, flightID)
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	return scanPassengerWithFlight(r.db.QueryRow(ctx, passengerWithFlight+` WHERE p.id=$1`, id))
}

// Create verifies the flight and inserts the passenger in one transaction.
func (r *PGPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockReference(ctx, tx, "flights", passenger.FlightID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO passengers (first_name, last_name, email, phone, photo_url, photo_key, flight_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		passenger.FirstName, passenger.LastName, passenger.Email, passenger.Phone, passenger.PhotoURL, passenger.PhotoKey, passenger.FlightID).
		Scan(&passenger.ID, &passenger.CreatedAt, &passenger.UpdatedAt); err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

func (r *PGPassengerRepository) Update(ctx context.Context, id int64, patch domain.PassengerPatch) (*domain.Passenger, *domain.Passenger, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	previous, err := scanPassenger(tx.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers p WHERE p.id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, nil, err
	}

	if patch.FlightID != nil {
		if err := lockReference(ctx, tx, "flights", *patch.FlightID); err != nil {
			return nil, nil, err
		}
	}

	updated, err := scanPassenger(tx.QueryRow(ctx, `UPDATE passengers p SET
		first_name = COALESCE($2, p.first_name),
		last_name = COALESCE($3, p.last_name),
		email = COALESCE($4, p.email),
		phone = COALESCE($5, p.phone),
		photo_url = COALESCE($6, p.photo_url),
		photo_key = COALESCE($7, p.photo_key),
		flight_id = COALESCE($8, p.flight_id),
		updated_at = now()
		WHERE p.id=$1
		RETURNING `+passengerColumns,
		id, patch.FirstName, patch.LastName, patch.Email, patch.Phone, patch.PhotoURL, patch.PhotoKey, patch.FlightID))
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return updated, previous, nil
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PhotoKeys returns every photo key currently linked to a passenger.
func (r *PGPassengerRepository) PhotoKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT photo_key FROM passengers WHERE photo_key IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys[key] = struct{}{}
	}
	return keys, rows.Err()
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
