package repository

import (
	"context"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db DB
}

func NewFlightRepository(db DB) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `f.id, f.code, f.boarding_room, f.origin, f.departure_time, f.arrival_time, f.price,
	f.destination_id, f.airline_id, f.created_at, f.updated_at`

const flightWithRelations = `SELECT ` + flightColumns + `,
	d.id, d.description, d.created_at, d.updated_at,
	a.id, a.description, a.created_at, a.updated_at
	FROM flights f
	JOIN destinations d ON d.id = f.destination_id
	JOIN airlines a ON a.id = f.airline_id`

func scanFlightWithRelations(row pgx.Row) (domain.Flight, error) {
	var (
		f domain.Flight
		d domain.Destination
		a domain.Airline
	)
	err := row.Scan(&f.ID, &f.Code, &f.BoardingRoom, &f.Origin, &f.DepartureTime, &f.ArrivalTime, &f.Price,
		&f.DestinationID, &f.AirlineID, &f.CreatedAt, &f.UpdatedAt,
		&d.ID, &d.Description, &d.CreatedAt, &d.UpdatedAt,
		&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return f, err
	}
	f.Destination = &d
	f.Airline = &a
	f.Passengers = make([]domain.Passenger, 0)
	return f, nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.Code, &f.BoardingRoom, &f.Origin, &f.DepartureTime, &f.ArrivalTime, &f.Price,
		&f.DestinationID, &f.AirlineID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, flightWithRelations+` ORDER BY f.departure_time, f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	index := make(map[int64]int)
	ids := make([]int64, 0)
	for rows.Next() {
		f, err := scanFlightWithRelations(rows)
		if err != nil {
			return nil, err
		}
		index[f.ID] = len(flights)
		ids = append(ids, f.ID)
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return flights, nil
	}

	passengers, err := queryPassengers(ctx, r.db, `SELECT `+passengerColumns+` FROM passengers p WHERE p.flight_id = ANY($1) ORDER BY p.id`, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range passengers {
		i := index[p.FlightID]
		flights[i].Passengers = append(flights[i].Passengers, p)
	}
	return flights, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlightWithRelations(r.db.QueryRow(ctx, flightWithRelations+` WHERE f.id=$1`, id))
	if err != nil {
		return nil, mapError(err)
	}

	passengers, err := queryPassengers(ctx, r.db, `SELECT `+passengerColumns+` FROM passengers p WHERE p.flight_id = $1 ORDER BY p.id`, id)
	if err != nil {
		return nil, err
	}
	f.Passengers = passengers
	return &f, nil
}

// Create checks the destination and airline references and inserts the
// flight in one transaction.
func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockReference(ctx, tx, "destinations", flight.DestinationID); err != nil {
		return err
	}
	if err := lockReference(ctx, tx, "airlines", flight.AirlineID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO flights (code, boarding_room, origin, departure_time, arrival_time, price, destination_id, airline_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		flight.Code, flight.BoardingRoom, flight.Origin, flight.DepartureTime, flight.ArrivalTime, flight.Price, flight.DestinationID, flight.AirlineID).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

// Update locks the flight before its new references, so a missing flight
// wins over a missing destination or airline.
func (r *PGFlightRepository) Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := lockRow(ctx, tx, "flights", id); err != nil {
		return nil, err
	}
	if patch.DestinationID != nil {
		if err := lockReference(ctx, tx, "destinations", *patch.DestinationID); err != nil {
			return nil, err
		}
	}
	if patch.AirlineID != nil {
		if err := lockReference(ctx, tx, "airlines", *patch.AirlineID); err != nil {
			return nil, err
		}
	}

	f, err := scanFlight(tx.QueryRow(ctx, `UPDATE flights f SET
		code = COALESCE($2, f.code),
		boarding_room = COALESCE($3, f.boarding_room),
		origin = COALESCE($4, f.origin),
		departure_time = COALESCE($5, f.departure_time),
		arrival_time = COALESCE($6, f.arrival_time),
		price = COALESCE($7, f.price),
		destination_id = COALESCE($8, f.destination_id),
		airline_id = COALESCE($9, f.airline_id),
		updated_at = now()
		WHERE f.id=$1
		RETURNING `+flightColumns,
		id, patch.Code, patch.BoardingRoom, patch.Origin, patch.DepartureTime, patch.ArrivalTime, patch.Price, patch.DestinationID, patch.AirlineID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
