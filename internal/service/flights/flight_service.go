package flights

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/dorado/internal/cache"
	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error)
	Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	Passengers(ctx context.Context, id int64) ([]domain.Passenger, error)
}

type FlightService struct {
	repo  repository.FlightRepository
	cache cache.FlightsCache
	log   logging.Logger
}

// NewFlightService accepts a nil cache, in which case every List hits the
// database.
func NewFlightService(repo repository.FlightRepository, cache cache.FlightsCache, log logging.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.log.Warn(ctx, "flights cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn(ctx, "flights cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	flight.Code = strings.TrimSpace(flight.Code)
	if err := domain.Required("codvuelo", flight.Code); err != nil {
		return nil, err
	}
	if flight.DepartureTime.IsZero() || flight.ArrivalTime.IsZero() {
		return nil, fmt.Errorf("%w: horasalida and horallegada are required", domain.ErrValidation)
	}
	if flight.DestinationID <= 0 || flight.AirlineID <= 0 {
		return nil, fmt.Errorf("%w: destinoId and aerolineaId are required", domain.ErrValidation)
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	// Read back so the response carries destination and airline.
	return s.repo.GetByID(ctx, flight.ID)
}

func (s *FlightService) Update(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	if patch.Code != nil {
		code := strings.TrimSpace(*patch.Code)
		if err := domain.Required("codvuelo", code); err != nil {
			return nil, err
		}
		patch.Code = &code
	}

	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Passengers(ctx context.Context, id int64) ([]domain.Passenger, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return flight.Passengers, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn(ctx, "flights cache invalidation failed", "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
