package airlines

import (
	"context"
	"strings"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/repository"
)

type AirlineUseCase interface {
	List(ctx context.Context) ([]domain.Airline, error)
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	Create(ctx context.Context, description string) (*domain.Airline, error)
	Update(ctx context.Context, id int64, patch domain.AirlinePatch) (*domain.Airline, error)
	Delete(ctx context.Context, id int64) error
}

// FlightsInvalidator drops cached flight listings, which inline airlines.
type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type AirlineService struct {
	repo  repository.AirlineRepository
	cache FlightsInvalidator
	log   logging.Logger
}

func NewAirlineService(repo repository.AirlineRepository, cache FlightsInvalidator, log logging.Logger) *AirlineService {
	return &AirlineService{repo: repo, cache: cache, log: log}
}

func (s *AirlineService) List(ctx context.Context) ([]domain.Airline, error) {
	return s.repo.List(ctx)
}

func (s *AirlineService) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirlineService) Create(ctx context.Context, description string) (*domain.Airline, error) {
	description = strings.TrimSpace(description)
	if err := domain.Required("descripcion", description); err != nil {
		return nil, err
	}

	airline := &domain.Airline{Description: description}
	if err := s.repo.Create(ctx, airline); err != nil {
		return nil, err
	}
	return airline, nil
}

func (s *AirlineService) Update(ctx context.Context, id int64, patch domain.AirlinePatch) (*domain.Airline, error) {
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if err := domain.Required("descripcion", description); err != nil {
			return nil, err
		}
		patch.Description = &description
	}

	airline, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return airline, nil
}

func (s *AirlineService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AirlineService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn(ctx, "flights cache invalidation failed", "error", err)
	}
}

var _ AirlineUseCase = (*AirlineService)(nil)
