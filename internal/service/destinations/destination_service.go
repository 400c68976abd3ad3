package destinations

import (
	"context"
	"strings"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/repository"
)

type DestinationUseCase interface {
	List(ctx context.Context) ([]domain.Destination, error)
	GetByID(ctx context.Context, id int64) (*domain.Destination, error)
	Create(ctx context.Context, description string) (*domain.Destination, error)
	Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error)
	Delete(ctx context.Context, id int64) error
}

// FlightsInvalidator drops cached flight listings, which inline destinations.
type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type DestinationService struct {
	repo  repository.DestinationRepository
	cache FlightsInvalidator
	log   logging.Logger
}

func NewDestinationService(repo repository.DestinationRepository, cache FlightsInvalidator, log logging.Logger) *DestinationService {
	return &DestinationService{repo: repo, cache: cache, log: log}
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.repo.List(ctx)
}

func (s *DestinationService) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DestinationService) Create(ctx context.Context, description string) (*domain.Destination, error) {
	description = strings.TrimSpace(description)
	if err := domain.Required("descripcion", description); err != nil {
		return nil, err
	}

	destination := &domain.Destination{Description: description}
	if err := s.repo.Create(ctx, destination); err != nil {
		return nil, err
	}
	return destination, nil
}

func (s *DestinationService) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if err := domain.Required("descripcion", description); err != nil {
			return nil, err
		}
		patch.Description = &description
	}

	destination, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return destination, nil
}

func (s *DestinationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DestinationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn(ctx, "flights cache invalidation failed", "error", err)
	}
}

var _ DestinationUseCase = (*DestinationService)(nil)
