package passengers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/kafka"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/photostore"
	"github.com/Domenick1991/dorado/internal/repository"
)

type PassengerUseCase interface {
	List(ctx context.Context) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error)
	Update(ctx context.Context, id int64, input UpdatePassengerInput) (*domain.Passenger, error)
	Delete(ctx context.Context, id int64) error
}

type Photo struct {
	Filename string
	Content  io.Reader
}

type CreatePassengerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	FlightID  int64
	Photo     *Photo
}

type UpdatePassengerInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	FlightID  *int64
	Photo     *Photo
}

type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type PassengerService struct {
	repo      repository.PassengerRepository
	photos    photostore.Store
	publisher kafka.PassengerPublisher
	cache     FlightsInvalidator
	log       logging.Logger
	now       func() time.Time
}

type PassengerServiceOption func(*PassengerService)

func WithPublisher(p kafka.PassengerPublisher) PassengerServiceOption {
	return func(s *PassengerService) {
		s.publisher = p
	}
}

func WithFlightsCache(c FlightsInvalidator) PassengerServiceOption {
	return func(s *PassengerService) {
		s.cache = c
	}
}

func WithClock(now func() time.Time) PassengerServiceOption {
	return func(s *PassengerService) {
		s.now = now
	}
}

func NewPassengerService(repo repository.PassengerRepository, photos photostore.Store, log logging.Logger, opts ...PassengerServiceOption) *PassengerService {
	service := &PassengerService{
		repo:   repo,
		photos: photos,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *PassengerService) List(ctx context.Context) ([]domain.Passenger, error) {
	return s.repo.List(ctx)
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores the photo first, then inserts the row. A failed insert
// removes the photo again.
func (s *PassengerService) Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error) {
	if err := validateCreate(&input); err != nil {
		return nil, err
	}

	key, url, err := s.savePhoto(ctx, input.Photo)
	if err != nil {
		return nil, err
	}

	passenger := &domain.Passenger{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		PhotoURL:  &url,
		PhotoKey:  &key,
		FlightID:  input.FlightID,
	}
	if err := s.repo.Create(ctx, passenger); err != nil {
		s.discardPhoto(ctx, key)
		return nil, err
	}

	s.afterWrite(ctx, kafka.EventPassengerCreated, passenger)

	// Read back so the response carries the flight.
	return s.repo.GetByID(ctx, passenger.ID)
}

// Update writes a replacement photo before touching the row and removes the
// previous photo only once the row points at the new one.
func (s *PassengerService) Update(ctx context.Context, id int64, input UpdatePassengerInput) (*domain.Passenger, error) {
	patch, err := buildPatch(input)
	if err != nil {
		return nil, err
	}

	var newKey string
	if input.Photo != nil {
		key, url, err := s.savePhoto(ctx, input.Photo)
		if err != nil {
			return nil, err
		}
		newKey = key
		patch.PhotoKey = &key
		patch.PhotoURL = &url
	}

	updated, previous, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if newKey != "" {
			s.discardPhoto(ctx, newKey)
		}
		return nil, err
	}

	if newKey != "" && previous.PhotoKey != nil && *previous.PhotoKey != newKey {
		s.discardPhoto(ctx, *previous.PhotoKey)
	}

	s.afterWrite(ctx, kafka.EventPassengerUpdated, updated)
	return s.repo.GetByID(ctx, id)
}

// Delete removes the photo best-effort and then the row.
func (s *PassengerService) Delete(ctx context.Context, id int64) error {
	passenger, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if passenger.PhotoKey != nil {
		s.discardPhoto(ctx, *passenger.PhotoKey)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.afterWrite(ctx, kafka.EventPassengerDeleted, passenger)
	return nil
}

func (s *PassengerService) savePhoto(ctx context.Context, photo *Photo) (key, url string, err error) {
	key = photostore.ObjectKey(s.now(), photo.Filename)
	url, err = s.photos.Save(ctx, key, photo.Content)
	if err != nil {
		return "", "", fmt.Errorf("save photo: %w", err)
	}
	return key, url, nil
}

func (s *PassengerService) discardPhoto(ctx context.Context, key string) {
	if err := s.photos.Delete(ctx, key); err != nil {
		s.log.Error(ctx, "photo delete failed", "key", key, "error", err)
	}
}

func (s *PassengerService) afterWrite(ctx context.Context, eventType string, p *domain.Passenger) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn(ctx, "flights cache invalidation failed", "error", err)
		}
	}
	if s.publisher != nil {
		event := kafka.NewPassengerEvent(eventType, p, s.now())
		if err := s.publisher.PublishPassenger(ctx, event); err != nil {
			s.log.Error(ctx, "passenger event publish failed", "type", eventType, "passenger_id", p.ID, "error", err)
		}
	}
}

func validateCreate(input *CreatePassengerInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	for _, f := range []struct{ name, value string }{
		{"nombre", input.FirstName},
		{"apellidos", input.LastName},
		{"email", input.Email},
		{"telefono", input.Phone},
	} {
		if err := domain.Required(f.name, f.value); err != nil {
			return err
		}
	}
	if input.FlightID <= 0 {
		return fmt.Errorf("%w: vueloId is required", domain.ErrValidation)
	}
	if input.Photo == nil || input.Photo.Content == nil {
		return fmt.Errorf("%w: foto must be a file", domain.ErrValidation)
	}
	return nil
}

func buildPatch(input UpdatePassengerInput) (domain.PassengerPatch, error) {
	patch := domain.PassengerPatch{FlightID: input.FlightID}

	for _, f := range []struct {
		name string
		in   *string
		out  **string
	}{
		{"nombre", input.FirstName, &patch.FirstName},
		{"apellidos", input.LastName, &patch.LastName},
		{"email", input.Email, &patch.Email},
		{"telefono", input.Phone, &patch.Phone},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if err := domain.Required(f.name, v); err != nil {
			return patch, err
		}
		*f.out = &v
	}

	if patch.FlightID != nil && *patch.FlightID <= 0 {
		return patch, fmt.Errorf("%w: invalid vueloId", domain.ErrValidation)
	}
	if input.Photo != nil && input.Photo.Content == nil {
		return patch, fmt.Errorf("%w: foto must be a file", domain.ErrValidation)
	}
	return patch, nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
