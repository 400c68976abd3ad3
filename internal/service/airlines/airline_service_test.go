package airlines

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAirlineRepository struct {
	mock.Mock
}

func (m *MockAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	args := m.Called(ctx, airline)
	return args.Error(0)
}

func (m *MockAirlineRepository) Update(ctx context.Context, id int64, patch domain.AirlinePatch) (*domain.Airline, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockAirlineRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestAirlineService_Create(t *testing.T) {
	mockRepo := &MockAirlineRepository{}
	service := NewAirlineService(mockRepo, nil, logging.Nop())
	ctx := context.Background()

	mockRepo.On("Create", ctx, &domain.Airline{Description: "Dorado Air"}).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Airline).ID = 1
	}).Return(nil).Once()

	airline, err := service.Create(ctx, "  Dorado Air ")

	require.NoError(t, err)
	assert.Equal(t, int64(1), airline.ID)
	mockRepo.AssertExpectations(t)
}

func TestAirlineService_CreateRequiresDescription(t *testing.T) {
	mockRepo := &MockAirlineRepository{}
	service := NewAirlineService(mockRepo, nil, logging.Nop())

	_, err := service.Create(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAirlineService_UpdateInvalidatesFlights(t *testing.T) {
	mockRepo := &MockAirlineRepository{}
	mockCache := &MockInvalidator{}
	service := NewAirlineService(mockRepo, mockCache, logging.Nop())
	ctx := context.Background()
	description := "Nueva"

	mockRepo.On("Update", ctx, int64(2), domain.AirlinePatch{Description: &description}).
		Return(&domain.Airline{ID: 2, Description: description}, nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()

	airline, err := service.Update(ctx, 2, domain.AirlinePatch{Description: &description})

	require.NoError(t, err)
	assert.Equal(t, "Nueva", airline.Description)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestAirlineService_UpdateNotFound(t *testing.T) {
	mockRepo := &MockAirlineRepository{}
	mockCache := &MockInvalidator{}
	service := NewAirlineService(mockRepo, mockCache, logging.Nop())
	ctx := context.Background()

	mockRepo.On("Update", ctx, int64(9), domain.AirlinePatch{}).Return(nil, domain.ErrNotFound).Once()

	_, err := service.Update(ctx, 9, domain.AirlinePatch{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestAirlineService_DeleteInUse(t *testing.T) {
	mockRepo := &MockAirlineRepository{}
	service := NewAirlineService(mockRepo, nil, logging.Nop())
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(3)).Return(domain.ErrInUse).Once()

	assert.ErrorIs(t, service.Delete(ctx, 3), domain.ErrInUse)
}
