package destinations

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

type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) Create(ctx context.Context, destination *domain.Destination) error {
	args := m.Called(ctx, destination)
	return args.Error(0)
}

func (m *MockDestinationRepository) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) Delete(ctx context.Context, id int64) error {
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

func TestDestinationService_Create(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	service := NewDestinationService(mockRepo, nil, logging.Nop())
	ctx := context.Background()

	mockRepo.On("Create", ctx, &domain.Destination{Description: "Lima"}).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Destination).ID = 1
	}).Return(nil).Once()

	destination, err := service.Create(ctx, "  Lima ")

	require.NoError(t, err)
	assert.Equal(t, int64(1), destination.ID)
	mockRepo.AssertExpectations(t)
}

func TestDestinationService_CreateRequiresDescription(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	service := NewDestinationService(mockRepo, nil, logging.Nop())

	_, err := service.Create(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDestinationService_UpdateInvalidatesFlights(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockInvalidator{}
	service := NewDestinationService(mockRepo, mockCache, logging.Nop())
	ctx := context.Background()
	description := "Nueva"

	mockRepo.On("Update", ctx, int64(2), domain.DestinationPatch{Description: &description}).
		Return(&domain.Destination{ID: 2, Description: description}, nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()

	destination, err := service.Update(ctx, 2, domain.DestinationPatch{Description: &description})

	require.NoError(t, err)
	assert.Equal(t, "Nueva", destination.Description)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestDestinationService_UpdateNotFound(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockInvalidator{}
	service := NewDestinationService(mockRepo, mockCache, logging.Nop())
	ctx := context.Background()

	mockRepo.On("Update", ctx, int64(9), domain.DestinationPatch{}).Return(nil, domain.ErrNotFound).Once()

	_, err := service.Update(ctx, 9, domain.DestinationPatch{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestDestinationService_DeleteInUse(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	service := NewDestinationService(mockRepo, nil, logging.Nop())
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(3)).Return(domain.ErrInUse).Once()

	assert.ErrorIs(t, service.Delete(ctx, 3), domain.ErrInUse)
}
