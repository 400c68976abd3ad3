package repository

import (
	"context"
	"testing"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectPassengerForUpdate = `FROM passengers p WHERE p.id=\$1 FOR UPDATE`

func TestPGPassengerRepository_Update_ReturnsPreviousRow(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPassengerRepository(mock)
	newKey := "2000-new.png"
	newURL := "/uploads/" + newKey

	mock.ExpectBegin()
	mock.ExpectQuery(selectPassengerForUpdate).WithArgs(int64(5)).WillReturnRows(passengerRow(5, "1000-old.png", 3))
	mock.ExpectQuery(`(?s)UPDATE passengers p SET.*photo_url = COALESCE\(\$6, p\.photo_url\).*photo_key = COALESCE\(\$7, p\.photo_key\)`).
		WithArgs(int64(5), nilArg{}, nilArg{}, nilArg{}, nilArg{}, &newURL, &newKey, nilArg{}).
		WillReturnRows(passengerRow(5, newKey, 3))
	mock.ExpectCommit()

	updated, previous, err := repo.Update(context.Background(), 5, domain.PassengerPatch{PhotoURL: &newURL, PhotoKey: &newKey})

	require.NoError(t, err)
	assert.Equal(t, "1000-old.png", *previous.PhotoKey)
	assert.Equal(t, newKey, *updated.PhotoKey)
	assert.Equal(t, newURL, *updated.PhotoURL)
	assert.Equal(t, "Ana", updated.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGPassengerRepository_Update_Missing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPassengerRepository(mock)
	flightID := int64(99)

	mock.ExpectBegin()
	mock.ExpectQuery(selectPassengerForUpdate).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := repo.Update(context.Background(), 404, domain.PassengerPatch{FlightID: &flightID})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGPassengerRepository_Update_MissingFlight(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPassengerRepository(mock)
	flightID := int64(99)

	mock.ExpectBegin()
	mock.ExpectQuery(selectPassengerForUpdate).WithArgs(int64(5)).WillReturnRows(passengerRow(5, "1000-old.png", 3))
	mock.ExpectQuery(`SELECT id FROM flights WHERE id=\$1 FOR KEY SHARE`).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := repo.Update(context.Background(), 5, domain.PassengerPatch{FlightID: &flightID})

	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGPassengerRepository_Create_MissingFlight(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPassengerRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM flights WHERE id=\$1 FOR KEY SHARE`).WithArgs(int64(42)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &domain.Passenger{FirstName: "Ana", FlightID: 42})

	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGPassengerRepository_GetByID_Missing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPassengerRepository(mock)

	mock.ExpectQuery(`JOIN flights f ON f\.id = p\.flight_id WHERE p\.id=\$1`).WithArgs(int64(7)).WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGPassengerRepository_Delete_Missing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPassengerRepository(mock)

	mock.ExpectExec(`DELETE FROM passengers WHERE id=\$1`).WithArgs(int64(6)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 6), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGPassengerRepository_PhotoKeys(t *testing.T) {
	mock := newMockDB(t)
	repo := NewPassengerRepository(mock)

	mock.ExpectQuery(`SELECT photo_key FROM passengers WHERE photo_key IS NOT NULL`).
		WillReturnRows(pgxmock.NewRows([]string{"photo_key"}).AddRow("1000-a.png").AddRow("1001-b.png"))

	keys, err := repo.PhotoKeys(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"1000-a.png": {}, "1001-b.png": {}}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
