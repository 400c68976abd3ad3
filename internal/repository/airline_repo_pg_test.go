package repository

import (
	"context"
	"testing"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGAirlineRepository_Update_KeepsDescriptionWhenUnset(t *testing.T) {
	mock := newMockDB(t)
	repo := NewAirlineRepository(mock)

	mock.ExpectQuery(`UPDATE airlines SET description = COALESCE\(\$2, description\)`).
		WithArgs(int64(1), nilArg{}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "description", "created_at", "updated_at"}).AddRow(int64(1), "Avianca", rowTime, rowTime))

	airline, err := repo.Update(context.Background(), 1, domain.AirlinePatch{})

	require.NoError(t, err)
	assert.Equal(t, "Avianca", airline.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGAirlineRepository_Update_Missing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewAirlineRepository(mock)
	description := "LATAM"

	mock.ExpectQuery(`UPDATE airlines`).WithArgs(int64(404), &description).WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), 404, domain.AirlinePatch{Description: &description})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGAirlineRepository_Create_Duplicate(t *testing.T) {
	mock := newMockDB(t)
	repo := NewAirlineRepository(mock)

	mock.ExpectQuery(`INSERT INTO airlines \(description\) VALUES \(\$1\)`).WithArgs("Avianca").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "airlines_description_key"})

	err := repo.Create(context.Background(), &domain.Airline{Description: "Avianca"})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGAirlineRepository_Delete(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM airlines WHERE id=\$1`).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, NewAirlineRepository(mock).Delete(context.Background(), 3), domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("referenced by flights", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM airlines WHERE id=\$1`).WithArgs(int64(3)).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "flights_airline_id_fkey"})

		assert.ErrorIs(t, NewAirlineRepository(mock).Delete(context.Background(), 3), domain.ErrInUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPGDestinationRepository_Delete_Missing(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM destinations WHERE id=\$1`).WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, NewDestinationRepository(mock).Delete(context.Background(), 4), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGDestinationRepository_GetByID_Missing(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`FROM destinations WHERE id=\$1`).WithArgs(int64(4)).WillReturnError(pgx.ErrNoRows)

	_, err := NewDestinationRepository(mock).GetByID(context.Background(), 4)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
