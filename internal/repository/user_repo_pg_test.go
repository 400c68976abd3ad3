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

func userRow(id int64, email, hash string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(id, email, hash, rowTime, rowTime)
}

func TestPGUserRepository_FindByEmail(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE lower\(email\)=lower\(\$1\)`).WithArgs("Ana@Example.com").
		WillReturnRows(userRow(1, "ana@example.com", "hash"))

	user, err := repo.FindByEmail(context.Background(), "Ana@Example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUserRepository_FindByEmail_Missing(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE lower\(email\)=lower\(\$1\)`).WithArgs("ghost@example.com").WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUserRepository_Update_PasswordOnly(t *testing.T) {
	mock := newMockDB(t)
	repo := NewUserRepository(mock)
	hash := "new-hash"

	mock.ExpectQuery(`(?s)UPDATE users SET.*email = COALESCE\(\$2, email\).*password_hash = COALESCE\(\$3, password_hash\)`).
		WithArgs(int64(2), nilArg{}, &hash).
		WillReturnRows(userRow(2, "bob@example.com", hash))

	user, err := repo.Update(context.Background(), 2, domain.UserPatch{PasswordHash: &hash})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, hash, user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUserRepository_Delete_Missing(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).WithArgs(int64(8)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, NewUserRepository(mock).Delete(context.Background(), 8), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
