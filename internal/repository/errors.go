package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapError translates driver errors into domain sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, pgErr.ConstraintName)
		}
	}
	return err
}

// mapDeleteError differs from mapError in that a foreign key violation on
// delete means other rows still point at the target.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrInUse, pgErr.ConstraintName)
	}
	return mapError(err)
}

// lockReference takes a KEY SHARE lock on the referenced row so it cannot be
// deleted before the surrounding transaction commits.
func lockReference(ctx context.Context, tx pgx.Tx, table string, id int64) error {
	var found int64
	err := tx.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id=$1 FOR KEY SHARE`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", domain.ErrReferenceNotFound, table, id)
	}
	return err
}
