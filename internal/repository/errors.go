package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced reports a delete blocked by rows that still point at the record.
	ErrReferenced = errors.New("record is still referenced")
	// ErrUnavailable reports that the store is shedding load after repeated failures.
	ErrUnavailable = errors.New("store unavailable")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// translate maps constraint violations onto the package sentinels. Other
// errors pass through unchanged.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return errors.Join(ErrDuplicate, err)
	case pgForeignKeyViolation:
		return errors.Join(ErrReferenced, err)
	default:
		return err
	}
}
