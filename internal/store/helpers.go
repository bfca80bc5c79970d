package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/persistorai/rdf2graph/internal/models"
)

// Result caps for list and traversal queries.
const (
	maxListLimit      = 10000
	traverseNodeLimit = 5000
)

const pgForeignKeyViolation = "23503"

// validID reports whether id is a well-formed UUID. Anything else cannot name a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// notFound maps pgx.ErrNoRows to models.ErrNodeNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNodeNotFound
	}

	return err
}
