package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrPermissionDenied is a terminal store failure: the database role is
// not allowed to perform the operation. Retrying cannot help.
var ErrPermissionDenied = errors.New("permission denied")

// ErrUnauthenticated is a terminal store failure: the connection's
// credentials were rejected. Retrying cannot help.
var ErrUnauthenticated = errors.New("unauthenticated")

// classify maps Postgres errors onto the store failure taxonomy.
// SQLSTATE 42501 (insufficient_privilege) becomes ErrPermissionDenied;
// SQLSTATE class 28 (invalid authorization) becomes ErrUnauthenticated.
// Everything else is returned unchanged and treated as transient.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501":
			return fmt.Errorf("%w: %s", ErrPermissionDenied, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, "28"):
			return fmt.Errorf("%w: %s", ErrUnauthenticated, pgErr.Message)
		}
	}
	return err
}

// IsTerminal reports whether a store error belongs to a failure class
// for which retrying cannot help.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrUnauthenticated)
}
