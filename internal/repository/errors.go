package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound masque pgx.ErrNoRows pour que les couches hautes ne dépendent
// pas du driver.
var ErrNotFound = errors.New("introuvable")

// ErrDuplicate signale une violation de contrainte d'unicité.
var ErrDuplicate = errors.New("doublon")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicate
		case "23503": // foreign_key_violation : la ressource référencée n'existe pas
			return ErrNotFound
		}
	}
	return err
}
