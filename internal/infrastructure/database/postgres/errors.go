package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation indique une violation de contrainte d'unicité
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsNoRows indique qu'une requête QueryRow n'a retourné aucune ligne
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
