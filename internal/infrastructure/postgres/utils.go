package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que las capas superiores traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation detecta choques de clave natural (email, SKU, código).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation detecta borrados vetados por referencias vivas
// (p. ej. un producto con movimientos históricos).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}
