package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE de PostgreSQL que el dominio distingue.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// sqlState extrae el código SQLSTATE de un error de pgx; cadena vacía si no aplica.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation: violación de constraint único (SKU, email, número de factura).
func isUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// isForeignKeyViolation: la fila está referenciada por otra (ej: categoría con productos).
func isForeignKeyViolation(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}
