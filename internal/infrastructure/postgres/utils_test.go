package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestSQLState_ClasificaErroresDePostgres(t *testing.T) {
	unique := &pgconn.PgError{Code: codeUniqueViolation}
	fk := &pgconn.PgError{Code: codeForeignKeyViolation}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))
}

// Los errores de pgx llegan envueltos con fmt.Errorf; errors.As debe seguir
// encontrando el PgError a través de la cadena.
func TestSQLState_ErrorEnvuelto(t *testing.T) {
	wrapped := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: codeUniqueViolation})
	assert.True(t, isUniqueViolation(wrapped))
}

func TestSQLState_ErrorGenerico(t *testing.T) {
	assert.Equal(t, "", sqlState(errors.New("conexión perdida")))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}
