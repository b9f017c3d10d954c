package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
	assert.Equal(t, "cafe molido", escapeLike("cafe molido"))
}

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := fmt.Errorf("update: %w", &pgconn.PgError{Code: "23514"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(check))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isCheckViolation(errors.New("boom")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	v := nullable("x")
	if assert.NotNil(t, v) {
		assert.Equal(t, "x", deref(v))
	}
	assert.Equal(t, "", deref(nil))
}
