package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

func TestWriteErr_UniqueViolationEsDuplicado(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "banks_name_key_uq"}

	err := writeErr("insert bank", fmt.Errorf("exec: %w", pgErr))

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "banks_name_key_uq")
}

func TestWriteErr_OtrosErroresSeEnvuelven(t *testing.T) {
	cause := errors.New("connection refused")

	err := writeErr("insert bank", cause)

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.Nil(t, writeErr("insert bank", nil))
}

func TestCatalogWhere(t *testing.T) {
	active := true
	w := catalogWhere(repository.ListFilter{Search: "50%_off", Active: &active}, "p.is_active", "p.name", "p.rfc")
	pageSQL := w.page(20, 40)

	assert.Equal(t, " WHERE (p.name ILIKE $1 OR p.rfc ILIKE $1) AND p.is_active = $2", w.String())
	assert.Equal(t, " LIMIT $3 OFFSET $4", pageSQL)
	assert.Equal(t, []any{`%50\%\_off%`, true, 20, 40}, w.args)
}

func TestCatalogWhere_SinFiltros(t *testing.T) {
	w := catalogWhere(repository.ListFilter{}, "is_active", "name")

	assert.Equal(t, "", w.String())
	assert.Equal(t, " LIMIT $1 OFFSET $2", w.page(10, 0))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", nullIfEmpty("x"))
	assert.Equal(t, []string{}, idList(nil))
}
