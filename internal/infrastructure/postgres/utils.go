package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Querier lo que comparten *pgxpool.Pool y pgx.Tx. Los repos lo reciben para funcionar
// igual dentro y fuera de una transacción; Begin sobre una pgx.Tx abre un SAVEPOINT.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// writeErr envuelve errores de escritura; las violaciones de unicidad se traducen a domain.ErrDuplicate.
func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, duplicateDetail(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func duplicateDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return "ya existe un registro con el mismo valor (" + pgErr.ConstraintName + ")"
	}
	return "ya existe un registro con el mismo valor"
}

// nullIfEmpty para columnas uuid opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// inTx ejecuta fn en una transacción (o savepoint si q ya es una tx).
func inTx(ctx context.Context, q Querier, fn func(tx pgx.Tx) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// whereBuilder arma cláusulas WHERE con parámetros posicionales.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET y devuelve el fragmento SQL.
func (w *whereBuilder) page(limit, offset int) string {
	w.args = append(w.args, limit, offset)
	n := len(w.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n-1, n)
}

// catalogWhere filtro común de catálogos: búsqueda parcial en cols y estado activo en activeCol.
func catalogWhere(f repository.ListFilter, activeCol string, cols ...string) *whereBuilder {
	w := &whereBuilder{}
	if f.Search != "" && len(cols) > 0 {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = c + " ILIKE ?"
		}
		w.add("("+strings.Join(parts, " OR ")+")", "%"+escapeLike(f.Search)+"%")
	}
	if f.Active != nil {
		w.add(activeCol+" = ?", *f.Active)
	}
	return w
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
