package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/backoffice-api/internal/application/providerpayments"
)

var _ providerpayments.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPayments inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El savepoint entregado a fn deshace solo su propio trabajo si falla.
func (r *TxRunner) RunPayments(ctx context.Context, fn func(ctx context.Context, repos providerpayments.TxRepos, savepoint providerpayments.Savepoint) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	savepoint := func(ctx context.Context, inner func(repos providerpayments.TxRepos) error) error {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return fmt.Errorf("savepoint: %w", err)
		}
		defer func() { _ = sp.Rollback(ctx) }()
		if err := inner(paymentRepos(sp)); err != nil {
			return err
		}
		if err := sp.Commit(ctx); err != nil {
			return fmt.Errorf("release savepoint: %w", err)
		}
		return nil
	}

	if err := fn(ctx, paymentRepos(tx), savepoint); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func paymentRepos(tx pgx.Tx) providerpayments.TxRepos {
	return providerpayments.TxRepos{
		Payments:  NewPaymentsByProviderRepository(tx),
		Layouts:   NewBankLayoutRepository(tx),
		Packages:  NewInvoicePackageRepository(tx),
		Invoices:  NewImportedInvoiceRepository(tx),
		Sequences: NewSequenceRepository(tx),
	}
}
