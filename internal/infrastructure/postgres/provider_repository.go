package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo catálogo de proveedores. rfc y referencia tienen índice único.
type ProviderRepo struct {
	q Querier
}

func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

const (
	providerColumns = `
	p.id, p.commercial_name, p.business_name, p.rfc, COALESCE(p.bank_id::text, ''),
	p.account_number, p.clabe, COALESCE(p.referencia, ''), COALESCE(p.sucursal::text, ''),
	p.is_active, p.created_at, p.updated_at,
	COALESCE(b.name, ''), COALESCE(s.name, '')`
	providerFrom = `
	  FROM providers p
	  LEFT JOIN banks b ON b.id = p.bank_id
	  LEFT JOIN branches s ON s.id = p.sucursal`
	providerSelect = `SELECT ` + providerColumns + providerFrom
)

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var (
		p        entity.Provider
		bankName string
	)
	err := row.Scan(&p.ID, &p.CommercialName, &p.BusinessName, &p.RFC, &p.BankID,
		&p.AccountNumber, &p.Clabe, &p.Referencia, &p.Sucursal,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&bankName, &p.SucursalName)
	if err != nil {
		return nil, err
	}
	if p.BankID != "" {
		p.Bank = &entity.Bank{ID: p.BankID, Name: bankName}
	}
	return &p, nil
}

func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO providers (id, commercial_name, business_name, rfc, bank_id, account_number, clabe,
		                       referencia, sucursal, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CommercialName, p.BusinessName, p.RFC, nullIfEmpty(p.BankID), p.AccountNumber, p.Clabe,
		nullIfEmpty(p.Referencia), nullIfEmpty(p.Sucursal), p.IsActive, p.CreatedAt, p.UpdatedAt)
	return writeErr("insert provider", err)
}

func (r *ProviderRepo) getOne(ctx context.Context, where string, arg any) (*entity.Provider, error) {
	p, err := scanProvider(r.q.QueryRow(ctx, providerSelect+` WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

func (r *ProviderRepo) GetByRFC(ctx context.Context, rfc string) (*entity.Provider, error) {
	return r.getOne(ctx, "p.rfc = $1", rfc)
}

// GetActiveByRFC proveedor activo con banco y sucursal resueltos.
func (r *ProviderRepo) GetActiveByRFC(ctx context.Context, rfc string) (*entity.Provider, error) {
	return r.getOne(ctx, "p.rfc = $1 AND p.is_active", rfc)
}

func (r *ProviderRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Provider, int, error) {
	w := catalogWhere(f, "p.is_active", "p.commercial_name", "p.business_name", "p.rfc")
	query := `SELECT ` + providerColumns + `, COUNT(*) OVER()` + providerFrom + w.String() +
		` ORDER BY p.business_name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Provider
		total int
	)
	for rows.Next() {
		var (
			p        entity.Provider
			bankName string
		)
		if err := rows.Scan(&p.ID, &p.CommercialName, &p.BusinessName, &p.RFC, &p.BankID,
			&p.AccountNumber, &p.Clabe, &p.Referencia, &p.Sucursal,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &bankName, &p.SucursalName, &total); err != nil {
			return nil, 0, fmt.Errorf("scan provider: %w", err)
		}
		if p.BankID != "" {
			p.Bank = &entity.Bank{ID: p.BankID, Name: bankName}
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `
		UPDATE providers
		   SET commercial_name = $2, business_name = $3, bank_id = $4, account_number = $5,
		       clabe = $6, referencia = $7, sucursal = $8, updated_at = $9
		 WHERE id = $1`,
		p.ID, p.CommercialName, p.BusinessName, nullIfEmpty(p.BankID), p.AccountNumber,
		p.Clabe, nullIfEmpty(p.Referencia), nullIfEmpty(p.Sucursal), p.UpdatedAt)
	return writeErr("update provider", err)
}

func (r *ProviderRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx, `UPDATE providers SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set provider active: %w", err)
	}
	return nil
}
