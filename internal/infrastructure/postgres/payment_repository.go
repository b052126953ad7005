package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.InvoicePackageRepository = (*InvoicePackageRepo)(nil)

// InvoicePackageRepo paquetes de facturas; las líneas viven en columnas JSONB.
type InvoicePackageRepo struct {
	q Querier
}

func NewInvoicePackageRepository(q Querier) *InvoicePackageRepo {
	return &InvoicePackageRepo{q: q}
}

// ListByIDs devuelve los paquetes existentes en el orden de ids.
func (r *InvoicePackageRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.InvoicesPackage, error) {
	query := `
		SELECT id, folio, COALESCE(company_id::text, ''), facturas, pagos_efectivo, created_at, updated_at
		  FROM invoice_packages
		 WHERE id = ANY($1::text[]::uuid[])
		 ORDER BY array_position($1::text[], id::text)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list invoice packages: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoicesPackage
	for rows.Next() {
		var (
			p              entity.InvoicesPackage
			facturas, cash []byte
		)
		if err := rows.Scan(&p.ID, &p.Folio, &p.CompanyID, &facturas, &cash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice package: %w", err)
		}
		if err := decodeJSON(facturas, &p.Facturas); err != nil {
			return nil, fmt.Errorf("decode facturas of package %s: %w", p.ID, err)
		}
		if err := decodeJSON(cash, &p.PagosEfectivo); err != nil {
			return nil, fmt.Errorf("decode pagosEfectivo of package %s: %w", p.ID, err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateFacturas reemplaza el arreglo embebido de facturas del paquete.
func (r *InvoicePackageRepo) UpdateFacturas(ctx context.Context, packageID string, facturas []entity.EmbeddedInvoice) error {
	raw, err := json.Marshal(facturas)
	if err != nil {
		return fmt.Errorf("encode facturas: %w", err)
	}
	_, err = r.q.Exec(ctx, `UPDATE invoice_packages SET facturas = $2, updated_at = now() WHERE id = $1`, packageID, raw)
	if err != nil {
		return fmt.Errorf("update package facturas: %w", err)
	}
	return nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

var _ repository.ImportedInvoiceRepository = (*ImportedInvoiceRepo)(nil)

// ImportedInvoiceRepo documentos canónicos de factura.
type ImportedInvoiceRepo struct {
	q Querier
}

func NewImportedInvoiceRepository(q Querier) *ImportedInvoiceRepo {
	return &ImportedInvoiceRepo{q: q}
}

// UpdateReferencia compara el id como texto: un id embebido que no es UUID no coincide y devuelve false.
func (r *ImportedInvoiceRepo) UpdateReferencia(ctx context.Context, invoiceID, referencia string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE imported_invoices SET referencia = $2 WHERE id::text = $1`, invoiceID, referencia)
	if err != nil {
		return false, fmt.Errorf("update invoice referencia: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

var _ repository.PaymentsByProviderRepository = (*PaymentsByProviderRepo)(nil)

// PaymentsByProviderRepo pagos agrupados; solo inserción.
type PaymentsByProviderRepo struct {
	q Querier
}

func NewPaymentsByProviderRepository(q Querier) *PaymentsByProviderRepo {
	return &PaymentsByProviderRepo{q: q}
}

const paymentColumns = `
	id, grouping_folio, total_amount, provider_rfc, provider_name, branch_name,
	company_provider, bank_number, debited_bank_account, facturas, referencia, is_cash_payment, created_at`

func (r *PaymentsByProviderRepo) Create(ctx context.Context, p *entity.PaymentsByProvider) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments_by_provider (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.GroupingFolio, p.TotalAmount, p.ProviderRFC, p.ProviderName, p.BranchName,
		p.CompanyProvider, p.BankNumber, p.DebitedBankAccount, idList(p.Facturas), p.Referencia,
		p.IsCashPayment, p.CreatedAt)
	return writeErr("insert payment", err)
}

func scanPayment(rows pgx.Rows, extra ...any) (*entity.PaymentsByProvider, error) {
	var p entity.PaymentsByProvider
	dest := []any{&p.ID, &p.GroupingFolio, &p.TotalAmount, &p.ProviderRFC, &p.ProviderName, &p.BranchName,
		&p.CompanyProvider, &p.BankNumber, &p.DebitedBankAccount, &p.Facturas, &p.Referencia,
		&p.IsCashPayment, &p.CreatedAt}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentsByProviderRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.PaymentsByProvider, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+paymentColumns+`
		  FROM payments_by_provider
		 WHERE id = ANY($1::text[]::uuid[])
		 ORDER BY array_position($1::text[], id::text)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list payments by ids: %w", err)
	}
	defer rows.Close()

	var list []*entity.PaymentsByProvider
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List pagos paginados, más recientes primero.
func (r *PaymentsByProviderRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.PaymentsByProvider, int, error) {
	w := &whereBuilder{}
	if f.ProviderRFC != "" {
		w.add("provider_rfc = ?", f.ProviderRFC)
	}
	if f.CompanyID != "" {
		w.add("company_provider::text = ?", f.CompanyID)
	}
	if f.CompanyIDs != nil {
		w.add("company_provider::text = ANY(?::text[])", f.CompanyIDs)
	}
	query := `SELECT ` + paymentColumns + `, COUNT(*) OVER() FROM payments_by_provider` + w.String() +
		` ORDER BY created_at DESC, grouping_folio DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.PaymentsByProvider
		total int
	)
	for rows.Next() {
		p, err := scanPayment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

var _ repository.BankLayoutRepository = (*BankLayoutRepo)(nil)

// BankLayoutRepo layouts bancarios; solo inserción.
type BankLayoutRepo struct {
	q Querier
}

func NewBankLayoutRepository(q Querier) *BankLayoutRepo {
	return &BankLayoutRepo{q: q}
}

const layoutColumns = `
	id, layout_folio, tipo_layout, COALESCE(company_id::text, ''), COALESCE(bank_account_id::text, ''),
	package_ids::text[], agrupaciones::text[], facturas_individuales, total_amount, total_registros,
	estatus, created_at`

func (r *BankLayoutRepo) Create(ctx context.Context, l *entity.BankLayout) error {
	individuales, err := json.Marshal(layoutInvoices(l.FacturasIndividuales))
	if err != nil {
		return fmt.Errorf("encode facturas individuales: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO bank_layouts (id, layout_folio, tipo_layout, company_id, bank_account_id, package_ids,
		                          agrupaciones, facturas_individuales, total_amount, total_registros, estatus, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::text[]::uuid[], $7::text[]::uuid[], $8, $9, $10, $11, $12)`,
		l.ID, l.LayoutFolio, l.TipoLayout, nullIfEmpty(l.CompanyID), nullIfEmpty(l.BankAccountID),
		idList(l.PackageIDs), idList(l.Agrupaciones), individuales, l.TotalAmount, l.TotalRegistros,
		l.Estatus, l.CreatedAt)
	return writeErr("insert bank layout", err)
}

func layoutInvoices(list []entity.LayoutInvoice) []entity.LayoutInvoice {
	if list == nil {
		return []entity.LayoutInvoice{}
	}
	return list
}

func scanLayout(row pgx.Row, extra ...any) (*entity.BankLayout, error) {
	var (
		l   entity.BankLayout
		raw []byte
	)
	dest := []any{&l.ID, &l.LayoutFolio, &l.TipoLayout, &l.CompanyID, &l.BankAccountID,
		&l.PackageIDs, &l.Agrupaciones, &raw, &l.TotalAmount, &l.TotalRegistros, &l.Estatus, &l.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &l.FacturasIndividuales); err != nil {
		return nil, fmt.Errorf("decode facturas individuales: %w", err)
	}
	return &l, nil
}

func (r *BankLayoutRepo) GetByID(ctx context.Context, id string) (*entity.BankLayout, error) {
	l, err := scanLayout(r.q.QueryRow(ctx, `SELECT `+layoutColumns+` FROM bank_layouts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank layout: %w", err)
	}
	return l, nil
}

// List layouts paginados, más recientes primero.
func (r *BankLayoutRepo) List(ctx context.Context, f repository.LayoutFilter) ([]*entity.BankLayout, int, error) {
	w := &whereBuilder{}
	if f.CompanyID != "" {
		w.add("company_id::text = ?", f.CompanyID)
	}
	if f.CompanyIDs != nil {
		w.add("company_id::text = ANY(?::text[])", f.CompanyIDs)
	}
	if f.TipoLayout != "" {
		w.add("tipo_layout = ?", f.TipoLayout)
	}
	query := `SELECT ` + layoutColumns + `, COUNT(*) OVER() FROM bank_layouts` + w.String() +
		` ORDER BY created_at DESC, layout_folio DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bank layouts: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.BankLayout
		total int
	)
	for rows.Next() {
		l, err := scanLayout(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan bank layout: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo secuencias de PostgreSQL para referencias y folios.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next avanza la secuencia; nextval no se revierte con la transacción, así que no hay reutilización.
func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval($1::regclass)`, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("nextval %s: %w", name, err)
	}
	return n, nil
}
