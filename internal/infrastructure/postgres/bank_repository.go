package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.BankRepository = (*BankRepo)(nil)

// BankRepo catálogo de bancos. name_key tiene índice único.
type BankRepo struct {
	q Querier
}

func NewBankRepository(q Querier) *BankRepo {
	return &BankRepo{q: q}
}

const bankColumns = `id, name, name_key, code, is_active, created_at, updated_at`

func scanBank(row pgx.Row) (*entity.Bank, error) {
	var b entity.Bank
	if err := row.Scan(&b.ID, &b.Name, &b.NameKey, &b.Code, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BankRepo) Create(ctx context.Context, b *entity.Bank) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO banks (id, name, name_key, code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Name, b.NameKey, b.Code, b.IsActive, b.CreatedAt, b.UpdatedAt)
	return writeErr("insert bank", err)
}

func (r *BankRepo) getOne(ctx context.Context, where string, arg any) (*entity.Bank, error) {
	b, err := scanBank(r.q.QueryRow(ctx, `SELECT `+bankColumns+` FROM banks WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank: %w", err)
	}
	return b, nil
}

func (r *BankRepo) GetByID(ctx context.Context, id string) (*entity.Bank, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *BankRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Bank, error) {
	return r.getOne(ctx, "name_key = $1", nameKey)
}

func (r *BankRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Bank, int, error) {
	w := catalogWhere(f, "is_active", "name", "code")
	query := `SELECT ` + bankColumns + `, COUNT(*) OVER() FROM banks` + w.String() +
		` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Bank
		total int
	)
	for rows.Next() {
		var b entity.Bank
		if err := rows.Scan(&b.ID, &b.Name, &b.NameKey, &b.Code, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan bank: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

func (r *BankRepo) Update(ctx context.Context, b *entity.Bank) error {
	_, err := r.q.Exec(ctx, `
		UPDATE banks SET name = $2, name_key = $3, code = $4, updated_at = $5
		WHERE id = $1`,
		b.ID, b.Name, b.NameKey, b.Code, b.UpdatedAt)
	return writeErr("update bank", err)
}

func (r *BankRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx, `UPDATE banks SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set bank active: %w", err)
	}
	return nil
}

var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// BankAccountRepo cuentas bancarias de empresa.
type BankAccountRepo struct {
	q Querier
}

func NewBankAccountRepository(q Querier) *BankAccountRepo {
	return &BankAccountRepo{q: q}
}

const bankAccountSelect = `
	SELECT a.id, a.company_id, a.bank_id, a.account_number, a.clabe, a.is_active, a.created_at,
	       b.id, b.name, b.name_key, b.code, b.is_active, b.created_at, b.updated_at
	  FROM bank_accounts a
	  JOIN banks b ON b.id = a.bank_id`

func scanBankAccount(row pgx.Row) (*entity.BankAccount, error) {
	var (
		a entity.BankAccount
		b entity.Bank
	)
	err := row.Scan(&a.ID, &a.CompanyID, &a.BankID, &a.AccountNumber, &a.Clabe, &a.IsActive, &a.CreatedAt,
		&b.ID, &b.Name, &b.NameKey, &b.Code, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Bank = &b
	return &a, nil
}

func (r *BankAccountRepo) Create(ctx context.Context, a *entity.BankAccount) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bank_accounts (id, company_id, bank_id, account_number, clabe, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.CompanyID, a.BankID, a.AccountNumber, a.Clabe, a.IsActive, a.CreatedAt)
	return writeErr("insert bank account", err)
}

func (r *BankAccountRepo) GetByID(ctx context.Context, id string) (*entity.BankAccount, error) {
	a, err := scanBankAccount(r.q.QueryRow(ctx, bankAccountSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return a, nil
}

func (r *BankAccountRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.BankAccount, error) {
	rows, err := r.q.Query(ctx, bankAccountSelect+` WHERE a.company_id = $1 ORDER BY b.name, a.account_number`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.BankAccount
	for rows.Next() {
		a, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

var _ repository.BankNumberRepository = (*BankNumberRepo)(nil)

// BankNumberRepo claves de ruteo (banco de cargo, nombre del banco de abono).
type BankNumberRepo struct {
	q Querier
}

func NewBankNumberRepository(q Querier) *BankNumberRepo {
	return &BankNumberRepo{q: q}
}

func (r *BankNumberRepo) Create(ctx context.Context, bn *entity.BankNumber) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bank_numbers (id, bank_debited, bank_credited, bank_number, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		bn.ID, bn.BankDebited, bn.BankCredited, bn.Number, bn.CreatedAt)
	return writeErr("insert bank number", err)
}

// Find compara el nombre del banco de abono sin distinguir mayúsculas.
func (r *BankNumberRepo) Find(ctx context.Context, bankDebitedID, bankCreditedName string) (*entity.BankNumber, error) {
	var bn entity.BankNumber
	err := r.q.QueryRow(ctx, `
		SELECT id, bank_debited, bank_credited, bank_number, created_at
		  FROM bank_numbers
		 WHERE bank_debited = $1 AND lower(bank_credited) = lower($2)`,
		bankDebitedID, bankCreditedName,
	).Scan(&bn.ID, &bn.BankDebited, &bn.BankCredited, &bn.Number, &bn.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bank number: %w", err)
	}
	return &bn, nil
}

// List claves de un banco de cargo; bankDebitedID vacío lista todas.
func (r *BankNumberRepo) List(ctx context.Context, bankDebitedID string) ([]*entity.BankNumber, error) {
	w := &whereBuilder{}
	if bankDebitedID != "" {
		w.add("bank_debited = ?", bankDebitedID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, bank_debited, bank_credited, bank_number, created_at
		  FROM bank_numbers`+w.String()+` ORDER BY bank_credited`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list bank numbers: %w", err)
	}
	defer rows.Close()

	var list []*entity.BankNumber
	for rows.Next() {
		var bn entity.BankNumber
		if err := rows.Scan(&bn.ID, &bn.BankDebited, &bn.BankCredited, &bn.Number, &bn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bank number: %w", err)
		}
		list = append(list, &bn)
	}
	return list, rows.Err()
}
