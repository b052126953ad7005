package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, is_active, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.IsActive, company.CreatedAt, company.UpdatedAt,
	)
	return writeErr("insert company", err)
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// List devuelve empresas con paginación y el total filtrado.
func (r *CompanyRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Company, int, error) {
	w := catalogWhere(f, "is_active", "name")
	query := `SELECT ` + companyColumns + `, COUNT(*) OVER() FROM companies` + w.String() +
		` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Company
		total int
	)
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// ListActive empresas activas. Con categoryID, solo las que tienen alguna marca activa de esa categoría.
func (r *CompanyRepo) ListActive(ctx context.Context, categoryID string) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.is_active`
	var args []any
	if categoryID != "" {
		query += `
		   AND EXISTS (
			SELECT 1 FROM company_brands cb
			  JOIN brands b ON b.id = cb.brand_id
			 WHERE cb.company_id = c.id AND b.is_active AND b.category_id = $1)`
		args = append(args, categoryID)
	}
	query += ` ORDER BY c.name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SetActive activa o desactiva la empresa.
func (r *CompanyRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx, `UPDATE companies SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set company active: %w", err)
	}
	return nil
}

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo marcas y su relación con empresas.
type BrandRepo struct {
	q Querier
}

func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create inserta la marca y sus filas de company_brands en una sola transacción.
func (r *BrandRepo) Create(ctx context.Context, brand *entity.Brand, companyIDs []string) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO brands (id, name, category_id, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			brand.ID, brand.Name, nullIfEmpty(brand.CategoryID), brand.IsActive, brand.CreatedAt, brand.UpdatedAt)
		if err != nil {
			return writeErr("insert brand", err)
		}
		for _, companyID := range companyIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO company_brands (company_id, brand_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				companyID, brand.ID); err != nil {
				return fmt.Errorf("link brand to company %s: %w", companyID, err)
			}
		}
		return nil
	})
}

const brandColumns = `b.id, b.name, COALESCE(b.category_id::text, ''), b.is_active, b.created_at, b.updated_at`

// List marcas paginadas.
func (r *BrandRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Brand, int, error) {
	w := catalogWhere(f, "b.is_active", "b.name")
	query := `SELECT ` + brandColumns + `, COUNT(*) OVER() FROM brands b` + w.String() +
		` ORDER BY b.name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Brand
		total int
	)
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CategoryID, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// ListActiveByCompany marcas activas relacionadas con la empresa; categoryID opcional.
func (r *BrandRepo) ListActiveByCompany(ctx context.Context, companyID, categoryID string) ([]*entity.Brand, error) {
	query := `
		SELECT ` + brandColumns + `
		  FROM brands b
		  JOIN company_brands cb ON cb.brand_id = b.id
		 WHERE cb.company_id = $1 AND b.is_active`
	args := []any{companyID}
	if categoryID != "" {
		query += ` AND b.category_id = $2`
		args = append(args, categoryID)
	}
	query += ` ORDER BY b.name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list company brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CategoryID, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo sucursales y su relación con marcas.
type BranchRepo struct {
	q Querier
}

func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `s.id, s.name, s.company_id, s.is_active, s.created_at, s.updated_at`

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.Name, &b.CompanyID, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta la sucursal y sus filas de branch_brands.
func (r *BranchRepo) Create(ctx context.Context, branch *entity.Branch, brandIDs []string) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO branches (id, name, company_id, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			branch.ID, branch.Name, branch.CompanyID, branch.IsActive, branch.CreatedAt, branch.UpdatedAt)
		if err != nil {
			return writeErr("insert branch", err)
		}
		for _, brandID := range brandIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO branch_brands (branch_id, brand_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				branch.ID, brandID); err != nil {
				return fmt.Errorf("link branch to brand %s: %w", brandID, err)
			}
		}
		return nil
	})
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches s WHERE s.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// List sucursales paginadas.
func (r *BranchRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Branch, int, error) {
	w := catalogWhere(f, "s.is_active", "s.name")
	query := `SELECT ` + branchColumns + `, COUNT(*) OVER() FROM branches s` + w.String() +
		` ORDER BY s.name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Branch
		total int
	)
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.CompanyID, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// ListActiveByCompanyAndBrand sucursales activas de la empresa; con brandID solo las ligadas a esa marca.
func (r *BranchRepo) ListActiveByCompanyAndBrand(ctx context.Context, companyID, brandID string) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches s WHERE s.company_id = $1 AND s.is_active`
	args := []any{companyID}
	if brandID != "" {
		query += ` AND EXISTS (SELECT 1 FROM branch_brands bb WHERE bb.branch_id = s.id AND bb.brand_id = $2)`
		args = append(args, brandID)
	}
	query += ` ORDER BY s.name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list company branches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
