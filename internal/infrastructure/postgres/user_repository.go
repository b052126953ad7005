package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, name, email, COALESCE(role_id::text, ''), is_active
		FROM users WHERE id = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.IsActive)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

var _ repository.RoleVisibilityRepository = (*RoleVisibilityRepo)(nil)

// RoleVisibilityRepo registros de visibilidad (listas uuid[] por nivel).
type RoleVisibilityRepo struct {
	q Querier
}

func NewRoleVisibilityRepository(q Querier) *RoleVisibilityRepo {
	return &RoleVisibilityRepo{q: q}
}

const visibilityColumns = `
	id, COALESCE(user_id::text, ''), COALESCE(role_id::text, ''),
	companies::text[], brands::text[], branches::text[], created_at, updated_at`

func scanVisibility(row pgx.Row) (*entity.RoleVisibility, error) {
	var rv entity.RoleVisibility
	err := row.Scan(&rv.ID, &rv.UserID, &rv.RoleID, &rv.Companies, &rv.Brands, &rv.Branches, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// GetByUserID registro ligado directamente al usuario.
func (r *RoleVisibilityRepo) GetByUserID(ctx context.Context, userID string) (*entity.RoleVisibility, error) {
	rv, err := scanVisibility(r.q.QueryRow(ctx, `SELECT `+visibilityColumns+` FROM role_visibility WHERE user_id = $1`, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visibility by user: %w", err)
	}
	return rv, nil
}

// GetByRoleID registro ligado al rol.
func (r *RoleVisibilityRepo) GetByRoleID(ctx context.Context, roleID string) (*entity.RoleVisibility, error) {
	rv, err := scanVisibility(r.q.QueryRow(ctx, `SELECT `+visibilityColumns+` FROM role_visibility WHERE role_id = $1`, roleID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visibility by role: %w", err)
	}
	return rv, nil
}

// UpsertForUser crea o reemplaza las listas del usuario. Rellena ID y fechas en rv.
func (r *RoleVisibilityRepo) UpsertForUser(ctx context.Context, rv *entity.RoleVisibility) error {
	query := `
		INSERT INTO role_visibility (id, user_id, companies, brands, branches, created_at, updated_at)
		VALUES ($1, $2, $3::text[]::uuid[], $4::text[]::uuid[], $5::text[]::uuid[], now(), now())
		ON CONFLICT (user_id) DO UPDATE
		   SET companies  = EXCLUDED.companies,
		       brands     = EXCLUDED.brands,
		       branches   = EXCLUDED.branches,
		       updated_at = now()
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		rv.ID, rv.UserID, idList(rv.Companies), idList(rv.Brands), idList(rv.Branches),
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return writeErr("upsert visibility", err)
	}
	return nil
}

// idList evita NULL en columnas uuid[] NOT NULL.
func idList(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
