package rolevisibility

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	users map[string]*entity.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

type fakeVisibility struct {
	byUser  map[string]*entity.RoleVisibility
	byRole  map[string]*entity.RoleVisibility
	upserts int
}

func (f *fakeVisibility) GetByUserID(_ context.Context, userID string) (*entity.RoleVisibility, error) {
	return f.byUser[userID], nil
}

func (f *fakeVisibility) GetByRoleID(_ context.Context, roleID string) (*entity.RoleVisibility, error) {
	return f.byRole[roleID], nil
}

func (f *fakeVisibility) UpsertForUser(_ context.Context, rv *entity.RoleVisibility) error {
	f.upserts++
	f.byUser[rv.UserID] = rv
	return nil
}

// fakeHierarchy implementa Company/Brand/BranchRepository sobre slices y relaciones N:M.
type fakeHierarchy struct {
	mu            sync.Mutex
	companies     []*entity.Company
	brands        []*entity.Brand
	branches      []*entity.Branch
	companyBrands map[string][]string // companyID -> brandIDs
	branchBrands  map[string][]string // branchID -> brandIDs
	brandQueries  int
}

var (
	_ repository.CompanyRepository = (*fakeHierarchy)(nil)
	_ repository.BrandRepository   = brandRepo{}
	_ repository.BranchRepository  = branchRepo{}
)

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeHierarchy) brand(id string) *entity.Brand {
	for _, b := range f.brands {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeHierarchy) Create(_ context.Context, c *entity.Company) error {
	f.companies = append(f.companies, c)
	return nil
}

func (f *fakeHierarchy) GetByID(_ context.Context, id string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeHierarchy) List(_ context.Context, _ repository.ListFilter) ([]*entity.Company, int, error) {
	return f.companies, len(f.companies), nil
}

func (f *fakeHierarchy) ListActive(_ context.Context, categoryID string) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		if !c.IsActive {
			continue
		}
		if categoryID != "" {
			match := false
			for _, bid := range f.companyBrands[c.ID] {
				if b := f.brand(bid); b != nil && b.IsActive && b.CategoryID == categoryID {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeHierarchy) SetActive(_ context.Context, id string, active bool) error {
	for _, c := range f.companies {
		if c.ID == id {
			c.IsActive = active
		}
	}
	return nil
}

type brandRepo struct{ *fakeHierarchy }

func (r brandRepo) Create(_ context.Context, b *entity.Brand, companyIDs []string) error {
	r.brands = append(r.brands, b)
	for _, cid := range companyIDs {
		r.companyBrands[cid] = append(r.companyBrands[cid], b.ID)
	}
	return nil
}

func (r brandRepo) List(_ context.Context, _ repository.ListFilter) ([]*entity.Brand, int, error) {
	return r.brands, len(r.brands), nil
}

func (f *fakeHierarchy) ListActiveByCompany(_ context.Context, companyID, categoryID string) ([]*entity.Brand, error) {
	f.mu.Lock()
	f.brandQueries++
	f.mu.Unlock()
	var out []*entity.Brand
	for _, bid := range f.companyBrands[companyID] {
		b := f.brand(bid)
		if b == nil || !b.IsActive {
			continue
		}
		if categoryID != "" && b.CategoryID != categoryID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type branchRepo struct{ *fakeHierarchy }

func (r branchRepo) Create(_ context.Context, br *entity.Branch, brandIDs []string) error {
	r.branches = append(r.branches, br)
	r.branchBrands[br.ID] = brandIDs
	return nil
}

func (r branchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	for _, br := range r.branches {
		if br.ID == id {
			return br, nil
		}
	}
	return nil, nil
}

func (r branchRepo) List(_ context.Context, _ repository.ListFilter) ([]*entity.Branch, int, error) {
	return r.branches, len(r.branches), nil
}

func (f *fakeHierarchy) ListActiveByCompanyAndBrand(_ context.Context, companyID, brandID string) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, br := range f.branches {
		if br.CompanyID != companyID || !br.IsActive {
			continue
		}
		if brandID != "" && !contains(f.branchBrands[br.ID], brandID) {
			continue
		}
		out = append(out, br)
	}
	return out, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*visibility.Structure
	version int64
	bumps   int
	// afterMiss se ejecuta tras un Get sin acierto.
	afterMiss func()
}

func cacheKey(userID string, ver int64) string {
	return fmt.Sprintf("%s:%d", userID, ver)
}

func (c *fakeCache) Version(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *fakeCache) Get(_ context.Context, userID string, ver int64) (*visibility.Structure, bool, error) {
	c.mu.Lock()
	s, ok := c.entries[cacheKey(userID, ver)]
	hook := c.afterMiss
	c.mu.Unlock()
	if !ok && hook != nil {
		hook()
	}
	return s, ok, nil
}

func (c *fakeCache) Set(_ context.Context, userID string, ver int64, s *visibility.Structure) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(userID, ver)] = s
	return nil
}

func (c *fakeCache) Bump(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.bumps++
	return nil
}
