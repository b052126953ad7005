package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

type memBanks struct {
	byID map[string]*entity.Bank
}

func newMemBanks() *memBanks { return &memBanks{byID: map[string]*entity.Bank{}} }

var _ repository.BankRepository = (*memBanks)(nil)

func (m *memBanks) Create(_ context.Context, b *entity.Bank) error {
	for _, existing := range m.byID {
		if existing.NameKey == b.NameKey {
			return domain.ErrDuplicate
		}
	}
	cp := *b
	m.byID[b.ID] = &cp
	return nil
}

func (m *memBanks) GetByID(_ context.Context, id string) (*entity.Bank, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBanks) GetByNameKey(_ context.Context, key string) (*entity.Bank, error) {
	for _, b := range m.byID {
		if b.NameKey == key {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memBanks) List(_ context.Context, f repository.ListFilter) ([]*entity.Bank, int, error) {
	var out []*entity.Bank
	for _, b := range m.byID {
		if f.Search != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.Active != nil && b.IsActive != *f.Active {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (m *memBanks) Update(_ context.Context, b *entity.Bank) error {
	cp := *b
	m.byID[b.ID] = &cp
	return nil
}

func (m *memBanks) SetActive(_ context.Context, id string, active bool) error {
	m.byID[id].IsActive = active
	return nil
}

type memCompanies struct {
	byID map[string]*entity.Company
}

var _ repository.CompanyRepository = (*memCompanies)(nil)

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.byID[id], nil
}

func (m *memCompanies) List(context.Context, repository.ListFilter) ([]*entity.Company, int, error) {
	out := make([]*entity.Company, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *memCompanies) ListActive(context.Context, string) ([]*entity.Company, error) { return nil, nil }

func (m *memCompanies) SetActive(_ context.Context, id string, active bool) error {
	m.byID[id].IsActive = active
	return nil
}

type memProviders struct {
	byID map[string]*entity.Provider
}

var _ repository.ProviderRepository = (*memProviders)(nil)

func (m *memProviders) Create(_ context.Context, p *entity.Provider) error {
	for _, existing := range m.byID {
		if p.Referencia != "" && existing.Referencia == p.Referencia {
			return domain.ErrDuplicate
		}
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memProviders) GetByID(_ context.Context, id string) (*entity.Provider, error) {
	return m.byID[id], nil
}

func (m *memProviders) GetByRFC(_ context.Context, rfc string) (*entity.Provider, error) {
	for _, p := range m.byID {
		if p.RFC == rfc {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProviders) GetActiveByRFC(ctx context.Context, rfc string) (*entity.Provider, error) {
	p, _ := m.GetByRFC(ctx, rfc)
	if p == nil || !p.IsActive {
		return nil, nil
	}
	return p, nil
}

func (m *memProviders) List(context.Context, repository.ListFilter) ([]*entity.Provider, int, error) {
	return nil, 0, nil
}

func (m *memProviders) Update(_ context.Context, p *entity.Provider) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memProviders) SetActive(_ context.Context, id string, active bool) error {
	m.byID[id].IsActive = active
	return nil
}

type memAccounts struct {
	list []*entity.BankAccount
}

func (m *memAccounts) Create(_ context.Context, a *entity.BankAccount) error {
	m.list = append(m.list, a)
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*entity.BankAccount, error) {
	for _, a := range m.list {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) ListByCompany(_ context.Context, companyID string) ([]*entity.BankAccount, error) {
	var out []*entity.BankAccount
	for _, a := range m.list {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memBankNumbers struct {
	list []*entity.BankNumber
}

func (m *memBankNumbers) Create(_ context.Context, bn *entity.BankNumber) error {
	m.list = append(m.list, bn)
	return nil
}

func (m *memBankNumbers) Find(_ context.Context, debited, credited string) (*entity.BankNumber, error) {
	for _, bn := range m.list {
		if bn.BankDebited == debited && bn.BankCredited == credited {
			return bn, nil
		}
	}
	return nil, nil
}

func (m *memBankNumbers) List(_ context.Context, debited string) ([]*entity.BankNumber, error) {
	var out []*entity.BankNumber
	for _, bn := range m.list {
		if debited == "" || bn.BankDebited == debited {
			out = append(out, bn)
		}
	}
	return out, nil
}

type staticAccess map[string]bool

func (s staticAccess) HasAccessToCompany(_ context.Context, _ string, companyID string) (bool, error) {
	return s[companyID], nil
}

type countingInvalidator struct {
	bumps int
	err   error
}

func (c *countingInvalidator) Bump(context.Context) error {
	c.bumps++
	return c.err
}
