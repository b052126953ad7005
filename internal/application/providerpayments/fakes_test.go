package providerpayments

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica de transacción y savepoint
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu             sync.Mutex
	packages       map[string]*entity.InvoicesPackage
	accounts       map[string]*entity.BankAccount
	bankNumbers    map[string]string // bankDebited|bankCredited -> número
	providers      map[string]*entity.Provider
	providerErr    error
	payments       []*entity.PaymentsByProvider
	paymentErr     error
	layouts        []*entity.BankLayout
	layoutErr      error
	invoices       map[string]string // id -> referencia
	seq            map[string]int64
	packageUpdates int
}

func newMemStore() *memStore {
	return &memStore{
		packages:    map[string]*entity.InvoicesPackage{},
		accounts:    map[string]*entity.BankAccount{},
		bankNumbers: map[string]string{},
		providers:   map[string]*entity.Provider{},
		invoices:    map[string]string{},
		seq:         map[string]int64{},
	}
}

type snapshot struct {
	payments int
	layouts  int
	facturas map[string][]entity.EmbeddedInvoice
	invoices map[string]string
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		payments: len(s.payments),
		layouts:  len(s.layouts),
		facturas: map[string][]entity.EmbeddedInvoice{},
		invoices: map[string]string{},
	}
	for id, p := range s.packages {
		snap.facturas[id] = append([]entity.EmbeddedInvoice(nil), p.Facturas...)
	}
	for id, ref := range s.invoices {
		snap.invoices[id] = ref
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.payments = s.payments[:snap.payments]
	s.layouts = s.layouts[:snap.layouts]
	for id, f := range snap.facturas {
		s.packages[id].Facturas = f
	}
	s.invoices = snap.invoices
}

func (s *memStore) repos() TxRepos {
	return TxRepos{
		Payments:  paymentRepo{s},
		Layouts:   layoutRepo{s},
		Packages:  packageRepo{s},
		Invoices:  invoiceRepo{s},
		Sequences: sequenceRepo{s},
	}
}

// RunPayments deshace todo lo escrito si fn falla.
func (s *memStore) RunPayments(ctx context.Context, fn func(ctx context.Context, repos TxRepos, savepoint Savepoint) error) error {
	before := s.snapshot()
	savepoint := func(ctx context.Context, inner func(repos TxRepos) error) error {
		sp := s.snapshot()
		if err := inner(s.repos()); err != nil {
			s.restore(sp)
			return err
		}
		return nil
	}
	if err := fn(ctx, s.repos(), savepoint); err != nil {
		s.restore(before)
		return err
	}
	return nil
}

type packageRepo struct{ s *memStore }

func (r packageRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.InvoicesPackage, error) {
	var out []*entity.InvoicesPackage
	for _, id := range ids {
		if p, ok := r.s.packages[id]; ok {
			cp := *p
			cp.Facturas = append([]entity.EmbeddedInvoice(nil), p.Facturas...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r packageRepo) UpdateFacturas(_ context.Context, id string, facturas []entity.EmbeddedInvoice) error {
	p, ok := r.s.packages[id]
	if !ok {
		return errors.New("package not found")
	}
	p.Facturas = append([]entity.EmbeddedInvoice(nil), facturas...)
	r.s.packageUpdates++
	return nil
}

type accountRepo struct{ s *memStore }

func (r accountRepo) Create(_ context.Context, a *entity.BankAccount) error {
	r.s.accounts[a.ID] = a
	return nil
}

func (r accountRepo) GetByID(_ context.Context, id string) (*entity.BankAccount, error) {
	return r.s.accounts[id], nil
}

func (r accountRepo) ListByCompany(context.Context, string) ([]*entity.BankAccount, error) {
	return nil, nil
}

type bankNumberRepo struct{ s *memStore }

func (r bankNumberRepo) Create(_ context.Context, bn *entity.BankNumber) error {
	r.s.bankNumbers[bn.BankDebited+"|"+bn.BankCredited] = bn.Number
	return nil
}

func (r bankNumberRepo) Find(_ context.Context, debited, credited string) (*entity.BankNumber, error) {
	n, ok := r.s.bankNumbers[debited+"|"+credited]
	if !ok {
		return nil, nil
	}
	return &entity.BankNumber{BankDebited: debited, BankCredited: credited, Number: n}, nil
}

func (r bankNumberRepo) List(context.Context, string) ([]*entity.BankNumber, error) {
	return nil, nil
}

type providerRepo struct{ s *memStore }

func (r providerRepo) Create(_ context.Context, p *entity.Provider) error {
	r.s.providers[p.RFC] = p
	return nil
}

func (r providerRepo) GetByID(context.Context, string) (*entity.Provider, error) { return nil, nil }

func (r providerRepo) GetByRFC(_ context.Context, rfc string) (*entity.Provider, error) {
	return r.s.providers[rfc], nil
}

func (r providerRepo) GetActiveByRFC(_ context.Context, rfc string) (*entity.Provider, error) {
	if r.s.providerErr != nil {
		return nil, r.s.providerErr
	}
	p := r.s.providers[rfc]
	if p == nil || !p.IsActive {
		return nil, nil
	}
	return p, nil
}

func (r providerRepo) List(context.Context, repository.ListFilter) ([]*entity.Provider, int, error) {
	return nil, 0, nil
}

func (r providerRepo) Update(context.Context, *entity.Provider) error { return nil }
func (r providerRepo) SetActive(context.Context, string, bool) error { return nil }

type paymentRepo struct{ s *memStore }

func (r paymentRepo) Create(_ context.Context, p *entity.PaymentsByProvider) error {
	if r.s.paymentErr != nil {
		return r.s.paymentErr
	}
	for _, existing := range r.s.payments {
		if existing.Referencia == p.Referencia {
			return errors.New("duplicate referencia")
		}
	}
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r paymentRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.PaymentsByProvider, error) {
	var out []*entity.PaymentsByProvider
	for _, p := range r.s.payments {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r paymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.PaymentsByProvider, int, error) {
	var out []*entity.PaymentsByProvider
	for _, p := range r.s.payments {
		if f.ProviderRFC != "" && p.ProviderRFC != f.ProviderRFC {
			continue
		}
		if f.CompanyIDs != nil && !slices.Contains(f.CompanyIDs, p.CompanyProvider) {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

type layoutRepo struct{ s *memStore }

func (r layoutRepo) Create(_ context.Context, l *entity.BankLayout) error {
	if r.s.layoutErr != nil {
		return r.s.layoutErr
	}
	r.s.layouts = append(r.s.layouts, l)
	return nil
}

func (r layoutRepo) GetByID(_ context.Context, id string) (*entity.BankLayout, error) {
	for _, l := range r.s.layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r layoutRepo) List(_ context.Context, f repository.LayoutFilter) ([]*entity.BankLayout, int, error) {
	var out []*entity.BankLayout
	for _, l := range r.s.layouts {
		if f.TipoLayout != "" && l.TipoLayout != f.TipoLayout {
			continue
		}
		if f.CompanyID != "" && l.CompanyID != f.CompanyID {
			continue
		}
		if f.CompanyIDs != nil && !slices.Contains(f.CompanyIDs, l.CompanyID) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	if f.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

type invoiceRepo struct{ s *memStore }

func (r invoiceRepo) UpdateReferencia(_ context.Context, id, ref string) (bool, error) {
	if _, ok := r.s.invoices[id]; !ok {
		return false, nil
	}
	r.s.invoices[id] = ref
	return true, nil
}

type sequenceRepo struct{ s *memStore }

func (r sequenceRepo) Next(_ context.Context, name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq[name]++
	return r.s.seq[name], nil
}

type recordingPublisher struct {
	events []PaymentsGroupedEvent
}

func (p *recordingPublisher) PublishPaymentsGrouped(evt PaymentsGroupedEvent) {
	p.events = append(p.events, evt)
}

type stubPDF struct {
	layout   *entity.BankLayout
	payments []*entity.PaymentsByProvider
}

func (g *stubPDF) Generate(layout *entity.BankLayout, list []*entity.PaymentsByProvider) ([]byte, error) {
	g.layout, g.payments = layout, list
	return []byte("%PDF-1.4"), nil
}
