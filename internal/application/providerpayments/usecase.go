// Package providerpayments agrupa facturas de paquetes en pagos por proveedor y genera layouts bancarios.
package providerpayments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/payments"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Deps dependencias del caso de uso. Events y PDF son opcionales.
type Deps struct {
	Packages     repository.InvoicePackageRepository
	BankAccounts repository.BankAccountRepository
	BankNumbers  repository.BankNumberRepository
	Providers    repository.ProviderRepository
	Payments     repository.PaymentsByProviderRepository
	Layouts      repository.BankLayoutRepository
	Tx           TxRunner
	Events       EventPublisher
	PDF          LayoutPDFGenerator
	Logger       zerolog.Logger
}

// UseCase casos de uso de pagos por proveedor.
type UseCase struct {
	packages     repository.InvoicePackageRepository
	bankAccounts repository.BankAccountRepository
	bankNumbers  repository.BankNumberRepository
	providers    repository.ProviderRepository
	payments     repository.PaymentsByProviderRepository
	layouts      repository.BankLayoutRepository
	tx           TxRunner
	events       EventPublisher
	pdf          LayoutPDFGenerator
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	events := d.Events
	if events == nil {
		events = NoopPublisher{}
	}
	return &UseCase{
		packages:     d.Packages,
		bankAccounts: d.BankAccounts,
		bankNumbers:  d.BankNumbers,
		providers:    d.Providers,
		payments:     d.Payments,
		layouts:      d.Layouts,
		tx:           d.Tx,
		events:       events,
		pdf:          d.PDF,
		log:          d.Logger,
		now:          time.Now,
	}
}

// plannedPayment grupo ya resuelto contra su proveedor, listo para insertar.
type plannedPayment struct {
	group      *payments.Group
	provider   *entity.Provider
	bankNumber string
}

// GroupInvoicesByProvider agrupa las facturas de los paquetes por RFC emisor y crea un pago por grupo
// más un layout "grouped". Los RFC sin proveedor activo se omiten y se reportan en el resumen.
func (uc *UseCase) GroupInvoicesByProvider(ctx context.Context, in dto.GroupInvoicesRequest) (*dto.GroupInvoicesResponse, error) {
	packageIDs, err := cleanPackageIDs(in.PackageIDs)
	if err != nil {
		return nil, err
	}
	if !isUUID(in.BankAccountID) {
		return nil, fmt.Errorf("%w: bankAccountId es obligatorio y debe ser un UUID", domain.ErrInvalidInput)
	}
	if !isUUID(in.CompanyID) {
		return nil, fmt.Errorf("%w: companyId es obligatorio y debe ser un UUID", domain.ErrInvalidInput)
	}

	pkgs, err := uc.packages.ListByIDs(ctx, packageIDs)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: no se encontraron paquetes de facturas", domain.ErrNotFound)
	}
	account, err := uc.bankAccounts.GetByID(ctx, in.BankAccountID)
	if err != nil {
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta bancaria no encontrada", domain.ErrNotFound)
	}

	groups := payments.GroupByIssuer(pkgs)
	plan, skipped, err := uc.resolveGroups(ctx, groups, account)
	if err != nil {
		return nil, err
	}

	out := &dto.GroupInvoicesResponse{
		Payments: []dto.PaymentResponse{},
		Summary: dto.GroupingSummary{
			GroupsFound: len(groups),
			SkippedRFCs: skipped,
		},
	}
	if len(plan) == 0 {
		uc.log.Info().Int("groups", len(groups)).Int("skipped", len(skipped)).Msg("grouping produced no payments")
		return out, nil
	}

	at := uc.now()
	var created []*entity.PaymentsByProvider
	var layout *entity.BankLayout
	err = uc.tx.RunPayments(ctx, func(ctx context.Context, repos TxRepos, savepoint Savepoint) error {
		codes := codeGenerator{seq: repos.Sequences, at: at}
		created = created[:0]
		for _, p := range plan {
			payment, err := newPayment(ctx, codes, p, account, in.CompanyID, at)
			if err != nil {
				return err
			}
			if err := repos.Payments.Create(ctx, payment); err != nil {
				return fmt.Errorf("create payment for %s: %w", p.group.Key, err)
			}
			created = append(created, payment)
		}

		candidate := groupedLayout(created, packageIDs, in.CompanyID, account.ID, at)
		err := savepoint(ctx, func(r TxRepos) error {
			folio, err := codeGenerator{seq: r.Sequences, at: at}.layoutFolio(ctx)
			if err != nil {
				return err
			}
			candidate.LayoutFolio = folio
			return r.Layouts.Create(ctx, candidate)
		})
		if err != nil {
			uc.log.Error().Err(err).Str("company_id", in.CompanyID).Int("payments", len(created)).
				Msg("bank layout not created, payments kept")
			layout = nil
			return nil
		}
		layout = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	cash := 0
	total := decimal.Zero
	for _, p := range created {
		if p.IsCashPayment {
			cash++
		}
		out.Payments = append(out.Payments, toPaymentResponse(p))
		total = total.Add(p.TotalAmount)
	}
	out.Summary.TotalAmount = entity.NewAmount(total)
	out.Summary.PaymentsCreated = len(created)
	out.Summary.CashGroups = cash
	if layout != nil {
		out.Layout = toLayoutResponse(layout)
	}

	uc.publish(entity.LayoutGrouped, layout, in.CompanyID, paymentIDs(created), invoiceCount(created), total, at)
	uc.log.Info().
		Str("company_id", in.CompanyID).
		Int("groups", len(groups)).
		Int("payments", len(created)).
		Int("skipped", len(skipped)).
		Str("total", out.Summary.TotalAmount.String()).
		Msg("invoices grouped by provider")
	return out, nil
}

// resolveGroups resuelve cada grupo no efectivo contra su proveedor activo y la clave de ruteo.
func (uc *UseCase) resolveGroups(ctx context.Context, groups []*payments.Group, account *entity.BankAccount) ([]plannedPayment, []string, error) {
	plan := make([]plannedPayment, 0, len(groups))
	skipped := []string{}
	for _, g := range groups {
		if g.IsCashPayment {
			plan = append(plan, plannedPayment{group: g})
			continue
		}
		provider, err := uc.providers.GetActiveByRFC(ctx, g.RFC)
		if err != nil {
			return nil, nil, fmt.Errorf("get provider %s: %w", g.RFC, err)
		}
		if provider == nil {
			uc.log.Warn().Str("rfc", g.RFC).Str("total", g.TotalAmount.String()).Msg("no active provider for RFC, group skipped")
			skipped = append(skipped, g.RFC)
			continue
		}
		number, err := uc.resolveBankNumber(ctx, account, provider)
		if err != nil {
			return nil, nil, err
		}
		plan = append(plan, plannedPayment{group: g, provider: provider, bankNumber: number})
	}
	return plan, skipped, nil
}

func (uc *UseCase) resolveBankNumber(ctx context.Context, account *entity.BankAccount, provider *entity.Provider) (string, error) {
	if provider.Bank == nil || provider.Bank.Name == "" {
		return payments.DefaultBankNumber, nil
	}
	bn, err := uc.bankNumbers.Find(ctx, account.BankID, provider.Bank.Name)
	if err != nil {
		return "", fmt.Errorf("find bank number: %w", err)
	}
	if bn == nil || bn.Number == "" {
		return payments.DefaultBankNumber, nil
	}
	return bn.Number, nil
}

func newPayment(ctx context.Context, codes codeGenerator, p plannedPayment, account *entity.BankAccount, companyID string, at time.Time) (*entity.PaymentsByProvider, error) {
	ref, err := codes.referencia(ctx)
	if err != nil {
		return nil, err
	}
	folio, err := codes.groupingFolio(ctx)
	if err != nil {
		return nil, err
	}
	payment := &entity.PaymentsByProvider{
		ID:                 uuid.New().String(),
		GroupingFolio:      folio,
		TotalAmount:        p.group.TotalAmount,
		CompanyProvider:    companyID,
		DebitedBankAccount: account.ID,
		Facturas:           append([]string(nil), p.group.InvoiceIDs...),
		Referencia:         ref,
		IsCashPayment:      p.group.IsCashPayment,
		CreatedAt:          at,
	}
	if p.group.IsCashPayment {
		payment.ProviderRFC = p.group.Key
		payment.ProviderName = payments.CashProviderName
		return payment, nil
	}
	payment.ProviderRFC = p.group.RFC
	payment.ProviderName = providerName(p.provider, p.group.IssuerName)
	payment.BranchName = p.provider.SucursalName
	payment.BankNumber = p.bankNumber
	return payment, nil
}

func providerName(p *entity.Provider, fallback string) string {
	switch {
	case p.BusinessName != "":
		return p.BusinessName
	case p.CommercialName != "":
		return p.CommercialName
	}
	return fallback
}

func groupedLayout(created []*entity.PaymentsByProvider, packageIDs []string, companyID, accountID string, at time.Time) *entity.BankLayout {
	total := decimal.Zero
	for _, p := range created {
		total = total.Add(p.TotalAmount)
	}
	return &entity.BankLayout{
		ID:             uuid.New().String(),
		TipoLayout:     entity.LayoutGrouped,
		CompanyID:      companyID,
		BankAccountID:  accountID,
		PackageIDs:     packageIDs,
		Agrupaciones:   paymentIDs(created),
		TotalAmount:    total,
		TotalRegistros: len(created),
		Estatus:        entity.LayoutStatusGenerated,
		CreatedAt:      at,
	}
}

// GenerateIndividualReferences asigna una referencia nueva a cada factura elegible, en el paquete y en
// el documento canónico, y registra un layout "individual" con el snapshot de las facturas tocadas.
func (uc *UseCase) GenerateIndividualReferences(ctx context.Context, in dto.IndividualReferencesRequest) (*dto.IndividualReferencesResponse, error) {
	packageIDs, err := cleanPackageIDs(in.PackageIDs)
	if err != nil {
		return nil, err
	}
	if in.CompanyID != "" && !isUUID(in.CompanyID) {
		return nil, fmt.Errorf("%w: companyId debe ser un UUID", domain.ErrInvalidInput)
	}
	if in.BankAccountID != "" && !isUUID(in.BankAccountID) {
		return nil, fmt.Errorf("%w: bankAccountId debe ser un UUID", domain.ErrInvalidInput)
	}

	pkgs, err := uc.packages.ListByIDs(ctx, packageIDs)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: no se encontraron paquetes de facturas", domain.ErrNotFound)
	}

	at := uc.now()
	var (
		snapshots []entity.LayoutInvoice
		embedded  int
		canonical int
		layout    *entity.BankLayout
	)
	err = uc.tx.RunPayments(ctx, func(ctx context.Context, repos TxRepos, savepoint Savepoint) error {
		codes := codeGenerator{seq: repos.Sequences, at: at}
		snapshots, embedded, canonical = nil, 0, 0
		for _, pkg := range pkgs {
			facturas := append([]entity.EmbeddedInvoice(nil), pkg.Facturas...)
			touched := 0
			for i := range facturas {
				inv := &facturas[i]
				if !payments.QualifiesForReference(*inv) {
					continue
				}
				ref, err := codes.referencia(ctx)
				if err != nil {
					return err
				}
				inv.Referencia = ref
				touched++

				ok, err := repos.Invoices.UpdateReferencia(ctx, inv.ID, ref)
				if err != nil {
					return fmt.Errorf("update imported invoice %s: %w", inv.ID, err)
				}
				if ok {
					canonical++
				}
				snapshots = append(snapshots, entity.LayoutInvoice{
					InvoiceID:    inv.ID,
					PackageID:    pkg.ID,
					PackageFolio: pkg.Folio,
					UUID:         inv.UUID,
					Folio:        inv.Folio,
					RFCEmisor:    payments.NormalizeRFC(inv.RFCEmisor),
					NombreEmisor: inv.NombreEmisor,
					Referencia:   ref,
					Importe:      payments.InvoiceAmount(*inv),
				})
			}
			if touched == 0 {
				continue
			}
			if err := repos.Packages.UpdateFacturas(ctx, pkg.ID, facturas); err != nil {
				return fmt.Errorf("update package %s: %w", pkg.ID, err)
			}
			embedded += touched
		}

		if len(snapshots) == 0 {
			return nil
		}
		candidate := individualLayout(snapshots, packageIDs, in.CompanyID, in.BankAccountID, at)
		err := savepoint(ctx, func(r TxRepos) error {
			folio, err := codeGenerator{seq: r.Sequences, at: at}.layoutFolio(ctx)
			if err != nil {
				return err
			}
			candidate.LayoutFolio = folio
			return r.Layouts.Create(ctx, candidate)
		})
		if err != nil {
			uc.log.Error().Err(err).Int("invoices", len(snapshots)).Msg("individual bank layout not created, references kept")
			layout = nil
			return nil
		}
		layout = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	if embedded != canonical {
		uc.log.Warn().
			Int("embedded_updated", embedded).
			Int("canonical_updated", canonical).
			Msg("reference sync mismatch between packages and imported invoices")
	}

	out := &dto.IndividualReferencesResponse{
		Invoices: make([]dto.LayoutInvoiceResponse, 0, len(snapshots)),
		Summary: dto.IndividualReferencesSummary{
			PackagesProcessed: len(pkgs),
			InvoicesUpdated:   len(snapshots),
			EmbeddedUpdated:   embedded,
			CanonicalUpdated:  canonical,
		},
	}
	total := decimal.Zero
	for _, s := range snapshots {
		out.Invoices = append(out.Invoices, toLayoutInvoiceResponse(s))
		total = total.Add(s.Importe)
	}
	out.Summary.TotalAmount = entity.NewAmount(total)
	if layout != nil {
		out.Layout = toLayoutResponse(layout)
	}
	if len(snapshots) > 0 {
		uc.publish(entity.LayoutIndividual, layout, in.CompanyID, nil, len(snapshots), total, at)
	}
	return out, nil
}

func individualLayout(snapshots []entity.LayoutInvoice, packageIDs []string, companyID, accountID string, at time.Time) *entity.BankLayout {
	total := decimal.Zero
	for _, s := range snapshots {
		total = total.Add(s.Importe)
	}
	return &entity.BankLayout{
		ID:                   uuid.New().String(),
		TipoLayout:           entity.LayoutIndividual,
		CompanyID:            companyID,
		BankAccountID:        accountID,
		PackageIDs:           packageIDs,
		FacturasIndividuales: snapshots,
		TotalAmount:          total,
		TotalRegistros:       len(snapshots),
		Estatus:              entity.LayoutStatusGenerated,
		CreatedAt:            at,
	}
}

func (uc *UseCase) publish(tipo string, layout *entity.BankLayout, companyID string, ids []string, invoices int, total decimal.Decimal, at time.Time) {
	evt := PaymentsGroupedEvent{
		TipoLayout:    tipo,
		CompanyID:     companyID,
		PaymentIDs:    ids,
		InvoicesCount: invoices,
		TotalAmount:   total,
		OccurredAt:    at,
	}
	if layout != nil {
		evt.LayoutID = layout.ID
		evt.LayoutFolio = layout.LayoutFolio
	}
	uc.events.PublishPaymentsGrouped(evt)
}

// cleanPackageIDs exige al menos un id, todos UUID; elimina duplicados.
func cleanPackageIDs(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: packageIds es obligatorio", domain.ErrInvalidInput)
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: packageIds contiene un id inválido %q", domain.ErrInvalidInput, id)
		}
		key := parsed.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func paymentIDs(list []*entity.PaymentsByProvider) []string {
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	return ids
}

func invoiceCount(list []*entity.PaymentsByProvider) int {
	n := 0
	for _, p := range list {
		n += len(p.Facturas)
	}
	return n
}
