package providerpayments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/payments"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ListBankLayouts layouts paginados, más recientes primero, con conteos derivados.
func (uc *UseCase) ListBankLayouts(ctx context.Context, in dto.BankLayoutListRequest) (*dto.ListResult[dto.BankLayoutResponse], error) {
	in.Normalize()
	list, total, err := uc.layouts.List(ctx, repository.LayoutFilter{
		CompanyID:  in.CompanyID,
		CompanyIDs: in.VisibleCompanies,
		TipoLayout: in.TipoLayout,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("list bank layouts: %w", err)
	}
	items := make([]dto.BankLayoutResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLayoutResponse(l))
	}
	return &dto.ListResult[dto.BankLayoutResponse]{Items: items, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

// GetBankLayout detalle de un layout.
func (uc *UseCase) GetBankLayout(ctx context.Context, id string) (*dto.BankLayoutResponse, error) {
	layout, err := uc.getLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLayoutResponse(layout), nil
}

func (uc *UseCase) getLayout(ctx context.Context, id string) (*entity.BankLayout, error) {
	if !isUUID(id) {
		return nil, fmt.Errorf("%w: id de layout inválido", domain.ErrInvalidInput)
	}
	layout, err := uc.layouts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bank layout: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("%w: layout bancario no encontrado", domain.ErrNotFound)
	}
	return layout, nil
}

// RenderBankLayoutPDF resumen PDF del layout. Devuelve el contenido y el nombre de archivo sugerido.
func (uc *UseCase) RenderBankLayoutPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", errors.New("generador PDF no configurado")
	}
	layout, err := uc.getLayout(ctx, id)
	if err != nil {
		return nil, "", err
	}
	var list []*entity.PaymentsByProvider
	if layout.TipoLayout == entity.LayoutGrouped && len(layout.Agrupaciones) > 0 {
		list, err = uc.payments.ListByIDs(ctx, layout.Agrupaciones)
		if err != nil {
			return nil, "", fmt.Errorf("list layout payments: %w", err)
		}
	}
	content, err := uc.pdf.Generate(layout, list)
	if err != nil {
		return nil, "", fmt.Errorf("render layout pdf: %w", err)
	}
	return content, layout.LayoutFolio + ".pdf", nil
}

// ListPayments pagos paginados, filtrables por RFC del proveedor y empresa.
func (uc *UseCase) ListPayments(ctx context.Context, in dto.PaymentListRequest) (*dto.ListResult[dto.PaymentResponse], error) {
	in.Normalize()
	list, total, err := uc.payments.List(ctx, repository.PaymentFilter{
		ProviderRFC: payments.NormalizeRFC(in.ProviderRFC),
		CompanyID:   in.CompanyID,
		CompanyIDs:  in.VisibleCompanies,
		Limit:       in.Limit,
		Offset:      in.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPaymentResponse(p))
	}
	return &dto.ListResult[dto.PaymentResponse]{Items: items, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

func toPaymentResponse(p *entity.PaymentsByProvider) dto.PaymentResponse {
	facturas := p.Facturas
	if facturas == nil {
		facturas = []string{}
	}
	return dto.PaymentResponse{
		ID:                 p.ID,
		GroupingFolio:      p.GroupingFolio,
		TotalAmount:        entity.NewAmount(p.TotalAmount),
		ProviderRFC:        p.ProviderRFC,
		ProviderName:       p.ProviderName,
		BranchName:         p.BranchName,
		CompanyProvider:    p.CompanyProvider,
		BankNumber:         p.BankNumber,
		DebitedBankAccount: p.DebitedBankAccount,
		Facturas:           facturas,
		Referencia:         p.Referencia,
		IsCashPayment:      p.IsCashPayment,
		CreatedAt:          p.CreatedAt,
	}
}

func toLayoutInvoiceResponse(s entity.LayoutInvoice) dto.LayoutInvoiceResponse {
	return dto.LayoutInvoiceResponse{
		InvoiceID:    s.InvoiceID,
		PackageID:    s.PackageID,
		PackageFolio: s.PackageFolio,
		UUID:         s.UUID,
		Folio:        s.Folio,
		RFCEmisor:    s.RFCEmisor,
		NombreEmisor: s.NombreEmisor,
		Referencia:   s.Referencia,
		Importe:      entity.NewAmount(s.Importe),
	}
}

func toLayoutResponse(l *entity.BankLayout) *dto.BankLayoutResponse {
	out := &dto.BankLayoutResponse{
		ID:                l.ID,
		LayoutFolio:       l.LayoutFolio,
		TipoLayout:        l.TipoLayout,
		CompanyID:         l.CompanyID,
		BankAccountID:     l.BankAccountID,
		PackageIDs:        l.PackageIDs,
		Agrupaciones:      l.Agrupaciones,
		AgrupacionesCount: len(l.Agrupaciones),
		FacturasCount:     len(l.FacturasIndividuales),
		TotalAmount:       entity.NewAmount(l.TotalAmount),
		TotalRegistros:    l.TotalRegistros,
		Estatus:           l.Estatus,
		CreatedAt:         l.CreatedAt,
	}
	if out.PackageIDs == nil {
		out.PackageIDs = []string{}
	}
	for _, s := range l.FacturasIndividuales {
		out.FacturasIndividuales = append(out.FacturasIndividuales, toLayoutInvoiceResponse(s))
	}
	return out
}
