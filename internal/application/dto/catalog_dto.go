package dto

import "time"

// CatalogListRequest filtros comunes de los listados de catálogo.
type CatalogListRequest struct {
	PageRequest
	Search string `query:"search"`
	Active string `query:"active" validate:"omitempty,oneof=true false"`
}

// ActiveFilter traduce el filtro textual a *bool (nil = todos).
func (r CatalogListRequest) ActiveFilter() *bool {
	switch r.Active {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// CreateBankRequest entrada para crear un banco.
type CreateBankRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Code string `json:"code" validate:"omitempty,max=10"`
}

// UpdateBankRequest campos opcionales de un banco.
type UpdateBankRequest struct {
	Name *string `json:"name" validate:"omitempty,max=120"`
	Code *string `json:"code" validate:"omitempty,max=10"`
}

// BankResponse salida de un banco.
type BankResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBankNumberRequest entrada para una clave de ruteo.
type CreateBankNumberRequest struct {
	BankDebited  string `json:"bankDebited" validate:"required,uuid"`
	BankCredited string `json:"bankCredited" validate:"required,max=120"`
	BankNumber   string `json:"bankNumber" validate:"required,len=5,numeric"`
}

// BankNumberResponse salida de una clave de ruteo.
type BankNumberResponse struct {
	ID           string `json:"id"`
	BankDebited  string `json:"bankDebited"`
	BankCredited string `json:"bankCredited"`
	BankNumber   string `json:"bankNumber"`
}

// CreateBankAccountRequest entrada para una cuenta bancaria de empresa.
type CreateBankAccountRequest struct {
	CompanyID     string `json:"companyId" validate:"required,uuid"`
	BankID        string `json:"bankId" validate:"required,uuid"`
	AccountNumber string `json:"accountNumber" validate:"required,max=30"`
	Clabe         string `json:"clabe" validate:"omitempty,len=18,numeric"`
}

// BankAccountResponse salida de una cuenta bancaria.
type BankAccountResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"companyId"`
	BankID        string `json:"bankId"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber"`
	Clabe         string `json:"clabe,omitempty"`
	IsActive      bool   `json:"isActive"`
}

// CreateProviderRequest entrada para crear un proveedor.
type CreateProviderRequest struct {
	CommercialName string `json:"commercialName" validate:"required,max=200"`
	BusinessName   string `json:"businessName" validate:"required,max=200"`
	RFC            string `json:"rfc" validate:"required,min=12,max=13"`
	BankID         string `json:"bankId" validate:"omitempty,uuid"`
	AccountNumber  string `json:"accountNumber" validate:"omitempty,max=30"`
	Clabe          string `json:"clabe" validate:"omitempty,len=18,numeric"`
	Referencia     string `json:"referencia" validate:"omitempty,max=40"`
	Sucursal       string `json:"sucursal" validate:"omitempty,uuid"`
}

// UpdateProviderRequest campos opcionales de un proveedor.
type UpdateProviderRequest struct {
	CommercialName *string `json:"commercialName" validate:"omitempty,max=200"`
	BusinessName   *string `json:"businessName" validate:"omitempty,max=200"`
	BankID         *string `json:"bankId" validate:"omitempty,uuid"`
	AccountNumber  *string `json:"accountNumber" validate:"omitempty,max=30"`
	Clabe          *string `json:"clabe" validate:"omitempty,len=18,numeric"`
	Referencia     *string `json:"referencia" validate:"omitempty,max=40"`
	Sucursal       *string `json:"sucursal" validate:"omitempty,uuid"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID             string    `json:"id"`
	CommercialName string    `json:"commercialName"`
	BusinessName   string    `json:"businessName"`
	RFC            string    `json:"rfc"`
	BankID         string    `json:"bankId,omitempty"`
	AccountNumber  string    `json:"accountNumber,omitempty"`
	Clabe          string    `json:"clabe,omitempty"`
	Referencia     string    `json:"referencia,omitempty"`
	Sucursal       string    `json:"sucursal,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBrandRequest entrada para crear una marca ligada a empresas.
type CreateBrandRequest struct {
	Name       string   `json:"name" validate:"required,max=200"`
	CategoryID string   `json:"categoryId" validate:"omitempty,uuid"`
	CompanyIDs []string `json:"companyIds" validate:"omitempty,dive,uuid"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CategoryID string   `json:"categoryId,omitempty"`
	CompanyIDs []string `json:"companyIds,omitempty"`
	IsActive   bool     `json:"isActive"`
}

// CreateBranchRequest entrada para crear una sucursal ligada a marcas.
type CreateBranchRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	CompanyID string   `json:"companyId" validate:"required,uuid"`
	BrandIDs  []string `json:"brandIds" validate:"omitempty,dive,uuid"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CompanyID string   `json:"companyId"`
	BrandIDs  []string `json:"brandIds,omitempty"`
	IsActive  bool     `json:"isActive"`
}
