package repository

// ListFilter filtro común de los listados de catálogo.
type ListFilter struct {
	Search string // coincidencia parcial sin distinguir mayúsculas
	Active *bool  // nil = todos
	Limit  int
	Offset int
}

// LayoutFilter filtro del listado de BankLayout.
// CompanyIDs acota a un conjunto de empresas: nil = sin acotar, vacío = ninguna.
type LayoutFilter struct {
	CompanyID  string
	CompanyIDs []string
	TipoLayout string
	Limit      int
	Offset     int
}

// PaymentFilter filtro del listado de PaymentsByProvider.
// CompanyIDs con la misma semántica que en LayoutFilter.
type PaymentFilter struct {
	ProviderRFC string
	CompanyID   string
	CompanyIDs  []string
	Limit       int
	Offset      int
}
