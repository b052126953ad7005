package dto

// UpdateVisibilityRequest listas de visibilidad de un usuario. Lista vacía = sin restricción.
type UpdateVisibilityRequest struct {
	Companies []string `json:"companies" validate:"omitempty,dive,uuid"`
	Brands    []string `json:"brands" validate:"omitempty,dive,uuid"`
	Branches  []string `json:"branches" validate:"omitempty,dive,uuid"`
}

// VisibilityResponse registro resuelto y su origen (user, role o none).
type VisibilityResponse struct {
	UserID        string   `json:"userId"`
	Source        string   `json:"source"`
	HasFullAccess bool     `json:"hasFullAccess"`
	Companies     []string `json:"companies"`
	Brands        []string `json:"brands"`
	Branches      []string `json:"branches"`
}

// SelectsResponse ids permitidos para poblar selects. Vacío = sin restricción.
type SelectsResponse struct {
	HasFullAccess bool     `json:"hasFullAccess"`
	Companies     []string `json:"companies"`
	Brands        []string `json:"brands"`
	Branches      []string `json:"branches"`
}

// CheckAccessRequest ids a comprobar; los no informados cuentan como permitidos.
type CheckAccessRequest struct {
	CompanyID string `query:"companyId" validate:"omitempty,uuid"`
	BrandID   string `query:"brandId" validate:"omitempty,uuid"`
	BranchID  string `query:"branchId" validate:"omitempty,uuid"`
}

// CheckAccessResponse resultado por nivel y conjunción.
type CheckAccessResponse struct {
	Company   bool `json:"company"`
	Brand     bool `json:"brand"`
	Branch    bool `json:"branch"`
	HasAccess bool `json:"hasAccess"`
}

// CascadeRequest filtros de los selects en cascada.
type CascadeRequest struct {
	UserID     string `query:"userId" validate:"omitempty,uuid"`
	CategoryID string `query:"categoryId" validate:"omitempty,uuid"`
	CompanyID  string `query:"companyId" validate:"omitempty,uuid"`
	BrandID    string `query:"brandId" validate:"omitempty,uuid"`
}

// OptionResponse opción de un select.
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
