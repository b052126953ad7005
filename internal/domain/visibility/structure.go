package visibility

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// BranchNode sucursal visible.
type BranchNode struct {
	Name string `json:"name"`
}

// BrandNode marca visible con sus sucursales.
type BrandNode struct {
	Name     string                `json:"name"`
	Branches map[string]BranchNode `json:"branches"`
}

// CompanyNode empresa visible con sus marcas.
type CompanyNode struct {
	Name   string               `json:"name"`
	Brands map[string]BrandNode `json:"brands"`
}

// Structure árbol jerárquico de lo que el usuario puede ver.
type Structure struct {
	HasFullAccess bool                   `json:"hasFullAccess"`
	Companies     map[string]CompanyNode `json:"companies"`
}

// CompanyTree datos ya cargados de una empresa: sus marcas activas y,
// por marca, las sucursales activas de la empresa relacionadas con esa marca.
type CompanyTree struct {
	Company         *entity.Company
	Brands          []*entity.Brand
	BranchesByBrand map[string][]*entity.Branch
}

// BuildCompanyNode filtra marcas y sucursales de una empresa según las reglas.
func BuildCompanyNode(rules Rules, tree CompanyTree) CompanyNode {
	node := CompanyNode{Name: tree.Company.Name, Brands: map[string]BrandNode{}}
	for _, b := range tree.Brands {
		if !b.IsActive || !rules.AllowsBrand(b.ID) {
			continue
		}
		bn := BrandNode{Name: b.Name, Branches: map[string]BranchNode{}}
		for _, br := range tree.BranchesByBrand[b.ID] {
			if !br.IsActive || !rules.AllowsBranch(br.ID) {
				continue
			}
			bn.Branches[br.ID] = BranchNode{Name: br.Name}
		}
		node.Brands[b.ID] = bn
	}
	return node
}

// CandidateCompanies empresas activas permitidas por las reglas, en el orden recibido.
func CandidateCompanies(rules Rules, active []*entity.Company) []*entity.Company {
	out := make([]*entity.Company, 0, len(active))
	for _, c := range active {
		if c.IsActive && rules.AllowsCompany(c.ID) {
			out = append(out, c)
		}
	}
	return out
}
