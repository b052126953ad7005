// Package visibility modela las reglas de visibilidad empresa → marca → sucursal.
package visibility

import (
	"sort"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Scope alcance de un nivel: sin restricción o restringido a un conjunto de ids.
// El valor cero es Unrestricted.
type Scope struct {
	restricted bool
	ids        map[string]struct{}
}

// Unrestricted alcance comodín: permite cualquier id.
func Unrestricted() Scope {
	return Scope{}
}

// RestrictedTo alcance limitado a los ids indicados. Sin ids no permite nada.
func RestrictedTo(ids ...string) Scope {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Scope{restricted: true, ids: set}
}

// FromStored traduce una lista persistida: vacía = Unrestricted.
// Es el único punto donde se interpreta "lista vacía significa todo".
func FromStored(ids []string) Scope {
	if len(ids) == 0 {
		return Unrestricted()
	}
	return RestrictedTo(ids...)
}

// IsUnrestricted informa si el alcance es comodín.
func (s Scope) IsUnrestricted() bool { return !s.restricted }

// Allows informa si el id es visible en este nivel.
func (s Scope) Allows(id string) bool {
	if !s.restricted {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// IDs devuelve los ids permitidos ordenados; nil cuando no hay restricción.
func (s Scope) IDs() []string {
	if !s.restricted {
		return nil
	}
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Source origen de las reglas resueltas.
type Source string

const (
	SourceUser Source = "user"
	SourceRole Source = "role"
	SourceNone Source = "none"
)

// Rules reglas de los tres niveles, evaluados de forma independiente.
type Rules struct {
	Companies Scope
	Brands    Scope
	Branches  Scope
	Source    Source
}

// FullAccess reglas sin restricción (usuario sin registro de visibilidad).
func FullAccess() Rules {
	return Rules{Source: SourceNone}
}

// RulesFrom construye las reglas desde un registro persistido. nil = acceso total.
func RulesFrom(rv *entity.RoleVisibility) Rules {
	if rv == nil {
		return FullAccess()
	}
	src := SourceRole
	if rv.UserID != "" {
		src = SourceUser
	}
	return Rules{
		Companies: FromStored(rv.Companies),
		Brands:    FromStored(rv.Brands),
		Branches:  FromStored(rv.Branches),
		Source:    src,
	}
}

// HasFullAccess acceso total = empresas sin restricción.
func (r Rules) HasFullAccess() bool { return r.Companies.IsUnrestricted() }

func (r Rules) AllowsCompany(id string) bool { return r.Companies.Allows(id) }
func (r Rules) AllowsBrand(id string) bool   { return r.Brands.Allows(id) }
func (r Rules) AllowsBranch(id string) bool  { return r.Branches.Allows(id) }
