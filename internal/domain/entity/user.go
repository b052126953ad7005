package entity

// Roles de acceso que llegan en el token.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
	RoleReader   = "consulta"
)

// User usuario del back-office. La autenticación vive fuera de este servicio;
// aquí solo se necesita para resolver su visibilidad.
type User struct {
	ID       string
	Name     string
	Email    string
	RoleID   string // vacío si no tiene rol asignado
	IsActive bool
}
