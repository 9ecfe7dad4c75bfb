package authz

import "github.com/dropDatabas3/minimalapi/internal/domain/types"

// Operation identifica una operación expuesta por la API.
type Operation string

const (
	OpHome  Operation = "home"
	OpLogin Operation = "login"

	OpListAdministrators  Operation = "administrators.list"
	OpGetAdministrator    Operation = "administrators.get"
	OpCreateAdministrator Operation = "administrators.create"

	OpCreateVehicle Operation = "vehicles.create"
	OpListVehicles  Operation = "vehicles.list"
	OpGetVehicle    Operation = "vehicles.get"
	OpUpdateVehicle Operation = "vehicles.update"
	OpDeleteVehicle Operation = "vehicles.delete"
)

var (
	adminOnly     = []types.Role{types.RoleAdmin}
	adminOrEditor = []types.Role{types.RoleAdmin, types.RoleEditor}
)

// roleTable: operación -> perfiles requeridos. Lista vacía = público.
// Una operación sin entrada se deniega siempre.
var roleTable = map[Operation][]types.Role{
	OpHome:  {},
	OpLogin: {},

	OpListAdministrators:  adminOnly,
	OpGetAdministrator:    adminOnly,
	OpCreateAdministrator: adminOnly,

	OpCreateVehicle: adminOrEditor,
	OpListVehicles:  adminOrEditor,
	OpGetVehicle:    adminOrEditor,
	OpUpdateVehicle: adminOnly,
	OpDeleteVehicle: adminOnly,
}

// RequiredRoles retorna una copia de los perfiles requeridos por op.
// Vacío para las públicas (home, login); ok es false si op no está en la tabla.
func RequiredRoles(op Operation) (roles []types.Role, ok bool) {
	required, ok := roleTable[op]
	if !ok {
		return nil, false
	}
	out := make([]types.Role, len(required))
	copy(out, required)
	return out, true
}

// Operations lista todas las operaciones conocidas.
func Operations() []Operation {
	return []Operation{
		OpHome, OpLogin,
		OpListAdministrators, OpGetAdministrator, OpCreateAdministrator,
		OpCreateVehicle, OpListVehicles, OpGetVehicle, OpUpdateVehicle, OpDeleteVehicle,
	}
}
