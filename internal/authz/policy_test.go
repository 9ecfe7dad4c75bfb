package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
)

func TestRoleTableMatrix(t *testing.T) {
	expected := map[Operation]map[types.Role]bool{
		OpHome:                {types.RoleAdmin: true, types.RoleEditor: true},
		OpLogin:               {types.RoleAdmin: true, types.RoleEditor: true},
		OpListAdministrators:  {types.RoleAdmin: true, types.RoleEditor: false},
		OpGetAdministrator:    {types.RoleAdmin: true, types.RoleEditor: false},
		OpCreateAdministrator: {types.RoleAdmin: true, types.RoleEditor: false},
		OpCreateVehicle:       {types.RoleAdmin: true, types.RoleEditor: true},
		OpListVehicles:        {types.RoleAdmin: true, types.RoleEditor: true},
		OpGetVehicle:          {types.RoleAdmin: true, types.RoleEditor: true},
		OpUpdateVehicle:       {types.RoleAdmin: true, types.RoleEditor: false},
		OpDeleteVehicle:       {types.RoleAdmin: true, types.RoleEditor: false},
	}
	require.Len(t, expected, len(Operations()))

	p := RolePolicy{}
	for _, op := range Operations() {
		for _, role := range types.Roles() {
			claims := &jwtx.SessionClaims{Email: "x@y.com", Role: role}
			got := AuthorizeOperation(p, claims, op)
			if expected[op][role] {
				require.Equal(t, Allow, got, "%s/%s", op, role)
			} else {
				require.Equal(t, Forbidden, got, "%s/%s", op, role)
			}
		}
	}
}

func TestMissingClaims(t *testing.T) {
	p := RolePolicy{}
	for _, op := range Operations() {
		got := AuthorizeOperation(p, nil, op)
		required, ok := RequiredRoles(op)
		require.True(t, ok, op)
		if len(required) == 0 {
			require.Equal(t, Allow, got, op)
		} else {
			require.Equal(t, Unauthenticated, got, op)
		}
	}
}

func TestRequiredRolesReturnsCopy(t *testing.T) {
	roles, ok := RequiredRoles(OpCreateVehicle)
	require.True(t, ok)
	roles[0] = types.Role("hack")

	roles, _ = RequiredRoles(OpCreateVehicle)
	require.Equal(t, []types.Role{types.RoleAdmin, types.RoleEditor}, roles)

	for _, op := range []Operation{OpHome, OpLogin} {
		roles, ok := RequiredRoles(op)
		require.True(t, ok, op)
		require.Empty(t, roles, op)
	}
}

func TestUnknownOperationIsDenied(t *testing.T) {
	unknown := Operation("vehicles.delet")
	_, ok := RequiredRoles(unknown)
	require.False(t, ok)

	p := RolePolicy{}
	require.Equal(t, Forbidden, AuthorizeOperation(p, nil, unknown))
	for _, role := range types.Roles() {
		claims := &jwtx.SessionClaims{Email: "x@y.com", Role: role}
		require.Equal(t, Forbidden, AuthorizeOperation(p, claims, unknown), role)
	}
}

func TestDecisionString(t *testing.T) {
	require.Equal(t, "allow", Allow.String())
	require.Equal(t, "unauthenticated", Unauthenticated.String())
	require.Equal(t, "forbidden", Forbidden.String())
}
