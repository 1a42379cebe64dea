package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestPermissionMatrix(t *testing.T) {
	tests := []struct {
		role        Role
		createAviso bool
		modifyDen   bool
		manageUsers bool
	}{
		{RoleMorador, false, false, false},
		{RolePorteiro, true, true, false},
		{RoleAdministrador, true, true, true},
		{RoleSindico, true, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.createAviso, CanCreateAviso(tt.role))
			assert.Equal(t, tt.modifyDen, CanModifyDenuncia(tt.role))
			assert.Equal(t, tt.manageUsers, CanManageUsers(tt.role))
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleSindico.Valid())
	assert.False(t, Role("Zelador").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleFromTokenRoleClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "3", "role": "Porteiro"})

	role, err := RoleFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, RolePorteiro, role)
}

func TestRoleFromTokenPerfilClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "3", "perfil": "Síndico"})

	role, err := RoleFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleSindico, role)
}

func TestRoleFromTokenUnknownRoleRejected(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"role": "Zelador"})

	_, err := RoleFromToken(token)
	assert.Error(t, err)
}

func TestRoleFromTokenMalformed(t *testing.T) {
	_, err := RoleFromToken("not-a-jwt")
	assert.Error(t, err)
}

func TestCurrentRolePrefersTokenClaim(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetToken(signedToken(t, jwt.MapClaims{"role": "Administrador"})))
	require.NoError(t, store.SetProfile(&Profile{Role: RoleMorador}))

	assert.Equal(t, RoleAdministrador, CurrentRole(store))
}

func TestCurrentRoleFallsBackToProfile(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetToken("opaque-token"))
	require.NoError(t, store.SetProfile(&Profile{Role: RolePorteiro}))

	assert.Equal(t, RolePorteiro, CurrentRole(store))
}

func TestCurrentRoleDefaultsToMorador(t *testing.T) {
	assert.Equal(t, RoleMorador, CurrentRole(NewMemoryStore()))
}
