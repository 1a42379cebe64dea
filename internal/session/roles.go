package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the user's profile within the condominium.
type Role string

const (
	RoleMorador       Role = "Morador"
	RolePorteiro      Role = "Porteiro"
	RoleAdministrador Role = "Administrador"
	RoleSindico       Role = "Síndico"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMorador, RolePorteiro, RoleAdministrador, RoleSindico:
		return true
	}
	return false
}

// HasRole reports whether r is one of roles.
func HasRole(r Role, roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Permission helpers mirror the backend's role matrix; the server still
// enforces authorization, these only drive command/menu visibility.
func CanCreateAviso(r Role) bool {
	return HasRole(r, RolePorteiro, RoleAdministrador, RoleSindico)
}

func CanModifyDenuncia(r Role) bool {
	return HasRole(r, RolePorteiro, RoleAdministrador, RoleSindico)
}

func CanManageUsers(r Role) bool {
	return HasRole(r, RoleAdministrador, RoleSindico)
}

// RoleFromToken reads the role claim out of a bearer token. The token is
// not verified here; the client holds no signing secret and the backend
// rejects forged tokens anyway.
func RoleFromToken(token string) (Role, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	for _, key := range []string{"role", "perfil"} {
		if v, ok := claims[key].(string); ok && Role(v).Valid() {
			return Role(v), nil
		}
	}
	return "", fmt.Errorf("token carries no role claim")
}

// CurrentRole resolves the active user's role, preferring the token claim
// and falling back to the stored profile. Defaults to Morador.
func CurrentRole(store CredentialStore) Role {
	if token := store.Token(); token != "" {
		if role, err := RoleFromToken(token); err == nil {
			return role
		}
	}
	if p := store.Profile(); p != nil && p.Role.Valid() {
		return p.Role
	}
	return RoleMorador
}
