package client

import (
	"context"
	"net/http"

	"github.com/condohub/condoctl/internal/session"
)

type LoginDTO struct {
	Nome  string `json:"NomeUsuario" validate:"required"`
	Senha string `json:"Senha" validate:"required"`
}

type LoginResponse struct {
	UsuarioID int    `json:"IdUsuario"`
	Nome      string `json:"NomeUsuario"`
	Email     string `json:"Email,omitempty"`
	Perfil    string `json:"Perfil,omitempty"`
	Token     string `json:"token"`
	Mensagem  string `json:"mensagem,omitempty"`
}

// Login authenticates and persists the credential and profile into the
// client's store, so following calls carry the bearer header.
func (c *Client) Login(ctx context.Context, creds LoginDTO) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, "auth", "login", http.MethodPost, "/usuarios/login", creds, &resp); err != nil {
		return nil, err
	}

	if err := c.creds.SetToken(resp.Token); err != nil {
		return nil, err
	}
	profile := &session.Profile{
		UsuarioID: resp.UsuarioID,
		Nome:      resp.Nome,
		Email:     resp.Email,
		Role:      session.Role(resp.Perfil),
	}
	if role, err := session.RoleFromToken(resp.Token); err == nil {
		profile.Role = role
	}
	if err := c.creds.SetProfile(profile); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout drops the stored credential. Purely local; the backend keeps no
// session state for bearer tokens.
func (c *Client) Logout() error {
	return c.creds.Clear()
}
