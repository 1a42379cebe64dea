package model

import "time"

// Usuario is a resident (morador) account.
type Usuario struct {
	ID          int       `json:"IdUsuario"`
	Nome        string    `json:"NomeUsuario"`
	Email       string    `json:"Email,omitempty"`
	Role        string    `json:"Perfil,omitempty"`
	Ativa       bool      `json:"Ativa"`
	Inclusao    time.Time `json:"Inclusao"`
	Atualizacao time.Time `json:"Atualizacao"`
}

func (u Usuario) RecordID() int            { return u.ID }
func (u Usuario) SearchFields() []string   { return []string{u.Nome, u.Email} }
func (u Usuario) FieldValue(string) string { return "" }
func (u Usuario) IsActive() bool           { return u.Ativa }

type CreateUsuarioDTO struct {
	Nome  string `json:"NomeUsuario" validate:"required"`
	Senha string `json:"Senha" validate:"required,min=6"`
}

type UpdateUsuarioDTO struct {
	Nome  string `json:"NomeUsuario,omitempty"`
	Senha string `json:"Senha,omitempty"`
}
