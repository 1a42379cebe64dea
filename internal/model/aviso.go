package model

import "time"

// UsuarioRef is the embedded author reference the backend attaches to
// avisos and denuncias.
type UsuarioRef struct {
	ID   int    `json:"IdUsuario"`
	Nome string `json:"NomeUsuario"`
}

// Aviso is a condominium announcement. Field tags follow the backend's
// PascalCase wire names.
type Aviso struct {
	ID          int         `json:"IdAviso"`
	UsuarioID   int         `json:"IdUsuario"`
	Nome        string      `json:"Nome"`
	Descricao   string      `json:"Descricao"`
	Ativa       bool        `json:"Ativa"`
	Inclusao    time.Time   `json:"Inclusao"`
	Atualizacao time.Time   `json:"Atualizacao"`
	DataEvento  *time.Time  `json:"DataEvento,omitempty"`
	Usuario     *UsuarioRef `json:"usuario,omitempty"`
}

func (a Aviso) RecordID() int          { return a.ID }
func (a Aviso) SearchFields() []string { return []string{a.Nome, a.Descricao} }
func (a Aviso) FieldValue(string) string {
	return ""
}
func (a Aviso) IsActive() bool { return a.Ativa }

type CreateAvisoDTO struct {
	UsuarioID int    `json:"IdUsuario" validate:"required"`
	Nome      string `json:"Nome" validate:"required"`
	Descricao string `json:"Descricao" validate:"required"`
}

type UpdateAvisoDTO struct {
	Nome      string `json:"Nome,omitempty"`
	Descricao string `json:"Descricao,omitempty"`
}
