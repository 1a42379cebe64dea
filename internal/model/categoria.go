package model

import "time"

// Categoria classifies denuncias.
type Categoria struct {
	ID          int       `json:"IdCategoria"`
	Nome        string    `json:"Nome"`
	Descricao   string    `json:"Descricao,omitempty"`
	Cor         string    `json:"Cor,omitempty"`
	Icone       string    `json:"Icone,omitempty"`
	Ativa       bool      `json:"Ativa"`
	Inclusao    time.Time `json:"Inclusao"`
	Atualizacao time.Time `json:"Atualizacao"`
}

func (c Categoria) RecordID() int            { return c.ID }
func (c Categoria) SearchFields() []string   { return []string{c.Nome, c.Descricao} }
func (c Categoria) FieldValue(string) string { return "" }
func (c Categoria) IsActive() bool           { return c.Ativa }

type CreateCategoriaDTO struct {
	Nome      string `json:"Nome" validate:"required"`
	Descricao string `json:"Descricao,omitempty"`
	Cor       string `json:"Cor,omitempty"`
	Icone     string `json:"Icone,omitempty"`
}
