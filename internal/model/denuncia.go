package model

import (
	"strconv"
	"time"
)

// Denuncia statuses as used by the backend
const (
	DenunciaAberta    = "Aberta"
	DenunciaEmAnalise = "Em análise"
	DenunciaResolvida = "Resolvida"
	DenunciaRejeitada = "Rejeitada"
)

// Denuncia priorities
const (
	PrioridadeBaixa   = "Baixa"
	PrioridadeMedia   = "Média"
	PrioridadeAlta    = "Alta"
	PrioridadeUrgente = "Urgente"
)

// Denuncia is a resident complaint / incident report.
type Denuncia struct {
	ID          int         `json:"IdDenuncia"`
	UsuarioID   int         `json:"IdUsuario"`
	CategoriaID int         `json:"IdCategoria,omitempty"`
	Nome        string      `json:"Nome"`
	Descricao   string      `json:"Descricao"`
	Status      string      `json:"Status,omitempty"`
	Prioridade  string      `json:"Prioridade,omitempty"`
	Ativa       bool        `json:"Ativa"`
	Inclusao    time.Time   `json:"Inclusao"`
	Atualizacao time.Time   `json:"Atualizacao"`
	Usuario     *UsuarioRef `json:"usuario,omitempty"`
}

func (d Denuncia) RecordID() int          { return d.ID }
func (d Denuncia) SearchFields() []string { return []string{d.Nome, d.Descricao} }

func (d Denuncia) FieldValue(name string) string {
	switch name {
	case FieldStatus:
		return d.Status
	case FieldPrioridade:
		return d.Prioridade
	case FieldCategoria:
		if d.CategoriaID == 0 {
			return ""
		}
		return strconv.Itoa(d.CategoriaID)
	}
	return ""
}

func (d Denuncia) IsActive() bool { return d.Ativa }

type CreateDenunciaDTO struct {
	UsuarioID   int    `json:"IdUsuario" validate:"required"`
	CategoriaID int    `json:"IdCategoria,omitempty"`
	Nome        string `json:"Nome" validate:"required"`
	Descricao   string `json:"Descricao" validate:"required"`
	Prioridade  string `json:"Prioridade" validate:"required,oneof=Baixa Média Alta Urgente"`
}

type UpdateDenunciaDTO struct {
	Nome      string `json:"Nome,omitempty"`
	Descricao string `json:"Descricao,omitempty"`
	Status    string `json:"Status,omitempty"`
}
