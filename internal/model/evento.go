package model

import "time"

// Evento is a condominium event. Unlike the other resources this endpoint
// uses camelCase wire names.
type Evento struct {
	ID         int       `json:"idEvento"`
	Titulo     string    `json:"titulo"`
	Descricao  string    `json:"descricao"`
	DataEvento time.Time `json:"dataEvento"`
	Local      string    `json:"local,omitempty"`
	Ativo      bool      `json:"ativo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e Evento) RecordID() int            { return e.ID }
func (e Evento) SearchFields() []string   { return []string{e.Titulo, e.Descricao} }
func (e Evento) FieldValue(string) string { return "" }
func (e Evento) IsActive() bool           { return e.Ativo }

// Upcoming reports whether the event is still ahead of now.
func (e Evento) Upcoming(now time.Time) bool { return e.DataEvento.After(now) }

type CreateEventoDTO struct {
	Titulo     string    `json:"titulo" validate:"required"`
	Descricao  string    `json:"descricao" validate:"required"`
	DataEvento time.Time `json:"dataEvento" validate:"required"`
	Local      string    `json:"local,omitempty"`
}

type UpdateEventoDTO struct {
	Titulo     string     `json:"titulo,omitempty"`
	Descricao  string     `json:"descricao,omitempty"`
	DataEvento *time.Time `json:"dataEvento,omitempty"`
	Local      string     `json:"local,omitempty"`
}
