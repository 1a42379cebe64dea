package model

// Record is implemented by every domain item that can be listed, filtered
// and soft-deleted through a resource controller.
type Record interface {
	RecordID() int
	// SearchFields returns the texts the free-text criterion matches against.
	SearchFields() []string
	// FieldValue returns the value of a categorical filter field, "" when the
	// record does not carry that field.
	FieldValue(name string) string
	IsActive() bool
}

// Sentinel for a categorical filter that matches everything.
const FilterAll = "all"

// Categorical filter field names
const (
	FieldStatus     = "status"
	FieldPrioridade = "prioridade"
	FieldCategoria  = "categoria"
)
