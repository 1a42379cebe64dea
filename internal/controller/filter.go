package controller

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/condohub/condoctl/internal/model"
)

// Criteria is the client-only filter state applied to a loaded collection.
// The zero value matches every record.
type Criteria struct {
	// Text is matched case-insensitively as a substring of any search field.
	Text string
	// Fields maps categorical field names to required values. "" and
	// model.FilterAll are inactive.
	Fields map[string]string
	// Fuzzy switches text matching to fuzzy mode. Off by default; exact
	// substring semantics are the contract.
	Fuzzy bool
}

// WithField returns a copy of the criteria with one categorical filter set.
func (c Criteria) WithField(name, value string) Criteria {
	fields := make(map[string]string, len(c.Fields)+1)
	for k, v := range c.Fields {
		fields[k] = v
	}
	fields[name] = value
	c.Fields = fields
	return c
}

func (c Criteria) textMatches(r model.Record) bool {
	query := strings.TrimSpace(c.Text)
	if query == "" {
		return true
	}
	if c.Fuzzy {
		for _, field := range r.SearchFields() {
			if fuzzy.MatchFold(query, field) {
				return true
			}
		}
		return false
	}
	query = strings.ToLower(query)
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (c Criteria) fieldsMatch(r model.Record) bool {
	for name, want := range c.Fields {
		if want == "" || want == model.FilterAll {
			continue
		}
		if r.FieldValue(name) != want {
			return false
		}
	}
	return true
}

// Apply returns the subset of records matching the criteria. Pure: the
// input slice is never mutated and source order is preserved.
func Apply[T model.Record](records []T, crit Criteria) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if crit.textMatches(r) && crit.fieldsMatch(r) {
			out = append(out, r)
		}
	}
	return out
}
