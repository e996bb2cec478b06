// Package document provides pattern-based tax document classification,
// field extraction, validation, and categorization.
package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Coercion selects how a captured group is converted into a field value.
type Coercion string

const (
	// CoerceNumber parses the capture as a currency/distance/count value.
	CoerceNumber Coercion = "number"
	// CoerceText keeps the capture as trimmed text.
	CoerceText Coercion = "text"
	// CoerceYear keeps a 4-digit year capture as text so leading context
	// like "tax year 2024" survives round trips.
	CoerceYear Coercion = "year"
)

// Keyword is one classification matcher. More distinctive phrases carry a
// higher weight so they count more toward the confidence score.
type Keyword struct {
	Pattern string
	Weight  int
}

// FieldRule extracts one named field. Patterns are alternate phrasings
// tried in declaration order; within a match, the first non-empty capture
// group wins.
type FieldRule struct {
	Field    string
	Patterns []string
	Coerce   Coercion
}

// TypePattern defines one document type: its classification keywords and
// its field extraction rules. Entries are independent of each other;
// adding a type never changes scoring for existing types.
type TypePattern struct {
	Type     model.DocumentType
	Keywords []Keyword
	Fields   []FieldRule
}

type compiledKeyword struct {
	regex  *regexp.Regexp
	weight int
}

type compiledField struct {
	patterns []*regexp.Regexp
	rule     FieldRule
}

type compiledType struct {
	docType     model.DocumentType
	keywords    []compiledKeyword
	fields      []compiledField
	totalWeight int
}

// Registry is the immutable, compiled pattern table. It is built once at
// startup and shared by the classifier and extractor; it is never mutated
// afterwards, so concurrent use needs no locking.
type Registry struct {
	byType map[model.DocumentType]*compiledType
	types  []*compiledType
}

// NewRegistry compiles a pattern table. Patterns are registered in slice
// order; classification ties are broken in favor of earlier entries.
func NewRegistry(patterns []TypePattern) (*Registry, error) {
	r := &Registry{
		byType: make(map[model.DocumentType]*compiledType, len(patterns)),
	}

	for _, tp := range patterns {
		if tp.Type == "" || tp.Type == model.DocTypeUnknown {
			return nil, fmt.Errorf("invalid document type %q in pattern table", tp.Type)
		}
		if _, exists := r.byType[tp.Type]; exists {
			return nil, fmt.Errorf("duplicate document type %q in pattern table", tp.Type)
		}

		ct := &compiledType{docType: tp.Type}

		for _, kw := range tp.Keywords {
			regex, err := compileInsensitive(kw.Pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to compile keyword for %s: %w", tp.Type, err)
			}
			weight := kw.Weight
			if weight <= 0 {
				weight = 1
			}
			ct.keywords = append(ct.keywords, compiledKeyword{regex: regex, weight: weight})
			ct.totalWeight += weight
		}

		for _, fr := range tp.Fields {
			cf := compiledField{rule: fr}
			for _, p := range fr.Patterns {
				regex, err := compileInsensitive(p)
				if err != nil {
					return nil, fmt.Errorf("failed to compile field %s for %s: %w", fr.Field, tp.Type, err)
				}
				cf.patterns = append(cf.patterns, regex)
			}
			ct.fields = append(ct.fields, cf)
		}

		r.types = append(r.types, ct)
		r.byType[tp.Type] = ct
	}

	return r, nil
}

// Types returns the registered document types in registration order.
func (r *Registry) Types() []model.DocumentType {
	types := make([]model.DocumentType, 0, len(r.types))
	for _, ct := range r.types {
		types = append(types, ct.docType)
	}
	return types
}

// FieldCount returns how many field rules are registered for a type.
func (r *Registry) FieldCount(docType model.DocumentType) int {
	ct, ok := r.byType[docType]
	if !ok {
		return 0
	}
	return len(ct.fields)
}

func (r *Registry) lookup(docType model.DocumentType) (*compiledType, bool) {
	ct, ok := r.byType[docType]
	return ct, ok
}

// compileInsensitive compiles a pattern, making it case-insensitive unless
// the pattern already sets its own flags.
func compileInsensitive(pattern string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}
