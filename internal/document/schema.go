package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// patternsSchema validates user-supplied pattern files before they are
// merged behind the built-in table. Catching a malformed file here beats a
// confusing regex compile error later.
const patternsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["types"],
  "properties": {
    "types": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "keywords"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "keywords": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["pattern"],
              "properties": {
                "pattern": {"type": "string", "minLength": 1},
                "weight": {"type": "integer", "minimum": 1}
              }
            }
          },
          "fields": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["field", "patterns"],
              "properties": {
                "field": {"type": "string", "minLength": 1},
                "patterns": {
                  "type": "array",
                  "minItems": 1,
                  "items": {"type": "string", "minLength": 1}
                },
                "coerce": {"enum": ["number", "text", "year"]}
              }
            }
          }
        }
      }
    }
  }
}`

type patternsFile struct {
	Types []struct {
		Type     string `json:"type"`
		Keywords []struct {
			Pattern string `json:"pattern"`
			Weight  int    `json:"weight"`
		} `json:"keywords"`
		Fields []struct {
			Field    string   `json:"field"`
			Patterns []string `json:"patterns"`
			Coerce   string   `json:"coerce"`
		} `json:"fields"`
	} `json:"types"`
}

// LoadPatternsFile reads a JSON pattern file, validates it against the
// embedded schema, and converts it into pattern-table entries. Entries are
// appended after the defaults, so user types never change scoring for the
// built-in ones.
func LoadPatternsFile(path string) ([]TypePattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns file: %w", err)
	}

	schema, err := jsonschema.CompileString("patterns.schema.json", patternsSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile patterns schema: %w", err)
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in patterns file %s: %w", path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("patterns file %s failed validation: %w", path, err)
	}

	var file patternsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode patterns file: %w", err)
	}

	patterns := make([]TypePattern, 0, len(file.Types))
	for _, t := range file.Types {
		tp := TypePattern{Type: model.DocumentType(t.Type)}
		for _, kw := range t.Keywords {
			tp.Keywords = append(tp.Keywords, Keyword{Pattern: kw.Pattern, Weight: kw.Weight})
		}
		for _, f := range t.Fields {
			coerce := Coercion(f.Coerce)
			if coerce == "" {
				coerce = CoerceText
			}
			tp.Fields = append(tp.Fields, FieldRule{Field: f.Field, Patterns: f.Patterns, Coerce: coerce})
		}
		patterns = append(patterns, tp)
	}

	return patterns, nil
}
