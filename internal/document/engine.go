package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Engine wires the classifier, extractor, validator, and categorizer into
// the raw-text -> categorized-record pipeline. It holds no mutable state
// beyond the compiled registry, so one engine serves concurrent callers.
type Engine struct {
	registry    *Registry
	classifier  *Classifier
	extractor   *Extractor
	validator   *Validator
	categorizer *Categorizer
}

// NewEngine builds an engine over the given pattern table.
func NewEngine(patterns []TypePattern, cfg ValidatorConfig) (*Engine, error) {
	registry, err := NewRegistry(patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to build pattern registry: %w", err)
	}

	return &Engine{
		registry:    registry,
		classifier:  NewClassifier(registry),
		extractor:   NewExtractor(registry),
		validator:   NewValidator(cfg),
		categorizer: NewCategorizer(),
	}, nil
}

// NewDefaultEngine builds an engine over the built-in pattern table.
func NewDefaultEngine() (*Engine, error) {
	return NewEngine(DefaultPatterns(), DefaultValidatorConfig())
}

// Registry exposes the compiled pattern table (read-only).
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Process classifies and processes raw document text. A text that matches
// no known type yields a Document with type "unknown" and no fields; that
// is a valid result, not an error.
func (e *Engine) Process(source, text string) (*model.Document, error) {
	result := e.classifier.Classify(text)
	return e.process(source, text, result)
}

// ProcessAs skips classification for a pre-known document type.
func (e *Engine) ProcessAs(source, text string, docType model.DocumentType) (*model.Document, error) {
	if _, ok := e.registry.lookup(docType); !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownDocumentType, docType)
	}
	return e.process(source, text, model.ClassificationResult{Type: docType, Confidence: 100})
}

func (e *Engine) process(source, text string, result model.ClassificationResult) (*model.Document, error) {
	doc := &model.Document{
		ID:          uuid.New().String(),
		Source:      source,
		Text:        text,
		Type:        result.Type,
		Confidence:  result.Confidence,
		ProcessedAt: time.Now().UTC(),
	}

	if result.Type == model.DocTypeUnknown {
		return doc, nil
	}

	fields, _, err := e.extractor.Extract(text, result.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to extract fields: %w", err)
	}
	doc.Fields = fields

	report := e.validator.Validate(result.Type, fields)
	doc.Warnings = report.Warnings
	if !report.IsValid {
		return nil, fmt.Errorf("document failed validation: %v", report.Errors)
	}

	record, err := e.categorizer.Categorize(result.Type, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to categorize document: %w", err)
	}
	doc.Record = &record

	return doc, nil
}
