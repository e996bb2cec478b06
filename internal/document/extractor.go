package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/common"
	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Extractor runs the registry's field rules against recognized documents.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an extractor over a compiled registry.
func NewExtractor(registry *Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Extract applies every field rule registered for docType to the text and
// returns the extracted field map along with the number of fields that were
// attempted (used by callers for confidence weighting). A field whose rules
// never match is simply absent; extraction never fails for a recognized
// type. An unregistered type is a structural error.
func (e *Extractor) Extract(text string, docType model.DocumentType) (model.Fields, int, error) {
	ct, ok := e.registry.lookup(docType)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", common.ErrUnknownDocumentType, docType)
	}

	fields := make(model.Fields, len(ct.fields))

	for _, cf := range ct.fields {
		capture, found := firstCapture(cf.patterns, text)
		if !found {
			continue
		}

		value, err := coerce(capture, cf.rule.Coerce)
		if err != nil {
			// A rule matched but the capture did not parse; treat the
			// field as absent rather than failing the document.
			continue
		}
		fields[cf.rule.Field] = value
	}

	combineSections(docType, fields)

	return fields, len(ct.fields), nil
}

// firstCapture tries each pattern in declaration order and, within the
// first matching pattern, returns the first non-empty capture group.
func firstCapture(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				return group, true
			}
		}
	}
	return "", false
}

// coerce converts a raw capture into a typed field value.
func coerce(capture string, kind Coercion) (model.FieldValue, error) {
	switch kind {
	case CoerceNumber:
		n, err := parseAmount(capture)
		if err != nil {
			return model.FieldValue{}, err
		}
		return model.FieldValue{Kind: model.FieldNumber, Number: n}, nil
	case CoerceYear:
		y := strings.TrimSpace(capture)
		if len(y) != 4 {
			return model.FieldValue{}, fmt.Errorf("not a 4-digit year: %q", capture)
		}
		return model.FieldValue{Kind: model.FieldYear, Text: y}, nil
	default:
		return model.FieldValue{Kind: model.FieldText, Text: strings.TrimSpace(capture)}, nil
	}
}

// parseAmount parses a currency/numeric literal, stripping currency symbols
// and thousands separators. Amounts are rounded to 2 decimal places.
func parseAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer("CAD", "", "CA$", "", "$", "", ",", "", " ", "").Replace(s)
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return model.Round2(n), nil
}

// combineSections applies the multi-section income rule: rideshare annual
// summaries that report rides and delivery income separately get a canonical
// gross equal to their sum, with the delivery figure preserved under its own
// field for traceability.
func combineSections(docType model.DocumentType, fields model.Fields) {
	if docType != model.DocTypeUberSummary && docType != model.DocTypeLyftSummary {
		return
	}

	delivery, ok := fields.Number(FieldDeliveryFares)
	if !ok {
		return
	}

	gross := fields.NumberOr(FieldGrossFares, 0)
	fields[FieldGrossFares] = model.FieldValue{
		Kind:   model.FieldNumber,
		Number: model.Round2(gross + delivery),
	}
}
