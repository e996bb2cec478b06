package document

import (
	"fmt"
	"strconv"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// ValidatorConfig holds the tunable bounds for sanity checks. The year
// window tracks the supported filing corpus rather than being derived from
// the clock.
type ValidatorConfig struct {
	YearMin int
	YearMax int
}

// DefaultValidatorConfig returns the bounds used in production.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{YearMin: 2020, YearMax: 2030}
}

// Validator applies type-specific sanity checks to extracted fields.
// Warnings never block downstream use; OCR-sourced data is noisy and the
// caller decides what to surface.
type Validator struct {
	cfg ValidatorConfig
}

// NewValidator creates a validator with the given bounds.
func NewValidator(cfg ValidatorConfig) *Validator {
	if cfg.YearMin == 0 || cfg.YearMax == 0 {
		cfg = DefaultValidatorConfig()
	}
	return &Validator{cfg: cfg}
}

// monetaryFields are the fields checked by the zero-activity rule.
var monetaryFields = []string{
	FieldGrossFares,
	FieldDeliveryFares,
	FieldNetAmount,
	FieldTips,
	FieldAmount,
	FieldEmploymentIncome,
	FieldFeesForServices,
}

// Validate produces a report for the extracted fields of one document.
func (v *Validator) Validate(docType model.DocumentType, fields model.Fields) model.ValidationReport {
	report := model.ValidationReport{IsValid: true}

	if fields == nil {
		report.IsValid = false
		report.Errors = append(report.Errors, "extracted field map is missing")
		return report
	}

	// Negative numeric values are structural errors: no supported document
	// reports negative amounts, distances, or counts.
	for name, value := range fields {
		if value.Kind == model.FieldNumber && value.Number < 0 {
			report.IsValid = false
			report.Errors = append(report.Errors, fmt.Sprintf("field %s is negative: %.2f", name, value.Number))
		}
	}

	// A period with zero activity is valid but worth flagging: it usually
	// means an inactive period or an incomplete scan.
	present, allZero := 0, true
	for _, name := range monetaryFields {
		if n, ok := fields.Number(name); ok {
			present++
			if n != 0 {
				allZero = false
			}
		}
	}
	if present > 0 && allZero {
		report.Warnings = append(report.Warnings,
			"all monetary fields are zero: possible inactive period or incomplete document")
	}

	if yearText, ok := fields.Text(FieldTaxYear); ok {
		if y, err := strconv.Atoi(yearText); err == nil {
			if y < v.cfg.YearMin || y > v.cfg.YearMax {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("tax year %d is outside the supported %d-%d range", y, v.cfg.YearMin, v.cfg.YearMax))
			}
		}
	}

	// Net exceeding gross on a platform summary points at a misread field.
	if docType == model.DocTypeUberSummary || docType == model.DocTypeLyftSummary {
		gross, hasGross := fields.Number(FieldGrossFares)
		net, hasNet := fields.Number(FieldNetAmount)
		if hasGross && hasNet && gross > 0 && net > gross {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("net amount %.2f exceeds gross %.2f", net, gross))
		}
	}

	return report
}
