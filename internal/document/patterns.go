package document

import "github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"

// Canonical field names shared by the extractor, validator, and categorizer.
const (
	FieldGrossFares       = "gross_fares"
	FieldDeliveryFares    = "delivery_fares"
	FieldTips             = "tips"
	FieldServiceFee       = "service_fee"
	FieldDistance         = "distance"
	FieldTrips            = "trips"
	FieldNetAmount        = "net_amount"
	FieldTaxYear          = "tax_year"
	FieldVendor           = "vendor"
	FieldAmount           = "amount"
	FieldGST              = "gst"
	FieldQST              = "qst"
	FieldLitres           = "litres"
	FieldOdometer         = "odometer"
	FieldEmploymentIncome = "employment_income"
	FieldTaxDeducted      = "income_tax_deducted"
	FieldCPPContributions = "cpp_contributions"
	FieldEIPremiums       = "ei_premiums"
	FieldFeesForServices  = "fees_for_services"
	FieldEligibleDivs     = "eligible_dividends"
	FieldOtherDivs        = "other_dividends"
	FieldInterestIncome   = "interest_income"
	FieldPolicyNumber     = "policy_number"
)

// amount matches a currency literal, tolerating a bare dollar sign or the
// localized "CA$" / "CAD $" prefix, with optional thousands separators.
const amount = `(?:CAD\s*\$|CA\$|\$)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`

// count matches a plain integer with optional thousands separators.
const count = `([0-9][0-9,]*)`

// year matches a plausible 4-digit year.
const year = `((?:19|20)[0-9]{2})`

// DefaultPatterns returns the built-in document pattern table. Keyword
// weights reflect distinctiveness: a phrase unique to one document family
// outweighs a word that shows up on half of all receipts.
func DefaultPatterns() []TypePattern {
	return []TypePattern{
		{
			Type: model.DocTypeT4,
			Keywords: []Keyword{
				{Pattern: `statement\s+of\s+remuneration\s+paid`, Weight: 3},
				{Pattern: `\bT4\b`, Weight: 2},
				{Pattern: `employment\s+income`, Weight: 2},
				{Pattern: `employer'?s\s+name`, Weight: 1},
				{Pattern: `income\s+tax\s+deducted`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldEmploymentIncome, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*14|employment\s+income)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldTaxDeducted, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*22|income\s+tax\s+deducted)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldCPPContributions, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*16|(?:employee'?s\s+)?CPP\s+contributions)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldEIPremiums, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*18|(?:employee'?s\s+)?EI\s+premiums)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldTaxYear, Coerce: CoerceYear, Patterns: []string{
					`(?:tax\s+year|for\s+the\s+year)[:\s]*` + year,
					`\bT4\b[^0-9]{0,20}` + year,
				}},
			},
		},
		{
			Type: model.DocTypeT4A,
			Keywords: []Keyword{
				{Pattern: `statement\s+of\s+pension,?\s+retirement,?\s+annuity`, Weight: 3},
				{Pattern: `\bT4A\b`, Weight: 2},
				{Pattern: `fees\s+for\s+services`, Weight: 2},
				{Pattern: `self[- ]employed\s+commissions`, Weight: 2},
			},
			Fields: []FieldRule{
				{Field: FieldFeesForServices, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*048|fees\s+for\s+services)[^0-9$]{0,40}` + amount,
					`(?:box\s*020|self[- ]employed\s+commissions)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldTaxDeducted, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*022|income\s+tax\s+deducted)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldTaxYear, Coerce: CoerceYear, Patterns: []string{
					`(?:tax\s+year|for\s+the\s+year)[:\s]*` + year,
				}},
			},
		},
		{
			Type: model.DocTypeT5,
			Keywords: []Keyword{
				{Pattern: `statement\s+of\s+investment\s+income`, Weight: 3},
				{Pattern: `\bT5\b`, Weight: 2},
				{Pattern: `eligible\s+dividends`, Weight: 2},
				{Pattern: `interest\s+from\s+canadian\s+sources`, Weight: 2},
			},
			Fields: []FieldRule{
				{Field: FieldEligibleDivs, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*24|actual\s+amount\s+of\s+eligible\s+dividends)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldOtherDivs, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*10|dividends\s+other\s+than\s+eligible)[^0-9$]{0,60}` + amount,
				}},
				{Field: FieldInterestIncome, Coerce: CoerceNumber, Patterns: []string{
					`(?:box\s*13|interest\s+from\s+canadian\s+sources)[^0-9$]{0,40}` + amount,
				}},
				{Field: FieldTaxYear, Coerce: CoerceYear, Patterns: []string{
					`(?:tax\s+year|for\s+the\s+year)[:\s]*` + year,
				}},
			},
		},
		{
			Type: model.DocTypeUberSummary,
			Keywords: []Keyword{
				{Pattern: `gross\s+fares\s+breakdown`, Weight: 3},
				{Pattern: `\buber\b`, Weight: 2},
				{Pattern: `online\s+(?:mileage|kilometres)`, Weight: 2},
				{Pattern: `trip\s+count`, Weight: 2},
				{Pattern: `annual\s+(?:tax\s+)?summary`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldGrossFares, Coerce: CoerceNumber, Patterns: []string{
					`gross\s+fares(?:\s+breakdown)?[\s\S]{0,160}?\btotal\b:?\s*` + amount,
					`gross\s+fares:?\s*` + amount,
				}},
				{Field: FieldDeliveryFares, Coerce: CoerceNumber, Patterns: []string{
					`uber\s+eats[\s\S]{0,160}?(?:\btotal\b|gross(?:\s+fares)?):?\s*` + amount,
					`delivery\s+fares:?\s*` + amount,
				}},
				{Field: FieldTips, Coerce: CoerceNumber, Patterns: []string{
					`tips?:?\s*` + amount,
				}},
				{Field: FieldServiceFee, Coerce: CoerceNumber, Patterns: []string{
					`(?:service|booking)\s+fees?:?\s*` + amount,
				}},
				{Field: FieldDistance, Coerce: CoerceNumber, Patterns: []string{
					`online\s+(?:mileage|kilometres|km):?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`,
					`([0-9][0-9,]*(?:\.[0-9]+)?)\s*km\s+online`,
				}},
				{Field: FieldTrips, Coerce: CoerceNumber, Patterns: []string{
					`(?:trip\s+count:?\s*` + count + `|` + count + `\s+trips)`,
				}},
				{Field: FieldNetAmount, Coerce: CoerceNumber, Patterns: []string{
					`net\s+(?:earnings|payout|income):?\s*` + amount,
				}},
				{Field: FieldTaxYear, Coerce: CoerceYear, Patterns: []string{
					`(?:tax\s+year|summary\s+for)[:\s]*` + year,
				}},
			},
		},
		{
			Type: model.DocTypeLyftSummary,
			Keywords: []Keyword{
				{Pattern: `\blyft\b`, Weight: 3},
				{Pattern: `gross\s+ride\s+(?:receipts|earnings)`, Weight: 3},
				{Pattern: `ride\s+count`, Weight: 2},
				{Pattern: `annual\s+(?:tax\s+)?summary`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldGrossFares, Coerce: CoerceNumber, Patterns: []string{
					`gross\s+ride\s+(?:receipts|earnings):?\s*` + amount,
					`gross\s+earnings:?\s*` + amount,
				}},
				{Field: FieldTips, Coerce: CoerceNumber, Patterns: []string{
					`tips?:?\s*` + amount,
				}},
				{Field: FieldServiceFee, Coerce: CoerceNumber, Patterns: []string{
					`(?:platform|service)\s+fees?:?\s*` + amount,
				}},
				{Field: FieldDistance, Coerce: CoerceNumber, Patterns: []string{
					`(?:ride\s+)?(?:mileage|kilometres|km\s+driven):?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`,
				}},
				{Field: FieldTrips, Coerce: CoerceNumber, Patterns: []string{
					`(?:ride\s+count:?\s*` + count + `|` + count + `\s+rides)`,
				}},
				{Field: FieldNetAmount, Coerce: CoerceNumber, Patterns: []string{
					`net\s+(?:earnings|payout|income):?\s*` + amount,
				}},
				{Field: FieldTaxYear, Coerce: CoerceYear, Patterns: []string{
					`(?:tax\s+year|summary\s+for)[:\s]*` + year,
				}},
			},
		},
		{
			Type: model.DocTypeTaxiStatement,
			Keywords: []Keyword{
				{Pattern: `fares\s+collected`, Weight: 3},
				{Pattern: `\btaxi\b`, Weight: 2},
				{Pattern: `meter\s+(?:total|reading)`, Weight: 2},
				{Pattern: `shift\s+(?:report|summary)`, Weight: 2},
			},
			Fields: []FieldRule{
				{Field: FieldGrossFares, Coerce: CoerceNumber, Patterns: []string{
					`fares\s+collected:?\s*` + amount,
					`meter\s+total:?\s*` + amount,
				}},
				{Field: FieldTips, Coerce: CoerceNumber, Patterns: []string{
					`tips?:?\s*` + amount,
				}},
				{Field: FieldDistance, Coerce: CoerceNumber, Patterns: []string{
					`(?:kilometres|km)\s+driven:?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`,
				}},
				{Field: FieldTrips, Coerce: CoerceNumber, Patterns: []string{
					`(?:trips?|fares?)\s+count:?\s*` + count,
				}},
				{Field: FieldGST, Coerce: CoerceNumber, Patterns: []string{
					`(?:GST|TPS)[^0-9$]{0,20}` + amount,
				}},
				{Field: FieldQST, Coerce: CoerceNumber, Patterns: []string{
					`(?:QST|TVQ)[^0-9$]{0,20}` + amount,
				}},
			},
		},
		{
			Type: model.DocTypeFuelReceipt,
			Keywords: []Keyword{
				{Pattern: `(?:petro[- ]?canada|esso|shell|ultramar|couche[- ]?tard|irving)`, Weight: 3},
				{Pattern: `(?:fuel|essence|gasoline|diesel)`, Weight: 2},
				{Pattern: `litres?`, Weight: 2},
				{Pattern: `pump\s*#?`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldVendor, Coerce: CoerceText, Patterns: []string{
					`(petro[- ]?canada|esso|shell|ultramar|couche[- ]?tard|irving)`,
				}},
				{Field: FieldAmount, Coerce: CoerceNumber, Patterns: []string{
					`\btotal\b:?\s*` + amount,
					`amount:?\s*` + amount,
				}},
				{Field: FieldLitres, Coerce: CoerceNumber, Patterns: []string{
					`([0-9]+(?:\.[0-9]+)?)\s*(?:litres?|L\b)`,
				}},
				{Field: FieldGST, Coerce: CoerceNumber, Patterns: []string{
					`(?:GST|TPS)[^0-9$]{0,20}` + amount,
				}},
				{Field: FieldQST, Coerce: CoerceNumber, Patterns: []string{
					`(?:QST|TVQ)[^0-9$]{0,20}` + amount,
				}},
			},
		},
		{
			Type: model.DocTypeMaintenanceReceipt,
			Keywords: []Keyword{
				{Pattern: `(?:oil\s+change|vidange)`, Weight: 3},
				{Pattern: `(?:repair|r[ée]paration)`, Weight: 2},
				{Pattern: `(?:tires?|pneus?)`, Weight: 2},
				{Pattern: `(?:garage|auto\s+service)`, Weight: 1},
				{Pattern: `odometer`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldAmount, Coerce: CoerceNumber, Patterns: []string{
					`\btotal\b:?\s*` + amount,
					`amount\s+due:?\s*` + amount,
				}},
				{Field: FieldOdometer, Coerce: CoerceNumber, Patterns: []string{
					`odometer:?\s*([0-9][0-9,]*)\s*km`,
				}},
				{Field: FieldGST, Coerce: CoerceNumber, Patterns: []string{
					`(?:GST|TPS)[^0-9$]{0,20}` + amount,
				}},
				{Field: FieldQST, Coerce: CoerceNumber, Patterns: []string{
					`(?:QST|TVQ)[^0-9$]{0,20}` + amount,
				}},
			},
		},
		{
			Type: model.DocTypeInsuranceReceipt,
			Keywords: []Keyword{
				{Pattern: `(?:insurance|assurance)`, Weight: 2},
				{Pattern: `(?:premium|prime)`, Weight: 2},
				{Pattern: `(?:policy|police)\s+(?:no|number|num[ée]ro)`, Weight: 3},
				{Pattern: `automobile`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldAmount, Coerce: CoerceNumber, Patterns: []string{
					`(?:premium|prime|\btotal\b):?\s*` + amount,
				}},
				{Field: FieldPolicyNumber, Coerce: CoerceText, Patterns: []string{
					`(?:policy|police)\s+(?:no|number|num[ée]ro)[.:\s]*([A-Z0-9-]{5,20})`,
				}},
			},
		},
		{
			Type: model.DocTypePhoneReceipt,
			Keywords: []Keyword{
				{Pattern: `(?:bell|rogers|telus|vid[ée]otron|fido|koodo)`, Weight: 3},
				{Pattern: `(?:wireless|mobile|cellulaire)`, Weight: 2},
				{Pattern: `monthly\s+plan`, Weight: 2},
				{Pattern: `data\s+usage`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldVendor, Coerce: CoerceText, Patterns: []string{
					`(bell|rogers|telus|vid[ée]otron|fido|koodo)`,
				}},
				{Field: FieldAmount, Coerce: CoerceNumber, Patterns: []string{
					`(?:\btotal\b\s+(?:due|amount)|amount\s+due|\btotal\b):?\s*` + amount,
				}},
			},
		},
		{
			Type: model.DocTypeMealReceipt,
			Keywords: []Keyword{
				{Pattern: `(?:restaurant|resto|caf[ée])`, Weight: 2},
				{Pattern: `(?:gratuity|pourboire)`, Weight: 2},
				{Pattern: `(?:server|table)\s*#?`, Weight: 2},
				{Pattern: `subtotal`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldAmount, Coerce: CoerceNumber, Patterns: []string{
					`\btotal\b:?\s*` + amount,
				}},
				{Field: FieldTips, Coerce: CoerceNumber, Patterns: []string{
					`(?:gratuity|tip|pourboire):?\s*` + amount,
				}},
				{Field: FieldGST, Coerce: CoerceNumber, Patterns: []string{
					`(?:GST|TPS)[^0-9$]{0,20}` + amount,
				}},
				{Field: FieldQST, Coerce: CoerceNumber, Patterns: []string{
					`(?:QST|TVQ)[^0-9$]{0,20}` + amount,
				}},
			},
		},
		{
			Type: model.DocTypeParkingReceipt,
			Keywords: []Keyword{
				{Pattern: `(?:parking|stationnement)`, Weight: 3},
				{Pattern: `(?:lot|zone)\s*#?\s*[0-9]`, Weight: 2},
				{Pattern: `(?:entry|exit)\s+time`, Weight: 2},
			},
			Fields: []FieldRule{
				{Field: FieldAmount, Coerce: CoerceNumber, Patterns: []string{
					`(?:\btotal\b|fee|amount):?\s*` + amount,
				}},
			},
		},
		{
			Type: model.DocTypeCarWashReceipt,
			Keywords: []Keyword{
				{Pattern: `(?:car\s*wash|lave[- ]?auto)`, Weight: 3},
				{Pattern: `(?:wash|rin[cs]e|wax)`, Weight: 1},
			},
			Fields: []FieldRule{
				{Field: FieldAmount, Coerce: CoerceNumber, Patterns: []string{
					`\btotal\b:?\s*` + amount,
				}},
			},
		},
	}
}
