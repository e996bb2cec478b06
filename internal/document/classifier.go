package document

import (
	"math"
	"strings"

	"github.com/Isaloum/TaxSyncForDrivers-sub001/internal/model"
)

// Classifier scores raw document text against the registry's keyword sets.
type Classifier struct {
	registry *Registry
}

// NewClassifier creates a classifier over a compiled registry.
func NewClassifier(registry *Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify returns the best-matching document type with a 0-100 confidence
// score. Classification is total: any input, including empty text, yields a
// result, with "unknown"/0 when nothing matches. Ties are broken in favor
// of the earlier-registered type.
func (c *Classifier) Classify(text string) model.ClassificationResult {
	result := model.ClassificationResult{Type: model.DocTypeUnknown, Confidence: 0}

	if strings.TrimSpace(text) == "" {
		return result
	}

	for _, ct := range c.registry.types {
		matched := 0
		for _, kw := range ct.keywords {
			if kw.regex.MatchString(text) {
				matched += kw.weight
			}
		}
		if matched == 0 {
			continue
		}

		score := Score(matched, ct.totalWeight)
		if score > result.Confidence {
			result.Type = ct.docType
			result.Confidence = score
		}
	}

	return result
}

// Score converts a matched keyword weight into a 0-100 confidence score.
// It is a pure function so the scoring logic stays verifiable independently
// of the phrase lists.
func Score(matchedWeight, totalWeight int) float64 {
	if totalWeight <= 0 || matchedWeight <= 0 {
		return 0
	}
	if matchedWeight > totalWeight {
		matchedWeight = totalWeight
	}
	return math.Round(float64(matchedWeight)/float64(totalWeight)*10000) / 100
}
