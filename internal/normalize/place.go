package normalize

import "github.com/lehigh-university-libraries/bibnorm/internal/aliases"

// Place and publisher normalization share one pipeline: clean the raw string
// into a display form, derive a casefolded lookup key, and let a curated
// alias map override the base result unconditionally when it knows the key.

const (
	aliasMapConfidence  = 0.95
	baseCleanConfidence = 0.80
)

// NormalizePlace normalizes a publication-place string.
func NormalizePlace(raw string, aliasMap aliases.ValueMap, evidencePaths []string) PlaceNormalization {
	result := normalizeValue(raw, "place", aliasMap)
	return PlaceNormalization{
		Normalized:    result.normalized,
		Confidence:    result.confidence,
		Method:        result.method,
		EvidencePaths: evidencePaths,
		Warnings:      result.warnings,
	}
}

// NormalizePublisher normalizes a publisher-name string.
func NormalizePublisher(raw string, aliasMap aliases.ValueMap, evidencePaths []string) PublisherNormalization {
	result := normalizeValue(raw, "publisher", aliasMap)
	return PublisherNormalization{
		Normalized:    result.normalized,
		Confidence:    result.confidence,
		Method:        result.method,
		EvidencePaths: evidencePaths,
		Warnings:      result.warnings,
	}
}

type valueResult struct {
	normalized string
	confidence float64
	method     string
	warnings   []string
}

func normalizeValue(raw, field string, aliasMap aliases.ValueMap) valueResult {
	if raw == "" {
		return valueResult{
			confidence: 0.0,
			method:     "missing",
			warnings:   []string{field + "_missing"},
		}
	}

	display := cleanDisplay(raw)
	if display == "" {
		return valueResult{
			confidence: 0.0,
			method:     "empty_after_cleaning",
			warnings:   []string{field + "_empty_after_cleaning"},
		}
	}

	key := foldKey(display)

	// A curated alias wins unconditionally over the base rule.
	if canonical, ok := aliasMap[key]; ok && canonical != "" {
		return valueResult{
			normalized: canonical,
			confidence: aliasMapConfidence,
			method:     field + "_alias_map",
		}
	}

	return valueResult{
		normalized: key,
		confidence: baseCleanConfidence,
		method:     field + "_casefold_strip",
	}
}
