package normalize

import (
	"testing"

	"github.com/lehigh-university-libraries/bibnorm/internal/aliases"
)

func TestNormalizePlace(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		aliasMap   aliases.ValueMap
		normalized string
		confidence float64
		method     string
	}{
		{
			name:       "base cleaning strips trailing punctuation",
			raw:        "Amsterdam :",
			normalized: "amsterdam",
			confidence: 0.80,
			method:     "place_casefold_strip",
		},
		{
			name:       "base cleaning strips one bracket layer",
			raw:        "[London]",
			normalized: "london",
			confidence: 0.80,
			method:     "place_casefold_strip",
		},
		{
			name:       "casefolds diacritics preserving letters",
			raw:        "Wien ;",
			normalized: "wien",
			confidence: 0.80,
			method:     "place_casefold_strip",
		},
		{
			name:       "alias map wins unconditionally",
			raw:        "Amsterdam :",
			aliasMap:   aliases.ValueMap{"amsterdam": "Amsterdam (Netherlands)"},
			normalized: "Amsterdam (Netherlands)",
			confidence: 0.95,
			method:     "place_alias_map",
		},
		{
			name:       "alias map key is casefolded",
			raw:        "AMSTERDAM",
			aliasMap:   aliases.ValueMap{"amsterdam": "Amsterdam (Netherlands)"},
			normalized: "Amsterdam (Netherlands)",
			confidence: 0.95,
			method:     "place_alias_map",
		},
		{
			name:       "malformed alias entry falls through",
			raw:        "Amsterdam",
			aliasMap:   aliases.ValueMap{"amsterdam": ""},
			normalized: "amsterdam",
			confidence: 0.80,
			method:     "place_casefold_strip",
		},
		{
			name:       "alias miss falls through",
			raw:        "Venezia",
			aliasMap:   aliases.ValueMap{"amsterdam": "Amsterdam (Netherlands)"},
			normalized: "venezia",
			confidence: 0.80,
			method:     "place_casefold_strip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePlace(tt.raw, tt.aliasMap, nil)

			if result.Normalized != tt.normalized {
				t.Errorf("Expected %q, got %q", tt.normalized, result.Normalized)
			}
			if result.Confidence != tt.confidence {
				t.Errorf("Expected confidence %.2f, got %.2f", tt.confidence, result.Confidence)
			}
			if result.Method != tt.method {
				t.Errorf("Expected method %s, got %s", tt.method, result.Method)
			}
		})
	}
}

func TestNormalizePlaceMissing(t *testing.T) {
	result := NormalizePlace("", nil, nil)
	if result.Method != "missing" {
		t.Errorf("Expected method missing, got %s", result.Method)
	}
	if result.Confidence != 0.0 {
		t.Errorf("Expected confidence 0, got %.2f", result.Confidence)
	}
}

func TestNormalizePlaceEmptyAfterCleaning(t *testing.T) {
	result := NormalizePlace(" :;, ", nil, nil)
	if result.Method != "empty_after_cleaning" {
		t.Errorf("Expected method empty_after_cleaning, got %s", result.Method)
	}
	if result.Confidence != 0.0 {
		t.Errorf("Expected confidence 0, got %.2f", result.Confidence)
	}
}

func TestNormalizePublisher(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		aliasMap   aliases.ValueMap
		normalized string
		confidence float64
		method     string
	}{
		{
			name:       "base cleaning",
			raw:        "Joseph Athias,",
			normalized: "joseph athias",
			confidence: 0.80,
			method:     "publisher_casefold_strip",
		},
		{
			name:       "alias map override",
			raw:        "J. Athias /",
			aliasMap:   aliases.ValueMap{"j. athias": "Joseph Athias"},
			normalized: "Joseph Athias",
			confidence: 0.95,
			method:     "publisher_alias_map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePublisher(tt.raw, tt.aliasMap, nil)

			if result.Normalized != tt.normalized {
				t.Errorf("Expected %q, got %q", tt.normalized, result.Normalized)
			}
			if result.Confidence != tt.confidence {
				t.Errorf("Expected confidence %.2f, got %.2f", tt.confidence, result.Confidence)
			}
			if result.Method != tt.method {
				t.Errorf("Expected method %s, got %s", tt.method, result.Method)
			}
		})
	}
}
