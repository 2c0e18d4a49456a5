package normalize

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		yearStart  int
		yearEnd    int
		confidence float64
		method     string
	}{
		{
			name:       "exact year",
			raw:        "1680",
			yearStart:  1680,
			yearEnd:    1680,
			confidence: 0.99,
			method:     "year_exact",
		},
		{
			name:       "bracketed year",
			raw:        "[1680]",
			yearStart:  1680,
			yearEnd:    1680,
			confidence: 0.95,
			method:     "year_bracketed",
		},
		{
			name:       "circa year",
			raw:        "c. 1680",
			yearStart:  1675,
			yearEnd:    1685,
			confidence: 0.80,
			method:     "year_circa_pm5",
		},
		{
			name:       "circa year no space",
			raw:        "c1680",
			yearStart:  1675,
			yearEnd:    1685,
			confidence: 0.80,
			method:     "year_circa_pm5",
		},
		{
			name:       "year range",
			raw:        "1680-1685",
			yearStart:  1680,
			yearEnd:    1685,
			confidence: 0.90,
			method:     "year_range",
		},
		{
			name:       "year range with slash",
			raw:        "1680/1685",
			yearStart:  1680,
			yearEnd:    1685,
			confidence: 0.90,
			method:     "year_range",
		},
		{
			name:       "bracketed range",
			raw:        "[1611-1612]",
			yearStart:  1611,
			yearEnd:    1612,
			confidence: 0.90,
			method:     "year_bracketed_range",
		},
		{
			name:       "bracketed range inside text",
			raw:        "printed [1611/1612] in London",
			yearStart:  1611,
			yearEnd:    1612,
			confidence: 0.90,
			method:     "year_bracketed_range",
		},
		{
			name:       "bracketed gregorian inside text",
			raw:        "shenat 443 [1683]",
			yearStart:  1683,
			yearEnd:    1683,
			confidence: 0.90,
			method:     "year_bracketed_gregorian",
		},
		{
			name:       "bracketed gregorian with i.e.",
			raw:        "[i.e. 1683]",
			yearStart:  1683,
			yearEnd:    1683,
			confidence: 0.90,
			method:     "year_bracketed_gregorian",
		},
		{
			name:       "gematria year",
			raw:        `תרמ"ג`,
			yearStart:  1883,
			yearEnd:    1883,
			confidence: 0.80,
			method:     "hebrew_gematria",
		},
		{
			name:       "gematria year with gershayim",
			raw:        "שנת תרמ״ג לפ״ק",
			yearStart:  1883,
			yearEnd:    1883,
			confidence: 0.80,
			method:     "hebrew_gematria",
		},
		{
			name:       "embedded range adjacent",
			raw:        "Anno 1611-1612 appendix",
			yearStart:  1611,
			yearEnd:    1612,
			confidence: 0.85,
			method:     "year_embedded_range",
		},
		{
			name:       "embedded range scattered",
			raw:        "begun 1611 and finished about 1620",
			yearStart:  1611,
			yearEnd:    1620,
			confidence: 0.80,
			method:     "year_embedded_range",
		},
		{
			name:       "embedded single year",
			raw:        "printed in the year 1680 at Amsterdam",
			yearStart:  1680,
			yearEnd:    1680,
			confidence: 0.85,
			method:     "year_embedded",
		},
		{
			name:       "embedded year skips hebrew numeral",
			raw:        "5443 or 1683",
			yearStart:  1683,
			yearEnd:    1683,
			confidence: 0.85,
			method:     "year_embedded",
		},
		{
			name:       "hebrew calendar numeral only",
			raw:        "anno 5643",
			yearStart:  1883,
			yearEnd:    1883,
			confidence: 0.75,
			method:     "hebrew_calendar_converted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeDate(tt.raw, nil)

			if result.Method != tt.method {
				t.Errorf("Expected method %s, got %s", tt.method, result.Method)
			}
			if result.Confidence != tt.confidence {
				t.Errorf("Expected confidence %.2f, got %.2f", tt.confidence, result.Confidence)
			}
			if result.YearStart == nil || *result.YearStart != tt.yearStart {
				t.Errorf("Expected year start %d, got %v", tt.yearStart, result.YearStart)
			}
			if result.YearEnd == nil || *result.YearEnd != tt.yearEnd {
				t.Errorf("Expected year end %d, got %v", tt.yearEnd, result.YearEnd)
			}
		})
	}
}

func TestNormalizeDateUnparsed(t *testing.T) {
	result := NormalizeDate("unknown date", nil)

	if result.Method != "unparsed" {
		t.Errorf("Expected method unparsed, got %s", result.Method)
	}
	if result.Confidence != 0.0 {
		t.Errorf("Expected confidence 0, got %.2f", result.Confidence)
	}
	if result.YearStart != nil || result.YearEnd != nil {
		t.Errorf("Expected nil years, got %v-%v", result.YearStart, result.YearEnd)
	}
	if result.Label != "unknown date" {
		t.Errorf("Expected label to preserve input, got %q", result.Label)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != "date_unparsed" {
		t.Errorf("Expected date_unparsed warning, got %v", result.Warnings)
	}
}

func TestNormalizeDateMissing(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "whitespace only", raw: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeDate(tt.raw, nil)
			if result.Method != "missing" {
				t.Errorf("Expected method missing, got %s", result.Method)
			}
			if result.Confidence != 0.0 {
				t.Errorf("Expected confidence 0, got %.2f", result.Confidence)
			}
		})
	}
}

// Rules 8 and 9 can both match mixed-calendar strings; the cascade order
// makes the range rule win. Downstream consumers depend on this ordering.
func TestNormalizeDateRuleOrdering(t *testing.T) {
	result := NormalizeDate("printed 1680, reprinted 1685", nil)

	if result.Method != "year_embedded_range" {
		t.Errorf("Expected year_embedded_range to win over year_embedded, got %s", result.Method)
	}
	if *result.YearStart != 1680 || *result.YearEnd != 1685 {
		t.Errorf("Expected 1680-1685, got %d-%d", *result.YearStart, *result.YearEnd)
	}
}

func TestDateRulesCascadeShape(t *testing.T) {
	// The cascade must stay an explicit ordered list with the catch-all last.
	if len(DateRules) == 0 {
		t.Fatal("DateRules is empty")
	}
	last := DateRules[len(DateRules)-1]
	if last.Name != "unparsed" {
		t.Errorf("Expected final rule to be unparsed, got %s", last.Name)
	}
	if last.Apply("anything at all") == nil {
		t.Error("Final rule must match any input")
	}
}

func TestGematriaValue(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected int
	}{
		{name: "taf resh mem gimel", token: `תרמ"ג`, expected: 643},
		{name: "taf kuf samech zayin", token: "תקס״ז", expected: 567},
		{name: "final letters", token: "ם", expected: 40},
		{name: "non hebrew", token: "abc", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := gematriaValue(tt.token)
			if result != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, result)
			}
		})
	}
}
