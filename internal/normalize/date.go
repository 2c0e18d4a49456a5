package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausible Gregorian publication years. Anything outside this window is
// treated as noise (shelf numbers, Hebrew-calendar years, OCR garbage).
const (
	minPlausibleYear = 1000
	maxPlausibleYear = 2100
)

// hebrewCalendarOffset converts a Hebrew-calendar year to the Gregorian year
// in which most of it falls.
const hebrewCalendarOffset = 3760

// hebrewYearFloor: numerals at or above this value are Hebrew-calendar years,
// never Gregorian ones.
const hebrewYearFloor = 5000

var (
	reYearExact      = regexp.MustCompile(`^(\d{4})$`)
	reYearBracketed  = regexp.MustCompile(`^\[(\d{4})\]$`)
	reYearCirca      = regexp.MustCompile(`(?i)^c\.? ?(\d{4})$`)
	reYearRange      = regexp.MustCompile(`^(\d{4})[-/](\d{4})$`)
	reBracketedRange = regexp.MustCompile(`\[(\d{4})[-/](\d{4})\]`)
	reBracketedYear  = regexp.MustCompile(`\[(?:i\.e\. ?)?(\d{4})\]`)
	reNumeral        = regexp.MustCompile(`\d+`)

	// A Gematria year token: Hebrew letters with gershayim before the last
	// letter (תרמ״ג), or a single letter with geresh (ת׳). ASCII quote forms
	// appear in older transcriptions and are accepted too.
	reGematria = regexp.MustCompile(`[א-ת]+["״][א-ת]|[א-ת]['׳]`)
)

// DateRule is one step of the date cascade: a named handler that either
// claims the input and returns a result, or returns nil to pass it on.
type DateRule struct {
	Name  string
	Apply func(trimmed string) *DateNormalization
}

// DateRules is the ordered cascade, first match wins. Unambiguous exact
// patterns outrank best-effort text mining; the final rule always matches, so
// every input yields an auditable result. Rule order is load-bearing:
// downstream consumers depend on the embedded-range rule winning over the
// embedded-single-year rule on mixed-calendar strings.
var DateRules = []DateRule{
	{Name: "year_exact", Apply: ruleYearExact},
	{Name: "year_bracketed", Apply: ruleYearBracketed},
	{Name: "year_circa_pm5", Apply: ruleYearCirca},
	{Name: "year_range", Apply: ruleYearRange},
	{Name: "year_bracketed_range", Apply: ruleBracketedRange},
	{Name: "year_bracketed_gregorian", Apply: ruleBracketedGregorian},
	{Name: "hebrew_gematria", Apply: ruleGematria},
	{Name: "year_embedded_range", Apply: ruleEmbeddedRange},
	{Name: "year_embedded", Apply: ruleEmbeddedYear},
	{Name: "hebrew_calendar_converted", Apply: ruleHebrewCalendar},
	{Name: "unparsed", Apply: ruleUnparsed},
}

// NormalizeDate runs the raw date string through the cascade. Missing or
// blank input short-circuits before any rule runs.
func NormalizeDate(raw string, evidencePaths []string) DateNormalization {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DateNormalization{
			Confidence:    0.0,
			Method:        "missing",
			EvidencePaths: evidencePaths,
			Warnings:      []string{"date_missing"},
		}
	}

	for _, rule := range DateRules {
		if result := rule.Apply(trimmed); result != nil {
			result.Method = rule.Name
			result.EvidencePaths = evidencePaths
			return *result
		}
	}

	// Unreachable: the final rule always matches.
	return DateNormalization{Method: "unparsed", EvidencePaths: evidencePaths}
}

func ruleYearExact(trimmed string) *DateNormalization {
	m := reYearExact.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	year := atoiOrZero(m[1])
	return &DateNormalization{
		YearStart:  intPtr(year),
		YearEnd:    intPtr(year),
		Confidence: 0.99,
	}
}

func ruleYearBracketed(trimmed string) *DateNormalization {
	m := reYearBracketed.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	year := atoiOrZero(m[1])
	return &DateNormalization{
		YearStart:  intPtr(year),
		YearEnd:    intPtr(year),
		Confidence: 0.95,
	}
}

func ruleYearCirca(trimmed string) *DateNormalization {
	m := reYearCirca.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	year := atoiOrZero(m[1])
	return &DateNormalization{
		YearStart:  intPtr(year - 5),
		YearEnd:    intPtr(year + 5),
		Confidence: 0.80,
	}
}

func ruleYearRange(trimmed string) *DateNormalization {
	m := reYearRange.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	return &DateNormalization{
		YearStart:  intPtr(atoiOrZero(m[1])),
		YearEnd:    intPtr(atoiOrZero(m[2])),
		Confidence: 0.90,
	}
}

func ruleBracketedRange(trimmed string) *DateNormalization {
	m := reBracketedRange.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	return &DateNormalization{
		YearStart:  intPtr(atoiOrZero(m[1])),
		YearEnd:    intPtr(atoiOrZero(m[2])),
		Confidence: 0.90,
	}
}

// ruleBracketedGregorian matches a bracketed single year anywhere in the
// string, typically the cataloger's Gregorian conversion appended after a
// Hebrew-calendar date, e.g. `תרמ"ג [1883]` or "[i.e. 1683]".
func ruleBracketedGregorian(trimmed string) *DateNormalization {
	m := reBracketedYear.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}
	year := atoiOrZero(m[1])
	if !plausibleYear(year) {
		return nil
	}
	return &DateNormalization{
		YearStart:  intPtr(year),
		YearEnd:    intPtr(year),
		Confidence: 0.90,
		Warnings:   []string{"hebrew_calendar_date_converted"},
	}
}

func ruleGematria(trimmed string) *DateNormalization {
	token := reGematria.FindString(trimmed)
	if token == "" {
		return nil
	}

	hebrewYear := gematriaValue(token)
	if hebrewYear <= 0 {
		return nil
	}

	// Years on title pages are usually written in short form, without the
	// thousands letter.
	if hebrewYear < 1000 {
		hebrewYear += 5000
	}

	year := hebrewYear - hebrewCalendarOffset
	if !plausibleYear(year) {
		return nil
	}

	return &DateNormalization{
		YearStart:  intPtr(year),
		YearEnd:    intPtr(year),
		Confidence: 0.80,
		Warnings:   []string{"hebrew_letter_year_converted"},
	}
}

// ruleEmbeddedRange mines two plausible Gregorian years out of a complex
// string. Adjacent year tokens (a run-together range) score slightly higher
// than years scattered through surrounding text.
func ruleEmbeddedRange(trimmed string) *DateNormalization {
	spans := reNumeral.FindAllStringIndex(trimmed, -1)

	var years []int
	var ends []int
	var starts []int
	for _, span := range spans {
		v := atoiOrZero(trimmed[span[0]:span[1]])
		if plausibleYear(v) {
			years = append(years, v)
			starts = append(starts, span[0])
			ends = append(ends, span[1])
		}
		if len(years) == 2 {
			break
		}
	}

	if len(years) < 2 {
		return nil
	}

	confidence := 0.80
	if starts[1]-ends[0] <= 3 {
		confidence = 0.85
	}

	return &DateNormalization{
		YearStart:  intPtr(years[0]),
		YearEnd:    intPtr(years[1]),
		Confidence: confidence,
		Warnings:   []string{"embedded_range_in_complex_string"},
	}
}

// ruleEmbeddedYear mines the first plausible Gregorian year out of a complex
// string, skipping Hebrew-calendar numerals entirely.
func ruleEmbeddedYear(trimmed string) *DateNormalization {
	for _, token := range reNumeral.FindAllString(trimmed, -1) {
		v := atoiOrZero(token)
		if v >= hebrewYearFloor {
			continue
		}
		if plausibleYear(v) {
			return &DateNormalization{
				YearStart:  intPtr(v),
				YearEnd:    intPtr(v),
				Confidence: 0.85,
				Warnings:   []string{"embedded_year_in_complex_string"},
			}
		}
	}
	return nil
}

// ruleHebrewCalendar handles strings whose only numeral is a Hebrew-calendar
// year written in Arabic digits (e.g. "5643").
func ruleHebrewCalendar(trimmed string) *DateNormalization {
	for _, token := range reNumeral.FindAllString(trimmed, -1) {
		v := atoiOrZero(token)
		if v < hebrewYearFloor {
			continue
		}
		year := v - hebrewCalendarOffset
		if !plausibleYear(year) {
			return nil
		}
		return &DateNormalization{
			YearStart:  intPtr(year),
			YearEnd:    intPtr(year),
			Confidence: 0.75,
		}
	}
	return nil
}

func ruleUnparsed(trimmed string) *DateNormalization {
	return &DateNormalization{
		Label:      trimmed,
		Confidence: 0.0,
		Warnings:   []string{"date_unparsed"},
	}
}

func plausibleYear(v int) bool {
	return v >= minPlausibleYear && v <= maxPlausibleYear
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// gematriaValue sums the numeric values of the Hebrew letters in a token,
// ignoring geresh/gershayim punctuation. Returns 0 for non-Hebrew input.
func gematriaValue(token string) int {
	total := 0
	for _, r := range token {
		if v, ok := gematriaLetters[r]; ok {
			total += v
		}
	}
	return total
}

var gematriaLetters = map[rune]int{
	'א': 1, 'ב': 2, 'ג': 3, 'ד': 4, 'ה': 5,
	'ו': 6, 'ז': 7, 'ח': 8, 'ט': 9, 'י': 10,
	'כ': 20, 'ך': 20, 'ל': 30, 'מ': 40, 'ם': 40,
	'נ': 50, 'ן': 50, 'ס': 60, 'ע': 70, 'פ': 80,
	'ף': 80, 'צ': 90, 'ץ': 90, 'ק': 100, 'ר': 200,
	'ש': 300, 'ת': 400,
}
