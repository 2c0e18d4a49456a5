package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldCaser performs full Unicode case folding for lookup keys. It is
// stateless and safe for concurrent use.
var foldCaser = cases.Fold()

// trailingPunct are the statement separators catalogers leave dangling at the
// end of imprint subfields (ISBD punctuation).
const trailingPunct = ":,;/ \t"

// cleanDisplay applies the shared place/publisher cleaning: trim, strip
// trailing ISBD punctuation, strip one layer of surrounding brackets, and
// canonically compose (NFC). Case and diacritics are preserved.
func cleanDisplay(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, trailingPunct)
	s = stripOuterBrackets(s)
	s = strings.TrimSpace(s)
	return norm.NFC.String(s)
}

// foldKey derives the casefolded lookup key from a display form.
func foldKey(display string) string {
	return foldCaser.String(display)
}

// stripOuterBrackets removes exactly one layer of surrounding square
// brackets. Inner brackets and unbalanced brackets are left alone.
func stripOuterBrackets(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1]
	}
	return s
}

// collapseWhitespace reduces all whitespace runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ValueLookupKey returns the alias-map lookup key for a raw place or
// publisher string. Frequency worksheets and curated alias maps both key on
// this form so curation survives casing and punctuation variance.
func ValueLookupKey(raw string) string {
	return foldKey(cleanDisplay(raw))
}

// AgentLookupKey returns the alias-map lookup key for a raw agent name.
func AgentLookupKey(raw string) string {
	return cleanAgentBase(raw)
}

// cleanAgentBase applies the agent base normalization: strip outer brackets,
// NFC, casefold, strip trailing punctuation, collapse whitespace. Internal
// commas and life-dates are preserved verbatim because they disambiguate
// identity.
func cleanAgentBase(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripOuterBrackets(s)
	s = norm.NFC.String(s)
	s = foldCaser.String(s)
	s = strings.TrimRight(s, ".,:;/ \t")
	return collapseWhitespace(s)
}
