package normalize

import "strings"

// Role lookup is a three-tier controlled-vocabulary resolution: exact MARC
// relator code, then relator term or abbreviation, then "other".

const (
	relatorCodeConfidence  = 0.99
	relatorTermConfidence  = 0.95
	unmappedRoleConfidence = 0.6
	missingRoleConfidence  = 0.5
)

// relatorCodes maps MARC relator codes to canonical role strings.
var relatorCodes = map[string]string{
	"aut": "author",
	"edt": "editor",
	"trl": "translator",
	"com": "compiler",
	"ctb": "contributor",
	"ill": "illustrator",
	"prt": "printer",
	"pbl": "publisher",
	"cmm": "commentator",
	"ann": "annotator",
	"cre": "creator",
	"eng": "engraver",
	"scr": "scribe",
	"bsl": "bookseller",
	"fnd": "funder",
	"hnr": "honoree",
	"dte": "dedicatee",
	"cph": "copyright holder",
	"oth": "other",
}

// relatorTerms maps spelled-out relator terms and common cataloger
// abbreviations (casefolded, trailing punctuation stripped) to canonical
// role strings.
var relatorTerms = map[string]string{
	"author":      "author",
	"auth":        "author",
	"editor":      "editor",
	"ed":          "editor",
	"translator":  "translator",
	"tr":          "translator",
	"trans":       "translator",
	"compiler":    "compiler",
	"comp":        "compiler",
	"contributor": "contributor",
	"illustrator": "illustrator",
	"illus":       "illustrator",
	"printer":     "printer",
	"publisher":   "publisher",
	"commentator": "commentator",
	"annotator":   "annotator",
	"creator":     "creator",
	"engraver":    "engraver",
	"scribe":      "scribe",
	"bookseller":  "bookseller",
	"funder":      "funder",
	"honoree":     "honoree",
	"dedicatee":   "dedicatee",
}

// NormalizeRole resolves an agent's function string against the controlled
// vocabulary. The extractor already enforced code > term > inference
// precedence when it picked the function string, so the lookup here only has
// to classify that one string: code map first, then terms, then "other".
func NormalizeRole(function string, evidencePaths []string) RoleNormalization {
	trimmed := strings.TrimSpace(function)
	if trimmed == "" {
		return RoleNormalization{
			Role:          "other",
			Confidence:    missingRoleConfidence,
			Method:        "missing_role",
			EvidencePaths: evidencePaths,
			Warnings:      []string{"role_missing"},
		}
	}

	key := strings.TrimRight(foldKey(trimmed), ".,:; ")

	if role, ok := relatorCodes[key]; ok {
		return RoleNormalization{
			Role:          role,
			Confidence:    relatorCodeConfidence,
			Method:        "relator_code",
			EvidencePaths: evidencePaths,
		}
	}

	if role, ok := relatorTerms[key]; ok {
		return RoleNormalization{
			Role:          role,
			Confidence:    relatorTermConfidence,
			Method:        "relator_term",
			EvidencePaths: evidencePaths,
		}
	}

	// The extractor's tag inference produces "author"/"creator", which the
	// term map already resolves. Anything left is an uncontrolled role
	// string.
	return RoleNormalization{
		Role:          "other",
		Confidence:    unmappedRoleConfidence,
		Method:        "unmapped_role",
		EvidencePaths: evidencePaths,
		Warnings:      []string{"role_unmapped"},
	}
}
