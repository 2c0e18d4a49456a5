package normalize

import "github.com/lehigh-university-libraries/bibnorm/internal/aliases"

// AmbiguousSentinel is returned as the normalized form when curation has
// flagged a name as unresolvable to a single identity.
const AmbiguousSentinel = "ambiguous"

// NormalizeAgent normalizes an agent name. The base form is casefolded and
// punctuation-stripped but keeps internal commas and life-dates verbatim;
// curated alias decisions are keyed on that base form, so they apply
// regardless of the source record's casing or trailing punctuation.
func NormalizeAgent(raw string, aliasMap aliases.AgentMap, evidencePaths []string) AgentNormalization {
	if raw == "" {
		return AgentNormalization{
			Confidence:    0.0,
			Method:        "missing",
			EvidencePaths: evidencePaths,
			Warnings:      []string{"agent_name_missing"},
		}
	}

	base := cleanAgentBase(raw)
	if base == "" {
		return AgentNormalization{
			Confidence:    0.0,
			Method:        "empty_after_cleaning",
			EvidencePaths: evidencePaths,
			Warnings:      []string{"agent_name_empty_after_cleaning"},
		}
	}

	if decision, ok := aliasMap[base]; ok {
		if result, applied := applyAgentDecision(base, decision, evidencePaths); applied {
			return result
		}
		// Malformed or unknown decision: fall through to base normalization.
	}

	return AgentNormalization{
		Normalized:    base,
		Confidence:    baseCleanConfidence,
		Method:        "agent_base",
		EvidencePaths: evidencePaths,
	}
}

func applyAgentDecision(base string, decision aliases.AgentDecision, evidencePaths []string) (AgentNormalization, bool) {
	switch decision.Decision {
	case aliases.DecisionKeep:
		// Curation confirmed the base form; no rewrite.
		return AgentNormalization{
			Normalized:    base,
			Confidence:    baseCleanConfidence,
			Method:        "agent_base",
			Notes:         decision.Notes,
			EvidencePaths: evidencePaths,
		}, true

	case aliases.DecisionMap:
		if decision.Canonical == "" {
			return AgentNormalization{}, false
		}
		confidence := decision.Confidence
		if confidence <= 0 {
			confidence = aliasMapConfidence
		}
		return AgentNormalization{
			Normalized:    decision.Canonical,
			Confidence:    confidence,
			Method:        "agent_alias_map",
			Notes:         decision.Notes,
			EvidencePaths: evidencePaths,
		}, true

	case aliases.DecisionAmbiguous:
		return AgentNormalization{
			Normalized:    AmbiguousSentinel,
			Confidence:    decision.Confidence,
			Method:        "agent_alias_ambiguous",
			Notes:         decision.Notes,
			EvidencePaths: evidencePaths,
			Warnings:      []string{"agent_name_ambiguous"},
		}, true
	}

	return AgentNormalization{}, false
}
