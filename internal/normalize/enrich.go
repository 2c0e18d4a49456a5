package normalize

import (
	"fmt"

	"github.com/lehigh-university-libraries/bibnorm/internal/aliases"
	"github.com/lehigh-university-libraries/bibnorm/internal/canonical"
)

// Enrich computes the enrichment for one canonical record. It is pure:
// the input record is never mutated, alias maps are read-only, and identical
// input always produces an identical result. imprints_norm is index-aligned
// 1:1 with the record's imprints; agents lacking a name are skipped, since
// normalizing a nameless agent is meaningless rather than wrong.
func Enrich(rec *canonical.Record, maps aliases.Maps) RecordEnrichment {
	enrichment := RecordEnrichment{
		ImprintsNorm: make([]ImprintNormalization, 0, len(rec.Imprints)),
		AgentsNorm:   make([]AgentEnrichment, 0, len(rec.Agents)),
	}

	for i := range rec.Imprints {
		enrichment.ImprintsNorm = append(enrichment.ImprintsNorm, enrichImprint(&rec.Imprints[i], i, maps))
	}

	for i := range rec.Agents {
		agent := &rec.Agents[i]
		if agent.Name.Value == "" {
			continue
		}
		enrichment.AgentsNorm = append(enrichment.AgentsNorm, enrichAgent(agent, i, maps))
	}

	return enrichment
}

func enrichImprint(imprint *canonical.ImprintData, idx int, maps aliases.Maps) ImprintNormalization {
	return ImprintNormalization{
		DateNorm:      NormalizeDate(sourcedString(imprint.Date), imprintEvidence(imprint.Date, idx, "date")),
		PlaceNorm:     NormalizePlace(sourcedString(imprint.Place), maps.Places, imprintEvidence(imprint.Place, idx, "place")),
		PublisherNorm: NormalizePublisher(sourcedString(imprint.Publisher), maps.Publishers, imprintEvidence(imprint.Publisher, idx, "publisher")),
	}
}

func enrichAgent(agent *canonical.AgentData, idx int, maps aliases.Maps) AgentEnrichment {
	namePath := fmt.Sprintf("$.agents[%d].name.value", idx)

	var function string
	var rolePaths []string
	if agent.Function != nil {
		function = agent.Function.Value
		rolePaths = []string{fmt.Sprintf("$.agents[%d].function.value", idx)}
	}

	return AgentEnrichment{
		AgentIndex: agent.AgentIndex,
		Agent:      NormalizeAgent(agent.Name.Value, maps.Agents, []string{namePath}),
		Role:       NormalizeRole(function, rolePaths),
	}
}

func sourcedString(sv *canonical.SourcedValue) string {
	if sv == nil {
		return ""
	}
	return sv.Value
}

func imprintEvidence(sv *canonical.SourcedValue, idx int, field string) []string {
	if sv == nil {
		return nil
	}
	return []string{fmt.Sprintf("$.imprints[%d].%s.value", idx, field)}
}
