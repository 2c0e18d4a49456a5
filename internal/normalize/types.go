package normalize

// Result types for stage-two enrichment. Every normalizer returns an
// auditable result: a policy confidence in [0,1], a method tag naming exactly
// which rule fired, JSON-path evidence into the canonical record, and warnings.
// Normalizers never return errors; unparsable input degrades to a
// zero-confidence result instead.

// DateNormalization is the result of the date rule cascade. YearStart and
// YearEnd are nil when no rule could produce a year; Label then preserves the
// original trimmed text.
type DateNormalization struct {
	YearStart     *int     `json:"year_start"`
	YearEnd       *int     `json:"year_end"`
	Label         string   `json:"label,omitempty"`
	Confidence    float64  `json:"confidence"`
	Method        string   `json:"method"`
	EvidencePaths []string `json:"evidence_paths,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// PlaceNormalization is the result of place-name normalization.
type PlaceNormalization struct {
	Normalized    string   `json:"normalized"`
	Confidence    float64  `json:"confidence"`
	Method        string   `json:"method"`
	EvidencePaths []string `json:"evidence_paths,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// PublisherNormalization is the result of publisher-name normalization.
type PublisherNormalization struct {
	Normalized    string   `json:"normalized"`
	Confidence    float64  `json:"confidence"`
	Method        string   `json:"method"`
	EvidencePaths []string `json:"evidence_paths,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// AgentNormalization is the result of agent-name normalization. Normalized is
// the sentinel "ambiguous" when curation flagged the name as unresolvable.
type AgentNormalization struct {
	Normalized    string   `json:"normalized"`
	Confidence    float64  `json:"confidence"`
	Method        string   `json:"method"`
	Notes         string   `json:"notes,omitempty"`
	EvidencePaths []string `json:"evidence_paths,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// RoleNormalization is the result of the controlled-vocabulary role lookup.
type RoleNormalization struct {
	Role          string   `json:"role"`
	Confidence    float64  `json:"confidence"`
	Method        string   `json:"method"`
	EvidencePaths []string `json:"evidence_paths,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ImprintNormalization groups the normalizations for one imprint. It is
// index-aligned 1:1 with the canonical imprints array.
type ImprintNormalization struct {
	DateNorm      DateNormalization      `json:"date_norm"`
	PlaceNorm     PlaceNormalization     `json:"place_norm"`
	PublisherNorm PublisherNormalization `json:"publisher_norm"`
}

// AgentEnrichment pairs one agent's name and role normalizations with its
// stable canonical agent index.
type AgentEnrichment struct {
	AgentIndex int                `json:"agent_index"`
	Agent      AgentNormalization `json:"agent"`
	Role       RoleNormalization  `json:"role"`
}

// RecordEnrichment is the strictly additive enrichment object appended beside an
// unmodified canonical record.
type RecordEnrichment struct {
	ImprintsNorm []ImprintNormalization `json:"imprints_norm"`
	AgentsNorm   []AgentEnrichment      `json:"agents_norm"`
}

func intPtr(v int) *int {
	return &v
}
