package canonical

// SourcedValue pairs an extracted value with the exact field, subfield, and
// occurrence it came from, e.g. "245[0]$a". A value may aggregate several
// subfields, in which case every contributing source is listed in order.
type SourcedValue struct {
	Value  string   `json:"value"`
	Source []string `json:"source"`
}

// AgentType classifies the name family of an agent field.
type AgentType string

const (
	AgentPersonal  AgentType = "personal"
	AgentCorporate AgentType = "corporate"
	AgentMeeting   AgentType = "meeting"
)

// EntryRole distinguishes main entries from added entries.
type EntryRole string

const (
	EntryMain  EntryRole = "main"
	EntryAdded EntryRole = "added"
)

// RoleSource records which evidence produced the agent's function string.
type RoleSource string

const (
	RoleFromRelatorCode RoleSource = "relator_code"
	RoleFromRelatorTerm RoleSource = "relator_term"
	RoleFromTag         RoleSource = "inferred_from_tag"
	RoleUnknown         RoleSource = "unknown"
)

// Record is the canonical representation of one bibliographic record.
// Every present field carries at least one provenance entry; records lacking
// an identifier are never materialized.
type Record struct {
	RecordID      SourcedValue   `json:"record_id"`
	Title         *SourcedValue  `json:"title,omitempty"`
	UniformTitle  *SourcedValue  `json:"uniform_title,omitempty"`
	VariantTitles []SourcedValue `json:"variant_titles,omitempty"`
	Imprints      []ImprintData  `json:"imprints,omitempty"`
	Languages     []SourcedValue `json:"languages,omitempty"`
	Subjects      []SubjectData  `json:"subjects,omitempty"`
	Agents        []AgentData    `json:"agents,omitempty"`
	Notes         []SourcedValue `json:"notes,omitempty"`
	Acquisition   []SourcedValue `json:"acquisition,omitempty"`
}

// ImprintData is one publication statement.
type ImprintData struct {
	Place        *SourcedValue `json:"place,omitempty"`
	Publisher    *SourcedValue `json:"publisher,omitempty"`
	Date         *SourcedValue `json:"date,omitempty"`
	Manufacturer *SourcedValue `json:"manufacturer,omitempty"`
}

// SubjectData is one subject heading with optional vocabulary metadata.
type SubjectData struct {
	Heading         SourcedValue  `json:"heading"`
	Scheme          *SourcedValue `json:"scheme,omitempty"`
	HeadingLanguage *SourcedValue `json:"heading_language,omitempty"`
	AuthorityURI    *SourcedValue `json:"authority_uri,omitempty"`
}

// AgentData is one contributor entry. AgentIndex is a stable 0-based sequence
// across all agent fields of the record in encounter order, and is what the
// enrichment stage keys its results on.
type AgentData struct {
	Name         SourcedValue  `json:"name"`
	AgentType    AgentType     `json:"agent_type"`
	EntryRole    EntryRole     `json:"entry_role"`
	AgentIndex   int           `json:"agent_index"`
	Dates        *SourcedValue `json:"dates,omitempty"`
	Function     *SourcedValue `json:"function,omitempty"`
	RoleSource   RoleSource    `json:"role_source"`
	AuthorityURI *SourcedValue `json:"authority_uri,omitempty"`
}
