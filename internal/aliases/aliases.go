package aliases

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Alias maps are curated out-of-band (frequency worksheets plus human or
// assisted review) and are read-only for the duration of a batch run. Keys
// are base-normalized strings so curated decisions stay case- and
// punctuation-insensitive.

// Agent alias decisions.
const (
	DecisionKeep      = "keep"      // confirms the base form; no rewrite
	DecisionMap       = "map"       // substitutes the curated canonical form
	DecisionAmbiguous = "ambiguous" // name cannot be resolved to one identity
)

// ValueMap maps a normalized lookup key to a canonical display string.
// Used for places and publishers.
type ValueMap map[string]string

// AgentDecision is one curated ruling about an agent name.
type AgentDecision struct {
	Decision   string  `json:"decision" yaml:"decision"`
	Canonical  string  `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Notes      string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AgentMap maps a normalized lookup key to a curated decision.
type AgentMap map[string]AgentDecision

// Maps bundles the optional alias maps passed by reference into enrichment.
// A nil map means "no curation available"; normalizers fall back to their
// base rules.
type Maps struct {
	Places     ValueMap
	Publishers ValueMap
	Agents     AgentMap
}

// LoadValueMap loads a place or publisher alias map from a JSON or YAML file.
func LoadValueMap(path string) (ValueMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias map: %w", err)
	}

	var m ValueMap
	if err := unmarshalByExt(path, data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse alias map %s: %w", path, err)
	}

	return m, nil
}

// LoadAgentMap loads an agent decision map from a JSON or YAML file.
func LoadAgentMap(path string) (AgentMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent alias map: %w", err)
	}

	var m AgentMap
	if err := unmarshalByExt(path, data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse agent alias map %s: %w", path, err)
	}

	return m, nil
}

func unmarshalByExt(path string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	case ".json":
		return json.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported alias map format: %s (supported: .json, .yaml)", filepath.Ext(path))
	}
}
