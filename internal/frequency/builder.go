package frequency

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/bibnorm/internal/canonical"
	"github.com/lehigh-university-libraries/bibnorm/internal/normalize"
	"gopkg.in/yaml.v3"
)

// sampleIDLimit bounds how many record ids are kept per raw value.
const sampleIDLimit = 5

// Candidate is one raw value aggregated across the corpus, presented to
// curators as alias-map input. Key is the lookup key an alias entry for this
// value must use.
type Candidate struct {
	Raw       string   `json:"raw" yaml:"raw"`
	Key       string   `json:"key" yaml:"key"`
	Count     int      `json:"count" yaml:"count"`
	SampleIDs []string `json:"sample_ids,omitempty" yaml:"sample_ids,omitempty"`
}

// Worksheet is the curation artifact the builder produces: per-facet
// candidate lists sorted by descending frequency.
type Worksheet struct {
	Records    int         `json:"records" yaml:"records"`
	Places     []Candidate `json:"places" yaml:"places"`
	Publishers []Candidate `json:"publishers" yaml:"publishers"`
	Agents     []Candidate `json:"agents" yaml:"agents"`
}

type entry struct {
	raw       string
	key       string
	count     int
	sampleIDs []string
}

// Builder aggregates raw place, publisher, and agent values corpus-wide.
// It runs offline, ahead of curation; enrichment never depends on it.
type Builder struct {
	records    int
	places     map[string]*entry
	publishers map[string]*entry
	agents     map[string]*entry
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		places:     make(map[string]*entry),
		publishers: make(map[string]*entry),
		agents:     make(map[string]*entry),
	}
}

// Observe folds one canonical record into the aggregation.
func (b *Builder) Observe(rec *canonical.Record) {
	b.records++
	id := rec.RecordID.Value

	for i := range rec.Imprints {
		imprint := &rec.Imprints[i]
		if imprint.Place != nil {
			b.observe(b.places, imprint.Place.Value, normalize.ValueLookupKey(imprint.Place.Value), id)
		}
		if imprint.Publisher != nil {
			b.observe(b.publishers, imprint.Publisher.Value, normalize.ValueLookupKey(imprint.Publisher.Value), id)
		}
	}

	for i := range rec.Agents {
		agent := &rec.Agents[i]
		if agent.Name.Value == "" {
			continue
		}
		b.observe(b.agents, agent.Name.Value, normalize.AgentLookupKey(agent.Name.Value), id)
	}
}

func (b *Builder) observe(facet map[string]*entry, raw, key, recordID string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || key == "" {
		return
	}

	e, ok := facet[raw]
	if !ok {
		e = &entry{raw: raw, key: key}
		facet[raw] = e
	}

	e.count++
	if len(e.sampleIDs) < sampleIDLimit {
		e.sampleIDs = append(e.sampleIDs, recordID)
	}
}

// Worksheet materializes the aggregation. minCount filters noise values;
// top caps each facet's list (0 means unlimited). Output order is
// deterministic: count descending, then raw value ascending.
func (b *Builder) Worksheet(minCount, top int) *Worksheet {
	return &Worksheet{
		Records:    b.records,
		Places:     collect(b.places, minCount, top),
		Publishers: collect(b.publishers, minCount, top),
		Agents:     collect(b.agents, minCount, top),
	}
}

func collect(facet map[string]*entry, minCount, top int) []Candidate {
	candidates := make([]Candidate, 0, len(facet))
	for _, e := range facet {
		if e.count < minCount {
			continue
		}
		candidates = append(candidates, Candidate{
			Raw:       e.raw,
			Key:       e.key,
			Count:     e.count,
			SampleIDs: e.sampleIDs,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Count != candidates[j].Count {
			return candidates[i].Count > candidates[j].Count
		}
		return candidates[i].Raw < candidates[j].Raw
	})

	if top > 0 && len(candidates) > top {
		candidates = candidates[:top]
	}
	return candidates
}

// Save writes the worksheet as YAML (default) or JSON depending on the
// output file extension.
func (w *Worksheet) Save(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(w, "", "  ")
	default:
		data, err = yaml.Marshal(w)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal worksheet: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write worksheet: %w", err)
	}

	return nil
}
