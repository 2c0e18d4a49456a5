package aliases

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestLoadValueMapJSON(t *testing.T) {
	path := writeTempFile(t, "places.json", `{
  "amsterdam": "Amsterdam (Netherlands)",
  "london": "London (England)"
}`)

	m, err := LoadValueMap(path)
	if err != nil {
		t.Fatalf("LoadValueMap failed: %v", err)
	}

	if len(m) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(m))
	}
	if m["amsterdam"] != "Amsterdam (Netherlands)" {
		t.Errorf("Expected Amsterdam (Netherlands), got %q", m["amsterdam"])
	}
}

func TestLoadValueMapYAML(t *testing.T) {
	path := writeTempFile(t, "places.yaml", `amsterdam: Amsterdam (Netherlands)
venezia: Venice (Italy)
`)

	m, err := LoadValueMap(path)
	if err != nil {
		t.Fatalf("LoadValueMap failed: %v", err)
	}

	if m["venezia"] != "Venice (Italy)" {
		t.Errorf("Expected Venice (Italy), got %q", m["venezia"])
	}
}

func TestLoadAgentMapYAML(t *testing.T) {
	path := writeTempFile(t, "agents.yml", `athias, joseph:
  decision: map
  canonical: Athias, Joseph, approximately 1635-1700
  confidence: 0.97
buxtorf, johann:
  decision: keep
  notes: confirmed against VIAF
cohen, m:
  decision: ambiguous
`)

	m, err := LoadAgentMap(path)
	if err != nil {
		t.Fatalf("LoadAgentMap failed: %v", err)
	}

	if len(m) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(m))
	}

	athias := m["athias, joseph"]
	if athias.Decision != DecisionMap {
		t.Errorf("Expected decision map, got %s", athias.Decision)
	}
	if athias.Canonical != "Athias, Joseph, approximately 1635-1700" {
		t.Errorf("Expected canonical form, got %q", athias.Canonical)
	}
	if athias.Confidence != 0.97 {
		t.Errorf("Expected confidence 0.97, got %.2f", athias.Confidence)
	}

	buxtorf := m["buxtorf, johann"]
	if buxtorf.Decision != DecisionKeep || buxtorf.Notes != "confirmed against VIAF" {
		t.Errorf("Expected keep decision with notes, got %+v", buxtorf)
	}

	if m["cohen, m"].Decision != DecisionAmbiguous {
		t.Errorf("Expected ambiguous decision, got %s", m["cohen, m"].Decision)
	}
}

func TestLoadAgentMapJSON(t *testing.T) {
	path := writeTempFile(t, "agents.json", `{
  "levi, d": {"decision": "map", "canonical": "Levi, David, 1742-1801"}
}`)

	m, err := LoadAgentMap(path)
	if err != nil {
		t.Fatalf("LoadAgentMap failed: %v", err)
	}

	if m["levi, d"].Canonical != "Levi, David, 1742-1801" {
		t.Errorf("Expected canonical form, got %q", m["levi, d"].Canonical)
	}
}

func TestLoadValueMapUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "places.toml", `amsterdam = "Amsterdam"`)

	_, err := LoadValueMap(path)
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported alias map format") {
		t.Errorf("Expected format error, got %v", err)
	}
}

func TestLoadValueMapMissingFile(t *testing.T) {
	_, err := LoadValueMap("/nonexistent/places.yaml")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoadValueMapMalformed(t *testing.T) {
	path := writeTempFile(t, "places.json", `{not json`)

	_, err := LoadValueMap(path)
	if err == nil {
		t.Fatal("Expected error for malformed file")
	}
}
