package marc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSONL = `{"leader":"00000nam a2200000 a 4500","fields":[{"tag":"001","value":"rec-001"},{"tag":"245","ind1":"1","ind2":"0","subfields":[{"code":"a","value":"First title"}]}]}
{"fields":[{"tag":"001","value":"rec-002"},{"tag":"245","subfields":[{"code":"a","value":"Second title"}]}]}
{"fields":[{"tag":"001","value":"rec-003"}]}
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestLoadJSONL(t *testing.T) {
	path := writeTempFile(t, "records.jsonl", sampleJSONL)

	loader := NewLoader(path)
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	if records[0].Leader != "00000nam a2200000 a 4500" {
		t.Errorf("Expected leader to be preserved, got %q", records[0].Leader)
	}
	if records[0].ControlValue("001") != "rec-001" {
		t.Errorf("Expected rec-001, got %s", records[0].ControlValue("001"))
	}

	titles := records[0].FieldsByTag("245")
	if len(titles) != 1 {
		t.Fatalf("Expected 1 title field, got %d", len(titles))
	}
	if titles[0].Subfield("a") != "First title" {
		t.Errorf("Expected First title, got %s", titles[0].Subfield("a"))
	}
	if titles[0].Ind1 != "1" || titles[0].Ind2 != "0" {
		t.Errorf("Expected indicators 1 and 0, got %q %q", titles[0].Ind1, titles[0].Ind2)
	}
}

func TestLoadJSONLSkipsEmptyLines(t *testing.T) {
	content := `{"fields":[{"tag":"001","value":"rec-001"}]}

{"fields":[{"tag":"001","value":"rec-002"}]}
`
	path := writeTempFile(t, "records.jsonl", content)

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}

func TestForEachReportsParseErrors(t *testing.T) {
	content := `{"fields":[{"tag":"001","value":"rec-001"}]}
{not valid json}
{"fields":[{"tag":"001","value":"rec-003"}]}
`
	path := writeTempFile(t, "records.jsonl", content)

	var parsed, failed []int
	err := NewLoader(path).ForEach(func(lineNum int, record *Record, parseErr error) error {
		if parseErr != nil {
			failed = append(failed, lineNum)
			return nil
		}
		parsed = append(parsed, lineNum)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}

	if len(parsed) != 2 || parsed[0] != 1 || parsed[1] != 3 {
		t.Errorf("Expected lines 1 and 3 parsed, got %v", parsed)
	}
	if len(failed) != 1 || failed[0] != 2 {
		t.Errorf("Expected line 2 failed, got %v", failed)
	}
}

func TestLoadSample(t *testing.T) {
	path := writeTempFile(t, "records.jsonl", sampleJSONL)

	records, err := NewLoader(path).LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[1].ControlValue("001") != "rec-002" {
		t.Errorf("Expected rec-002, got %s", records[1].ControlValue("001"))
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "records.csv", "a,b,c\n")

	_, err := NewLoader(path).Load()
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported file format") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := NewLoader("/nonexistent/records.jsonl").Load()
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
}

func TestFieldHelpers(t *testing.T) {
	field := Field{
		Tag: "041",
		Subfields: []Subfield{
			{Code: "a", Value: "heb"},
			{Code: "a", Value: "lat"},
			{Code: "h", Value: "ger"},
		},
	}

	if field.Subfield("a") != "heb" {
		t.Errorf("Expected first $a, got %s", field.Subfield("a"))
	}
	if field.Subfield("z") != "" {
		t.Errorf("Expected empty for missing code, got %s", field.Subfield("z"))
	}

	values := field.SubfieldValues("a")
	if len(values) != 2 || values[0] != "heb" || values[1] != "lat" {
		t.Errorf("Expected [heb lat], got %v", values)
	}

	control := Field{Tag: "008", Value: "fixed"}
	if !control.IsControl() {
		t.Error("Expected 008 to be a control field")
	}
	data := Field{Tag: "245"}
	if data.IsControl() {
		t.Error("Expected 245 to not be a control field")
	}
}
