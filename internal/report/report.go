package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/bibnorm/internal/canonical"
	"github.com/lehigh-university-libraries/bibnorm/internal/extract"
	"github.com/lehigh-university-libraries/bibnorm/internal/marc"
)

// missingSampleLimit bounds the missing-field id samples so the report stays
// small regardless of corpus size.
const missingSampleLimit = 10

// Coverage counts how many extracted records carry each semantic field.
type Coverage struct {
	Title     int `json:"title"`
	Imprint   int `json:"imprint"`
	Languages int `json:"languages"`
	Subjects  int `json:"subjects"`
	Agents    int `json:"agents"`
	Notes     int `json:"notes"`
}

// ExtractionReport aggregates QA statistics for one extraction run. It is a
// write-only side channel: enrichment never reads it.
type ExtractionReport struct {
	TotalRecords   int                    `json:"total_records"`
	Extracted      int                    `json:"extracted"`
	Dropped        int                    `json:"dropped"`
	Failed         int                    `json:"failed"`
	Coverage       Coverage               `json:"coverage"`
	FieldUsage     map[string]int         `json:"field_usage"`
	MissingTitle   []string               `json:"missing_title,omitempty"`
	MissingImprint []string               `json:"missing_imprint,omitempty"`
	FailedRecords  []extract.FailedRecord `json:"failed_records,omitempty"`
}

// Reporter streams per-record observations into an ExtractionReport.
type Reporter struct {
	report ExtractionReport
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{
		report: ExtractionReport{
			FieldUsage: make(map[string]int),
		},
	}
}

// ObserveSource records field/subfield usage for one raw source record,
// regardless of whether extraction later succeeds.
func (r *Reporter) ObserveSource(rec *marc.Record) {
	r.report.TotalRecords++

	for i := range rec.Fields {
		field := &rec.Fields[i]
		if field.IsControl() {
			r.report.FieldUsage[field.Tag]++
			continue
		}
		for _, sf := range field.Subfields {
			r.report.FieldUsage[field.Tag+"$"+sf.Code]++
		}
	}
}

// ObserveExtracted records coverage flags for one successfully extracted
// canonical record.
func (r *Reporter) ObserveExtracted(rec *canonical.Record) {
	r.report.Extracted++

	if rec.Title != nil {
		r.report.Coverage.Title++
	} else if len(r.report.MissingTitle) < missingSampleLimit {
		r.report.MissingTitle = append(r.report.MissingTitle, rec.RecordID.Value)
	}

	if len(rec.Imprints) > 0 {
		r.report.Coverage.Imprint++
	} else if len(r.report.MissingImprint) < missingSampleLimit {
		r.report.MissingImprint = append(r.report.MissingImprint, rec.RecordID.Value)
	}

	if len(rec.Languages) > 0 {
		r.report.Coverage.Languages++
	}
	if len(rec.Subjects) > 0 {
		r.report.Coverage.Subjects++
	}
	if len(rec.Agents) > 0 {
		r.report.Coverage.Agents++
	}
	if len(rec.Notes) > 0 {
		r.report.Coverage.Notes++
	}
}

// ObserveDropped counts a record dropped for lacking an identifier.
func (r *Reporter) ObserveDropped() {
	r.report.Dropped++
}

// Finalize folds in the failure tracker and returns the completed report.
func (r *Reporter) Finalize(failures *extract.FailureTracker) *ExtractionReport {
	r.report.Failed = failures.Count()
	r.report.FailedRecords = failures.Failures()
	return &r.report
}

// SaveToJSON saves the report to a JSON file
func (rep *ExtractionReport) SaveToJSON(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report to JSON: %w", err)
	}

	return nil
}

// PrintSummary prints a human-readable summary of the extraction run
func (rep *ExtractionReport) PrintSummary() {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("EXTRACTION SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Total Records: %d\n", rep.TotalRecords)
	fmt.Printf("Extracted: %d\n", rep.Extracted)
	fmt.Printf("Dropped (no identifier): %d\n", rep.Dropped)
	fmt.Printf("Failed: %d\n", rep.Failed)
	fmt.Println()

	fmt.Println("FIELD COVERAGE")
	fmt.Println(strings.Repeat("-", 70))
	printCoverage("Title", rep.Coverage.Title, rep.Extracted)
	printCoverage("Imprint", rep.Coverage.Imprint, rep.Extracted)
	printCoverage("Languages", rep.Coverage.Languages, rep.Extracted)
	printCoverage("Subjects", rep.Coverage.Subjects, rep.Extracted)
	printCoverage("Agents", rep.Coverage.Agents, rep.Extracted)
	printCoverage("Notes", rep.Coverage.Notes, rep.Extracted)
	fmt.Println()

	if len(rep.MissingTitle) > 0 {
		fmt.Printf("Records missing title (sample): %v\n", rep.MissingTitle)
	}
	if len(rep.MissingImprint) > 0 {
		fmt.Printf("Records missing imprint (sample): %v\n", rep.MissingImprint)
	}

	fmt.Println("\nTOP FIELD USAGE")
	fmt.Println(strings.Repeat("-", 70))
	for _, usage := range rep.topFieldUsage(15) {
		fmt.Printf("  %-8s %d\n", usage.key, usage.count)
	}
	fmt.Println(strings.Repeat("=", 70))
}

func printCoverage(name string, count, total int) {
	pct := 0.0
	if total > 0 {
		pct = float64(count) / float64(total) * 100
	}
	fmt.Printf("  %-10s %d (%.1f%%)\n", name+":", count, pct)
}

type fieldCount struct {
	key   string
	count int
}

// topFieldUsage returns the n most used field/subfield keys, ties broken by
// key for deterministic output.
func (rep *ExtractionReport) topFieldUsage(n int) []fieldCount {
	counts := make([]fieldCount, 0, len(rep.FieldUsage))
	for k, c := range rep.FieldUsage {
		counts = append(counts, fieldCount{key: k, count: c})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].key < counts[j].key
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
