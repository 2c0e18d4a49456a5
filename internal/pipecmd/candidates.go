package pipecmd

import (
	"encoding/json"
	"log/slog"

	"github.com/lehigh-university-libraries/bibnorm/internal/canonical"
	"github.com/lehigh-university-libraries/bibnorm/internal/frequency"
	"github.com/spf13/cobra"
)

// NewCandidatesCmd creates the candidates command for alias-map curation input
func NewCandidatesCmd() *cobra.Command {
	var inputPath string
	var outputPath string
	var minCount int
	var top int

	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Build alias-map candidate worksheets from a canonical corpus",
		Long: `Candidates aggregates raw place, publisher, and agent values across an
entire canonical corpus and writes a frequency-sorted worksheet for alias-map
curation.

The worksheet is a curation input only: enrichment never reads it, and runs
fine without any alias map at all.`,
		Example: `  # Full worksheet as YAML
  bibnorm candidates --input canonical.jsonl --output candidates.yaml

  # Only values seen at least 5 times, top 200 per facet, as JSON
  bibnorm candidates --input canonical.jsonl --output candidates.json --min-count 5 --top 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCandidates(inputPath, outputPath, minCount, top)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to canonical JSONL file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "candidates.yaml", "Path to output worksheet (.yaml or .json)")
	cmd.Flags().IntVar(&minCount, "min-count", 1, "Minimum occurrence count to include a value")
	cmd.Flags().IntVar(&top, "top", 0, "Cap each facet at the N most frequent values (0 for all)")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func executeCandidates(inputPath, outputPath string, minCount, top int) error {
	slog.Info("Building alias candidates", "input", inputPath, "output", outputPath)

	builder := frequency.NewBuilder()
	skipped := 0

	err := forEachLine(inputPath, func(lineNum int, line []byte) error {
		var rec canonical.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			slog.Warn("Skipping malformed canonical record", "line", lineNum, "err", err)
			skipped++
			return nil
		}
		builder.Observe(&rec)
		return nil
	})
	if err != nil {
		return err
	}

	worksheet := builder.Worksheet(minCount, top)
	if err := worksheet.Save(outputPath); err != nil {
		return err
	}

	slog.Info("Candidate worksheet saved",
		"path", outputPath,
		"records", worksheet.Records,
		"places", len(worksheet.Places),
		"publishers", len(worksheet.Publishers),
		"agents", len(worksheet.Agents),
		"skipped", skipped)

	return nil
}
