package pipecmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/bibnorm/internal/extract"
	"github.com/lehigh-university-libraries/bibnorm/internal/marc"
	"github.com/lehigh-university-libraries/bibnorm/internal/report"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command for stage-one canonical extraction
func NewExtractCmd() *cobra.Command {
	var inputPath string
	var outputPath string
	var reportPath string
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract canonical records from MARC source records",
		Long: `Extract walks a MARC source collection and builds one provenance-tagged
canonical record per input record.

Records lacking an identifier (001) are dropped entirely. Records that cannot
be parsed are logged and counted, and processing continues; only an unreadable
input file aborts the batch. Output is line-delimited JSON in source order.`,
		Example: `  # Extract a catalog dump
  bibnorm extract --input records.jsonl --output canonical.jsonl

  # Extract with a QA report
  bibnorm extract --input records.parquet --output canonical.jsonl --report report.json

  # Quick QA pass over the first 100 records
  bibnorm extract --input records.jsonl --output sample.jsonl --sample 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeExtract(inputPath, outputPath, reportPath, sampleSize)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to MARC source records (.jsonl or .parquet) (required)")
	cmd.Flags().StringVar(&outputPath, "output", "canonical.jsonl", "Path to output canonical JSONL file")
	cmd.Flags().StringVar(&reportPath, "report", "", "Optional path for the extraction report JSON")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Only process the first N records (0 for all)")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// errSampleDone signals that the sample limit was reached mid-stream.
var errSampleDone = errors.New("sample limit reached")

func executeExtract(inputPath, outputPath, reportPath string, sampleSize int) error {
	slog.Info("Starting extraction", "input", inputPath, "output", outputPath)

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	defer writer.Flush()

	loader := marc.NewLoader(inputPath)
	reporter := report.NewReporter()
	failures := extract.NewFailureTracker()
	extracted := 0

	err = loader.ForEach(func(lineNum int, record *marc.Record, parseErr error) error {
		if parseErr != nil {
			failures.Record("", lineNum, parseErr)
			return nil
		}

		reporter.ObserveSource(record)

		canonicalRec, extractErr := extract.Extract(record)
		if extractErr != nil {
			if errors.Is(extractErr, extract.ErrMissingIdentifier) {
				reporter.ObserveDropped()
				return nil
			}
			failures.Record(record.ControlValue("001"), lineNum, extractErr)
			return nil
		}

		reporter.ObserveExtracted(canonicalRec)

		line, marshalErr := json.Marshal(canonicalRec)
		if marshalErr != nil {
			failures.Record(canonicalRec.RecordID.Value, lineNum, marshalErr)
			return nil
		}

		if _, writeErr := writer.Write(append(line, '\n')); writeErr != nil {
			return fmt.Errorf("failed to write output: %w", writeErr)
		}

		extracted++
		if sampleSize > 0 && extracted >= sampleSize {
			return errSampleDone
		}
		return nil
	})
	if err != nil && !errors.Is(err, errSampleDone) {
		return err
	}

	finalReport := reporter.Finalize(failures)
	finalReport.PrintSummary()

	if reportPath != "" {
		if err := finalReport.SaveToJSON(reportPath); err != nil {
			return err
		}
		slog.Info("Extraction report saved", "path", reportPath)
	}

	slog.Info("Extraction complete", "extracted", extracted, "dropped", finalReport.Dropped, "failed", finalReport.Failed)

	return nil
}
