package pipecmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/bibnorm/internal/aliases"
	"github.com/lehigh-university-libraries/bibnorm/internal/canonical"
	"github.com/lehigh-university-libraries/bibnorm/internal/normalize"
	"github.com/spf13/cobra"
)

// NewEnrichCmd creates the enrich command for stage-two normalization
func NewEnrichCmd() *cobra.Command {
	var inputPath string
	var outputPath string
	var placesPath string
	var publishersPath string
	var agentsPath string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Append normalization enrichment to canonical records",
		Long: `Enrich computes deterministic, confidence-scored normalizations (dates,
places, publishers, agent names, roles) for each canonical record and appends
them under a single new "enrichment" key. The stage-one record is emitted
byte-for-byte untouched apart from that one additional key.

Alias maps are optional; when supplied they are loaded once before the batch
and treated as immutable for its duration.`,
		Example: `  # Enrich with base rules only
  bibnorm enrich --input canonical.jsonl --output enriched.jsonl

  # Enrich with curated alias maps
  bibnorm enrich --input canonical.jsonl --output enriched.jsonl \
    --places places.json --publishers publishers.json --agents agents.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeEnrich(inputPath, outputPath, placesPath, publishersPath, agentsPath)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to canonical JSONL file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "enriched.jsonl", "Path to output enriched JSONL file")
	cmd.Flags().StringVar(&placesPath, "places", "", "Optional place alias map (.json or .yaml)")
	cmd.Flags().StringVar(&publishersPath, "publishers", "", "Optional publisher alias map (.json or .yaml)")
	cmd.Flags().StringVar(&agentsPath, "agents", "", "Optional agent alias map (.json or .yaml)")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func executeEnrich(inputPath, outputPath, placesPath, publishersPath, agentsPath string) error {
	slog.Info("Starting enrichment", "input", inputPath, "output", outputPath)

	maps, err := loadAliasMaps(placesPath, publishersPath, agentsPath)
	if err != nil {
		return err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	defer writer.Flush()

	enriched := 0
	skipped := 0

	err = forEachLine(inputPath, func(lineNum int, line []byte) error {
		// Validate the line is a JSON object before touching it; the original
		// bytes are spliced into the output untouched.
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(line, &keys); err != nil {
			slog.Warn("Skipping malformed canonical record", "line", lineNum, "err", err)
			skipped++
			return nil
		}

		var rec canonical.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			slog.Warn("Skipping unreadable canonical record", "line", lineNum, "err", err)
			skipped++
			return nil
		}

		enrichment := normalize.Enrich(&rec, maps)

		enrichmentJSON, err := json.Marshal(enrichment)
		if err != nil {
			return fmt.Errorf("failed to marshal enrichment at line %d: %w", lineNum, err)
		}

		out := appendEnrichment(line, enrichmentJSON, len(keys) > 0)

		if _, err := writer.Write(append(out, '\n')); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		enriched++
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Enrichment complete", "enriched", enriched, "skipped", skipped)

	return nil
}

// appendEnrichment splices the enrichment object into the canonical line as
// one additional top-level "enrichment" key. The original line is emitted
// as-is, keys in their original order, so the input survives as a prefix of
// the output.
func appendEnrichment(line, enrichment []byte, hasKeys bool) []byte {
	trimmed := bytes.TrimSpace(line)

	out := make([]byte, 0, len(trimmed)+len(enrichment)+len(`,"enrichment":}`))
	out = append(out, trimmed[:len(trimmed)-1]...)
	if hasKeys {
		out = append(out, ',')
	}
	out = append(out, `"enrichment":`...)
	out = append(out, enrichment...)
	return append(out, '}')
}

// loadAliasMaps loads whichever alias maps were supplied, once, before the
// batch starts.
func loadAliasMaps(placesPath, publishersPath, agentsPath string) (aliases.Maps, error) {
	var maps aliases.Maps

	if placesPath != "" {
		m, err := aliases.LoadValueMap(placesPath)
		if err != nil {
			return maps, err
		}
		maps.Places = m
		slog.Info("Loaded place alias map", "path", placesPath, "entries", len(m))
	}

	if publishersPath != "" {
		m, err := aliases.LoadValueMap(publishersPath)
		if err != nil {
			return maps, err
		}
		maps.Publishers = m
		slog.Info("Loaded publisher alias map", "path", publishersPath, "entries", len(m))
	}

	if agentsPath != "" {
		m, err := aliases.LoadAgentMap(agentsPath)
		if err != nil {
			return maps, err
		}
		maps.Agents = m
		slog.Info("Loaded agent alias map", "path", agentsPath, "entries", len(m))
	}

	return maps, nil
}
