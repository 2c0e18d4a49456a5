package cmd

import (
	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/bibnorm/internal/pipecmd"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bibnorm",
		Short: "Two-stage bibliographic normalization pipeline",
		Long: `Bibnorm extracts provenance-tagged canonical records from MARC catalog
dumps (stage one) and appends deterministic, confidence-scored normalizations
of dates, places, publishers, agent names, and roles (stage two).

Both stages stream line-delimited JSON, never mutate their input, and degrade
per-record failures to auditable low-confidence or failed-record outcomes.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(pipecmd.NewExtractCmd())
	cmd.AddCommand(pipecmd.NewEnrichCmd())
	cmd.AddCommand(pipecmd.NewCandidatesCmd())

	return cmd
}
