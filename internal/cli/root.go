// Package cli implements the ecotrack command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecotrack/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	statePath  string
	output     string
	locale     string
}

// NewRootCmd creates the root Cobra command for the ecotrack CLI.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     globalFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:     "ecotrack",
		Short:   "Personal carbon tracker and Green IT calculator",
		Long:    "ecotrack: log everyday activities, estimate IT infrastructure footprints and follow your monthly carbon goal",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(&flags); err != nil {
				return err
			}
			result := setupLogging(cmd, flags.debug)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "overlay configuration file merged over ~/.ecotrack/config.yaml")
	pf.StringVar(&flags.statePath, "state", "", "state document path (default ~/.ecotrack/state.json)")
	pf.StringVarP(&flags.output, "output", "o", "", "output format: table or json (default from config)")
	pf.StringVar(&flags.locale, "locale", "", "number and label locale: fr or en (default from config)")

	cmd.AddCommand(
		newActivityCmd(&flags),
		newStatsCmd(&flags),
		newRecommendCmd(&flags),
		newChallengesCmd(&flags),
		newSettingsCmd(&flags),
		newGreenITCmd(&flags),
		newLedgerCmd(&flags),
		newReportCmd(&flags),
		newMetricsCmd(&flags),
		newDashboardCmd(&flags),
		newStateCmd(&flags),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Log a 12 km bus ride
  ecotrack activity add transport 12 --mode bus --description "Trajet domicile"

  # One-tap quick action
  ecotrack activity quick electricity

  # Monthly statistics as JSON
  ecotrack stats -o json

  # Estimate a datacenter footprint
  ecotrack greenit calc datacenter --set server-count=20 --set power-rating=400

  # Export the dashboard
  ecotrack report --format xlsx,pdf

  # Interactive dashboard
  ecotrack dashboard`
