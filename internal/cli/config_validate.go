package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
)

// newConfigValidateCmd creates the config validate command for validating configuration.
func newConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness,
after environment overrides are applied.

This includes:
- YAML syntax
- Log level and format
- Output format, locale and precision
- Monthly goal, energy price, carbon factor and currency`,
		Example: `  # Validate current configuration
  ecotrack config validate

  # Validate and list the effective values
  ecotrack config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			cmd.Println("✅ Configuration is valid")
			if verbose {
				cmd.Printf("\nConfiguration file: %s\n", path)
				values := cfg.List()
				for _, k := range config.Keys() {
					cmd.Printf("  %s = %s\n", k, values[k])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the effective configuration")
	return cmd
}
