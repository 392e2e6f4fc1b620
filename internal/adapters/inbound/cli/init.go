package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/config"
	"github.com/abdidvp/rulecheck/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		endpoint string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .rulecheck.yaml configuration file",
		Long:  "Create a .rulecheck.yaml pointing at the rule extraction and validation service.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			cfg.Endpoint = endpoint
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", domain.DefaultEndpoint, "Base URL of the rule service")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .rulecheck.yaml")

	return cmd
}

func generateConfig(cfg domain.ClientConfig) string {
	var b strings.Builder

	b.WriteString("# rulecheck configuration\n")
	b.WriteString("# RULECHECK_ENDPOINT, RULECHECK_TIMEOUT, RULECHECK_LOG_LEVEL and RULECHECK_LOG_FORMAT override these values.\n\n")
	fmt.Fprintf(&b, "endpoint: %s\n", cfg.Endpoint)
	fmt.Fprintf(&b, "extract_path: %s\n", cfg.ExtractPath)
	fmt.Fprintf(&b, "validate_path: %s\n", cfg.ValidatePath)
	fmt.Fprintf(&b, "log_level: %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "log_format: %s\n", cfg.LogFormat)
	b.WriteString(`
# timeout: 30s

# history: true
# history_limit: 500
# persist_rules: true

# default_rules:
#   - "Rule 1: All transactions above $10,000 must be reported."
`)

	return b.String()
}
