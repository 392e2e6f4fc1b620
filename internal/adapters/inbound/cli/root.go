package cli

import (
	"github.com/spf13/cobra"

	"github.com/abdidvp/rulecheck/internal/bootstrap"
)

var (
	version = "dev"
	commit  = "none"
)

type globalFlags struct {
	configDir string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "rulecheck",
		Short: "Extract compliance rules and validate datasets against them",
		Long: "rulecheck uploads a policy document to obtain compliance rules, and uploads a CSV dataset " +
			"to get a per-row pass/fail judgment against them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configDir, "config", ".", "Directory holding .rulecheck.yaml and .rulecheck/ state")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRulesCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newHistoryCmd(flags))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(flags))
	return cmd
}

// session builds the wired workflows for a command. Logs go to the
// command's stderr.
func (f *globalFlags) session(cmd *cobra.Command) (*bootstrap.Session, error) {
	return bootstrap.New(bootstrap.Options{
		Dir:       f.configDir,
		LogLevel:  f.logLevel,
		LogOutput: cmd.ErrOrStderr(),
	})
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
