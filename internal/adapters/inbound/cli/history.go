package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/history"
	"github.com/abdidvp/rulecheck/internal/adapters/outbound/tui"
	"github.com/abdidvp/rulecheck/internal/domain"
)

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past rule extractions and validations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}

			entries, err := s.History.Load(s.Dir)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			entries = history.Last(entries, limit)

			if jsonOutput {
				if entries == nil {
					entries = []domain.RunEntry{}
				}
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many recent runs (0 for all)")

	return cmd
}
