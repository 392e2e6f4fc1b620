package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/tui"
	"github.com/abdidvp/rulecheck/internal/domain"
)

type rulesOutput struct {
	Rules  []domain.Rule         `json:"rules"`
	Status domain.WorkflowStatus `json:"status"`
}

func newRulesCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Generate and show compliance rules",
		Long:  "Commands for extracting compliance rules from a PDF document and showing the current rule set.",
	}
	cmd.AddCommand(newRulesGenerateCmd(flags))
	cmd.AddCommand(newRulesShowCmd(flags))
	cmd.AddCommand(newRulesResetCmd(flags))
	return cmd
}

func newRulesGenerateCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "generate <document.pdf>",
		Short: "Extract rules from a PDF document",
		Long:  "Upload a PDF document to the rule extraction service and replace the current rule set with the result.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}

			if err := s.Rules.SubmitFile(cmd.Context(), args[0]); err != nil {
				return err
			}

			status := s.Rules.Status()
			if jsonOutput {
				if err := renderJSON(cmd, rulesOutput{Rules: s.Rules.Rules(), Status: status}); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(s.Rules.Rules(), status))
			}

			if status.Outcome == domain.OutcomeFailed {
				return fmt.Errorf("rule extraction failed: %s", status.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")

	return cmd
}

func newRulesShowCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current rule set",
		Long:  "Show the last extracted rule set, or the built-in rules if none was extracted yet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, rulesOutput{Rules: s.Rules.Rules(), Status: s.Rules.Status()})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(s.Rules.Rules(), s.Rules.Status()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")

	return cmd
}

func newRulesResetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved rule set",
		Long:  "Remove the saved rule set so the built-in rules are shown again.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}
			if err := s.RuleStore.Invalidate(s.Dir); err != nil {
				return fmt.Errorf("removing saved rules: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved rules removed")
			return nil
		},
	}
}
