package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/tui"
	"github.com/abdidvp/rulecheck/internal/domain"
)

type validateOutput struct {
	Report *domain.ValidationReport `json:"report"`
	Status domain.WorkflowStatus    `json:"status"`
}

func newValidateCmd(flags *globalFlags) *cobra.Command {
	var (
		jsonOutput bool
		showAll    bool
		exportPath string
		ciMode     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <dataset.csv>",
		Short: "Validate a CSV dataset against the compliance rules",
		Long:  "Upload a CSV dataset to the validation service and show the invalid rows with summary counts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.session(cmd)
			if err != nil {
				return err
			}

			if err := s.Validation.SubmitFile(cmd.Context(), args[0]); err != nil {
				return err
			}

			status := s.Validation.Status()
			report := s.Validation.Report()

			if jsonOutput {
				if err := renderJSON(cmd, validateOutput{Report: report, Status: status}); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderValidation(report, showAll))
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFailure(status))
			}

			if status.Outcome == domain.OutcomeFailed {
				return fmt.Errorf("validation failed: %s", status.Error)
			}

			if exportPath != "" {
				if err := s.Exporter.Export(report, exportPath); err != nil {
					return fmt.Errorf("exporting report: %w", err)
				}
				if !jsonOutput {
					fmt.Fprintf(cmd.OutOrStdout(), "\nExported report to %s\n", exportPath)
				}
			}

			if ciMode && report.Summary.Invalid > 0 {
				return fmt.Errorf("%d of %d rows are invalid", report.Summary.Invalid, report.Summary.Total)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&showAll, "all", false, "Show every row, not only invalid ones")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write invalid rows and summary to an .xlsx file")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any row is invalid")

	return cmd
}
