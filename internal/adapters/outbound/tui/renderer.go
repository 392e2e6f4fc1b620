package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/abdidvp/rulecheck/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	ruleCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(faint).
			Padding(0, 1).
			Width(32)

	invalidCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(danger).
				Padding(0, 1).
				Width(66)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

const ruleColumns = 2

// RenderRules renders the rule set as a grid of cards, two per row.
func RenderRules(rules []domain.Rule, status domain.WorkflowStatus) string {
	var b strings.Builder

	subtitle := "Built-in rules"
	if status.Outcome == domain.OutcomeSucceeded && status.Submitted.Name != "" {
		subtitle = "Source: " + status.Submitted.Name
	}
	b.WriteString(boxStyle.Render(headerStyle.Render("Compliance Rules") + "\n" + dimStyle.Render(subtitle)))
	b.WriteString("\n\n")

	if len(rules) == 0 {
		b.WriteString("  " + dimStyle.Render("No rules extracted.") + "\n")
	}

	for start := 0; start < len(rules); start += ruleColumns {
		end := min(start+ruleColumns, len(rules))
		cards := make([]string, 0, ruleColumns)
		for i := start; i < end; i++ {
			cards = append(cards, ruleCardStyle.Render(string(rules[i])))
		}
		b.WriteString(indent(lipgloss.JoinHorizontal(lipgloss.Top, cards...), "  "))
		b.WriteString("\n")
	}

	if status.Outcome == domain.OutcomeFailed {
		b.WriteString("\n")
		b.WriteString(RenderFailure(status))
	}

	return b.String()
}

// RenderValidation renders the invalid-row cards followed by the summary
// counts. When all is set every row gets a card, not only invalid ones.
func RenderValidation(report *domain.ValidationReport, all bool) string {
	var b strings.Builder

	name := report.Filename
	if name == "" {
		name = report.File
	}
	b.WriteString(boxStyle.Render(headerStyle.Render("Validation Results") + "\n" + dimStyle.Render(name)))
	b.WriteString("\n\n")

	rows := domain.InvalidRows(report.Rows)
	if all {
		rows = report.Rows
	}

	if len(rows) == 0 {
		b.WriteString("  " + passStyle.Render("No invalid rows.") + "\n")
	}
	for _, row := range rows {
		b.WriteString(indent(renderRowCard(row), "  "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")
	b.WriteString(renderSummary(report))

	return b.String()
}

func renderRowCard(row domain.ValidationRow) string {
	var b strings.Builder

	id := row.ID.String()
	if !row.ID.Present() {
		id = dimStyle.Render("(no identifier)")
	}
	label := "Row"
	if row.IDField != "" {
		label = FieldLabel(row.IDField)
	}
	fmt.Fprintf(&b, "%s %s  %s", labelStyle.Render(label+":"), id, statusTag(row.Status))

	if row.Message != "" {
		b.WriteString("\n" + dimStyle.Render(row.Message))
	}
	for _, e := range row.Errors {
		b.WriteString("\n" + failStyle.Render("●") + " " + e)
	}

	style := invalidCardStyle
	if row.Status != domain.StatusInvalid {
		style = style.BorderForeground(faint)
	}
	return style.Render(b.String())
}

func renderSummary(report *domain.ValidationReport) string {
	var b strings.Builder
	s := report.Summary

	b.WriteString("  " + titleStyle.Render("Validation Statistics") + "\n\n")
	fmt.Fprintf(&b, "    %s %s\n", padRight("Total rows", 16), titleStyle.Render(fmt.Sprintf("%d", s.Total)))
	fmt.Fprintf(&b, "    %s %s\n", padRight("Valid", 16), passStyle.Render(fmt.Sprintf("%d", s.Valid)))
	fmt.Fprintf(&b, "    %s %s\n", padRight("Invalid", 16), failStyle.Render(fmt.Sprintf("%d", s.Invalid)))
	if !s.AllAccountedFor() {
		fmt.Fprintf(&b, "    %s %s\n", padRight("Unknown", 16), warnStyle.Render(fmt.Sprintf("%d", s.Unknown)))
	}
	if report.RowCount != nil && *report.RowCount != s.Total {
		fmt.Fprintf(&b, "    %s\n", warnStyle.Render(
			fmt.Sprintf("service reported %d rows, %d results received", *report.RowCount, s.Total)))
	}
	return b.String()
}

func statusTag(status domain.RowStatus) string {
	switch status {
	case domain.StatusValid:
		return passStyle.Render("valid")
	case domain.StatusInvalid:
		return errorTagStyle.Render("invalid")
	default:
		return warnStyle.Render("unknown")
	}
}

// RenderFailure renders the last failed submission of a workflow.
func RenderFailure(status domain.WorkflowStatus) string {
	if status.Outcome != domain.OutcomeFailed {
		return ""
	}
	kind := string(status.ErrorKind)
	if kind == "" {
		kind = "error"
	}
	if status.Submitted.Name == "" {
		return fmt.Sprintf("  %s %s\n", errorTagStyle.Render(kind), dimStyle.Render(status.Error))
	}
	return fmt.Sprintf("  %s %s %s\n", errorTagStyle.Render(kind), labelStyle.Render(status.Submitted.Name), dimStyle.Render(status.Error))
}

// FieldLabel turns a raw field name such as "TransactionID" or
// "firstColumn" into a display label.
func FieldLabel(field string) string {
	parts := camelcase.Split(field)
	for i, p := range parts {
		if p == "" {
			continue
		}
		switch {
		case strings.EqualFold(p, "id"):
			parts[i] = "ID"
		case i == 0:
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		var result string
		switch {
		case e.Outcome == domain.OutcomeFailed:
			result = failStyle.Render("failed: " + string(e.ErrorKind))
		case e.Workflow == domain.WorkflowRules:
			result = passStyle.Render(fmt.Sprintf("%d rules", e.RuleCount))
		case e.Summary != nil:
			result = fmt.Sprintf("%s %s",
				passStyle.Render(fmt.Sprintf("%d valid", e.Summary.Valid)),
				failStyle.Render(fmt.Sprintf("%d invalid", e.Summary.Invalid)))
		default:
			result = dimStyle.Render(string(e.Outcome))
		}

		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s\n",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			padRight(e.Workflow, 10),
			padRight(e.File, 24),
			result,
		)
	}

	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
