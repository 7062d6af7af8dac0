package poller

import (
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dt-fin-tools/lawhelper/internal/review"
)

// RenderSummary renders a cycle's outcomes as a terminal table.
func RenderSummary(outcomes []review.Outcome) string {
	if len(outcomes) == 0 {
		return color.YellowString("No tickets matched the search filter.")
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Ticket", "Status", "Detail"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Detail", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, o := range outcomes {
		tw.AppendRow(table.Row{o.TicketKey, statusLabel(o.Status), o.Detail()})
	}

	tw.AppendFooter(table.Row{"Total", len(outcomes), ""})
	return tw.Render()
}

func statusLabel(s review.Status) string {
	switch s {
	case review.StatusReviewed:
		return color.GreenString(string(s))
	case review.StatusFailed:
		return color.RedString(string(s))
	case review.StatusSkipped:
		return color.YellowString(string(s))
	default:
		return string(s)
	}
}
