package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dt-fin-tools/lawhelper/internal/app"
	"github.com/dt-fin-tools/lawhelper/internal/poller"
	"github.com/dt-fin-tools/lawhelper/internal/review"
)

// TicketCommand returns the CLI command for reviewing a single ticket.
func TicketCommand() *cli.Command {
	return &cli.Command{
		Name:      "ticket",
		Usage:     "Run the review pipeline for a single ticket",
		ArgsUsage: "<ticket-key>",
		Description: "Fetches one ticket by key and runs the same pipeline the poller " +
			"applies: trigger check, attachment extraction, review, and comment writeback.",
		Action: ticketAction,
	}
}

func ticketAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("ticket key is required (usage: lawhelper ticket <ticket-key>)")
	}

	ticket, err := application.Jira.GetIssue(c.Context, key)
	if err != nil {
		return err
	}

	outcome := application.Review.ProcessTicket(c.Context, *ticket)
	fmt.Println(poller.RenderSummary([]review.Outcome{outcome}))

	if outcome.Status == review.StatusFailed {
		return fmt.Errorf("processing %s failed at stage %s: %w", outcome.TicketKey, outcome.Stage, outcome.Err)
	}
	return nil
}
