package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dt-fin-tools/lawhelper/internal/app"
	"github.com/dt-fin-tools/lawhelper/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
)

func main() {
	cliApp := &cli.App{
		Name:  "lawhelper",
		Usage: "LLM-powered contract review bot for Jira",
		Description: "Lawhelper watches a Jira project for tickets whose latest comment mentions\n" +
			"the trigger keyword, extracts the most recent contract attachment (PDF or Word),\n" +
			"sends it for an AI legal review, and posts the result back as a ticket comment.\n\n" +
			"When run without subcommands, lawhelper starts the polling loop (default action).",
		Version: Version,
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Before: func(c *cli.Context) error {
			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if application, ok := c.App.Metadata["app"].(*app.App); ok {
				return application.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.RunCommand(),
			commands.TicketCommand(),
		},
		Flags: commands.RunCommand().Flags,
		Action: func(c *cli.Context) error {
			// Default action is to start the polling loop
			return commands.RunCommand().Action(c)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
