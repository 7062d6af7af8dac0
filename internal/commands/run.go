// Package commands defines the CLI commands exposed by the lawhelper binary.
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dt-fin-tools/lawhelper/internal/app"
	"github.com/dt-fin-tools/lawhelper/internal/loggy"
	"github.com/dt-fin-tools/lawhelper/internal/poller"
)

// RunCommand returns the CLI command for the polling loop. It is also the
// application's default action.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Poll Jira and review triggered tickets",
		Description: "Polls the configured Jira project on a fixed interval, and for every " +
			"ticket whose latest comment mentions the trigger keyword, reviews the most " +
			"recent attachment and posts the result back as a comment.\n\n" +
			"No processing history is kept: a ticket whose latest comment still carries " +
			"the trigger keyword is reviewed again on the next cycle. Remove the mention " +
			"or add a newer comment to stop re-processing.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Run a single poll cycle, print a summary, and exit",
			},
			&cli.BoolFlag{
				Name:  "ignore-window",
				Usage: "Poll outside the configured active hours as well",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	me, err := application.Jira.CurrentUser(c.Context)
	if err != nil {
		return fmt.Errorf("jira connection check failed: %w", err)
	}
	loggy.Info("Jira connection verified", "account", me.DisplayName)

	svc := application.Poller
	if c.Bool("ignore-window") {
		cfg := application.Config.Poller
		cfg.StartHour = 0
		cfg.EndHour = 23
		svc = poller.NewService(application.Jira, application.Review, cfg, loggy.GetGlobalLogger())
	}

	if c.Bool("once") {
		outcomes, err := svc.RunCycle(c.Context)
		if err != nil {
			return err
		}
		fmt.Println(poller.RenderSummary(outcomes))
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return svc.Run(ctx)
}
