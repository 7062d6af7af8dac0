// Package poller runs the review workflow on a fixed interval, gated by a
// configured daily time window.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/dt-fin-tools/lawhelper/internal/config"
	"github.com/dt-fin-tools/lawhelper/internal/jira"
	"github.com/dt-fin-tools/lawhelper/internal/loggy"
	"github.com/dt-fin-tools/lawhelper/internal/review"
	"github.com/dt-fin-tools/lawhelper/internal/ulid"
)

// TicketSearcher provides the fresh matching-ticket snapshot for a cycle.
type TicketSearcher interface {
	SearchTickets(ctx context.Context) ([]jira.Issue, error)
}

// TicketProcessor runs the review pipeline for one ticket.
type TicketProcessor interface {
	ProcessTicket(ctx context.Context, ticket jira.Issue) review.Outcome
}

// Service is the polling loop.
type Service struct {
	searcher  TicketSearcher
	processor TicketProcessor
	cfg       config.PollerConfig
	logger    *loggy.Logger

	// now is swapped out in tests to pin the window check
	now func() time.Time
}

// NewService creates a new polling service.
func NewService(searcher TicketSearcher, processor TicketProcessor, cfg config.PollerConfig, logger *loggy.Logger) *Service {
	return &Service{
		searcher:  searcher,
		processor: processor,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// InWindow reports whether t falls within the configured active window.
// Both bounds are inclusive hours of the day.
func (s *Service) InWindow(t time.Time) bool {
	hour := t.Hour()
	return hour >= s.cfg.StartHour && hour <= s.cfg.EndHour
}

// Run polls until ctx is cancelled. The first cycle runs immediately;
// subsequent cycles run every configured interval. Outside the active
// window a tick does nothing. Cancellation is honored between cycles and
// between tickets, never mid-ticket.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("polling started",
		"interval", s.cfg.Interval,
		"window_start_hour", s.cfg.StartHour,
		"window_end_hour", s.cfg.EndHour,
	)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if s.InWindow(s.now()) {
			if _, err := s.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("poll cycle failed", "error", err)
			}
		} else {
			s.logger.Debug("outside active window, skipping tick", "hour", s.now().Hour())
		}

		select {
		case <-ctx.Done():
			s.logger.Info("polling stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunCycle fetches a fresh ticket snapshot and processes every ticket
// sequentially. A failed ticket never prevents the remaining tickets of
// the same cycle from being processed.
func (s *Service) RunCycle(ctx context.Context) ([]review.Outcome, error) {
	cycleID := ulid.CycleID()
	log := s.logger.With("cycle", cycleID)

	tickets, err := s.searcher.SearchTickets(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("cycle started", "tickets", len(tickets))

	outcomes := make([]review.Outcome, 0, len(tickets))
	for _, ticket := range tickets {
		select {
		case <-ctx.Done():
			log.Info("cycle interrupted", "processed", len(outcomes))
			return outcomes, ctx.Err()
		default:
		}

		outcome := s.processor.ProcessTicket(ctx, ticket)
		outcomes = append(outcomes, outcome)

		log.Info("ticket processed",
			"ticket", outcome.TicketKey,
			"outcome_id", outcome.ID,
			"status", outcome.Status,
			"detail", outcome.Detail(),
		)
	}

	log.Info("cycle completed", "tickets", len(outcomes))
	return outcomes, nil
}
