package review

import (
	"context"

	"github.com/dt-fin-tools/lawhelper/internal/ark"
	"github.com/dt-fin-tools/lawhelper/internal/document"
	"github.com/dt-fin-tools/lawhelper/internal/jira"
	"github.com/dt-fin-tools/lawhelper/internal/loggy"
	"github.com/dt-fin-tools/lawhelper/internal/trigger"
	"github.com/dt-fin-tools/lawhelper/internal/ulid"
)

// TrackerClient is the issue-tracker capability the orchestrator consumes.
type TrackerClient interface {
	GetComments(ctx context.Context, issueID string) ([]jira.Comment, error)
	GetAttachments(ctx context.Context, issueID string) ([]jira.Attachment, error)
	DownloadAttachment(ctx context.Context, contentURL string) (*jira.AttachmentData, error)
	AddComment(ctx context.Context, issueID string, body *jira.ADFNode) error
}

// ReviewClient is the LLM review capability.
type ReviewClient interface {
	Review(ctx context.Context, prompt string) (*ark.ReviewResult, error)
}

// Service runs the review pipeline for individual tickets.
type Service struct {
	tracker      TrackerClient
	reviewer     ReviewClient
	triggerToken string
	logger       *loggy.Logger
}

// NewService creates a new review service.
func NewService(tracker TrackerClient, reviewer ReviewClient, triggerToken string, logger *loggy.Logger) *Service {
	return &Service{
		tracker:      tracker,
		reviewer:     reviewer,
		triggerToken: triggerToken,
		logger:       logger,
	}
}

// ProcessTicket runs the full pipeline for one ticket and reports the
// outcome as a value. Failures never propagate as errors: the caller's
// loop over tickets continues regardless of what happened here.
//
// The ticket is processed from scratch on every call. Nothing marks a
// ticket as done, so a ticket whose latest comment still carries the
// trigger token is reviewed again on the next cycle (at-least-once
// semantics, accepted by design).
func (s *Service) ProcessTicket(ctx context.Context, ticket jira.Issue) Outcome {
	log := s.logger.With("run", ulid.TicketID(), "ticket", ticket.Key, "ticket_id", ticket.ID)

	comments, err := s.tracker.GetComments(ctx, ticket.ID)
	if err != nil {
		log.Error("fetching comments failed", "error", err)
		return failed(ticket, StageTrigger, err)
	}

	if !trigger.ShouldTrigger(comments, s.triggerToken) {
		log.Debug("trigger not present, skipping")
		return skipped(ticket, ReasonNoTrigger)
	}
	log.Info("review triggered", "comments", len(comments))

	// Always the attachment list of the ticket under processing, and
	// always its last element: Jira returns attachments in upload order,
	// so the last one is the most recently uploaded.
	attachments, err := s.tracker.GetAttachments(ctx, ticket.ID)
	if err != nil {
		log.Error("fetching attachments failed", "error", err)
		return failed(ticket, StageAttachmentFetch, err)
	}
	if len(attachments) == 0 {
		log.Warn("ticket triggered but has no attachments")
		return failed(ticket, StageAttachmentFetch, ErrNoAttachments)
	}
	latest := attachments[len(attachments)-1]

	data, err := s.tracker.DownloadAttachment(ctx, latest.Content)
	if err != nil {
		log.Error("downloading attachment failed", "attachment_id", latest.ID, "error", err)
		return failed(ticket, StageAttachmentFetch, err)
	}

	doc, err := document.Extract(document.Raw{Bytes: data.Bytes, MediaType: data.MediaType})
	if err != nil {
		log.Error("extracting attachment failed",
			"attachment_id", latest.ID,
			"filename", latest.Filename,
			"media_type", data.MediaType,
			"error", err,
		)
		return failed(ticket, StageAttachmentProcessing, err)
	}
	log.Debug("attachment extracted", "filename", latest.Filename, "format", doc.SourceFormat())

	prompt, err := BuildReviewPrompt(doc.PromptText())
	if err != nil {
		return failed(ticket, StageReviewCall, err)
	}

	result, err := s.reviewer.Review(ctx, prompt)
	if err != nil {
		log.Error("review call failed", "error", err)
		return failed(ticket, StageReviewCall, err)
	}
	log.Info("review produced",
		"model", result.Model,
		"call_id", result.CallID,
		"total_tokens", result.TotalTokens,
	)

	comment, err := FormatComment(result)
	if err != nil {
		return failed(ticket, StageWriteback, err)
	}

	// Not retried within this cycle; with no completion marker persisted,
	// the next cycle reprocesses the ticket from the top.
	if err := s.tracker.AddComment(ctx, ticket.ID, jira.TextDocument(comment)); err != nil {
		log.Error("posting review comment failed", "error", err)
		return failed(ticket, StageWriteback, err)
	}

	return reviewed(ticket, result)
}
