// Package review orchestrates the per-ticket contract review workflow:
// trigger evaluation, attachment extraction, the review call, and the
// comment writeback.
package review

import (
	"errors"
	"fmt"

	"github.com/dt-fin-tools/lawhelper/internal/ark"
	"github.com/dt-fin-tools/lawhelper/internal/jira"
	"github.com/dt-fin-tools/lawhelper/internal/ulid"
)

// Status classifies the outcome of processing one ticket.
type Status string

const (
	// StatusSkipped indicates the ticket did not qualify for a review
	StatusSkipped Status = "skipped"
	// StatusReviewed indicates a review was produced and posted
	StatusReviewed Status = "reviewed"
	// StatusFailed indicates the pipeline stopped at some stage
	StatusFailed Status = "failed"
)

// Stage identifies the pipeline step an outcome refers to.
type Stage string

const (
	// StageTrigger covers comment fetching and trigger evaluation
	StageTrigger Stage = "trigger"
	// StageAttachmentFetch covers attachment selection and download
	StageAttachmentFetch Stage = "attachment-fetch"
	// StageAttachmentProcessing covers document extraction
	StageAttachmentProcessing Stage = "attachment-processing"
	// StageReviewCall covers the review model call
	StageReviewCall Stage = "review-call"
	// StageWriteback covers posting the review comment
	StageWriteback Stage = "writeback"
)

// ReasonNoTrigger is the skip reason for tickets whose latest comment does
// not carry the trigger token.
const ReasonNoTrigger = "no-trigger"

// ErrNoAttachments reports a triggered ticket without any attachment to
// review.
var ErrNoAttachments = errors.New("no-attachments")

// Outcome is the result of processing a single ticket. A failed outcome
// never aborts the surrounding poll cycle; the next ticket is processed
// regardless.
type Outcome struct {
	ID        string // rev- ULID for log correlation
	TicketID  string
	TicketKey string
	Status    Status
	Reason    string // set for skipped outcomes
	Stage     Stage  // set for failed outcomes
	Err       error  // set for failed outcomes
	Result    *ark.ReviewResult
}

// Detail is a short human-readable description for cycle reports.
func (o Outcome) Detail() string {
	switch o.Status {
	case StatusSkipped:
		return o.Reason
	case StatusFailed:
		return fmt.Sprintf("%s: %v", o.Stage, o.Err)
	case StatusReviewed:
		if o.Result != nil {
			return fmt.Sprintf("call %s, %d tokens", o.Result.CallID, o.Result.TotalTokens)
		}
	}
	return ""
}

func skipped(ticket jira.Issue, reason string) Outcome {
	return Outcome{
		ID:        ulid.ReviewID(),
		TicketID:  ticket.ID,
		TicketKey: ticket.Key,
		Status:    StatusSkipped,
		Reason:    reason,
	}
}

func reviewed(ticket jira.Issue, result *ark.ReviewResult) Outcome {
	return Outcome{
		ID:        ulid.ReviewID(),
		TicketID:  ticket.ID,
		TicketKey: ticket.Key,
		Status:    StatusReviewed,
		Result:    result,
	}
}

func failed(ticket jira.Issue, stage Stage, err error) Outcome {
	return Outcome{
		ID:        ulid.ReviewID(),
		TicketID:  ticket.ID,
		TicketKey: ticket.Key,
		Status:    StatusFailed,
		Stage:     stage,
		Err:       err,
	}
}
