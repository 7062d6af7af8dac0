package poller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dt-fin-tools/lawhelper/internal/ark"
	"github.com/dt-fin-tools/lawhelper/internal/review"
)

func TestRenderSummary(t *testing.T) {
	outcomes := []review.Outcome{
		{
			TicketKey: "FIN-1",
			Status:    review.StatusReviewed,
			Result:    &ark.ReviewResult{CallID: "resp-1", TotalTokens: 2048},
		},
		{
			TicketKey: "FIN-2",
			Status:    review.StatusSkipped,
			Reason:    review.ReasonNoTrigger,
		},
		{
			TicketKey: "FIN-3",
			Status:    review.StatusFailed,
			Stage:     review.StageAttachmentProcessing,
			Err:       errors.New("unsupported attachment format"),
		},
	}

	out := RenderSummary(outcomes)

	assert.Contains(t, out, "FIN-1")
	assert.Contains(t, out, "resp-1")
	assert.Contains(t, out, "no-trigger")
	assert.Contains(t, out, "attachment-processing")
	assert.Contains(t, out, "unsupported attachment format")
}

func TestRenderSummaryEmpty(t *testing.T) {
	out := RenderSummary(nil)
	assert.Contains(t, out, "No tickets matched")
}
