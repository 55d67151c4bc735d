package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

func completed(steps []TimelineStep) map[returndomain.Status]bool {
	out := make(map[returndomain.Status]bool, len(steps))
	for _, step := range steps {
		out[step.Status] = step.Completed
	}
	return out
}

func TestTimeline_Approved(t *testing.T) {
	steps := Timeline(returndomain.StatusApproved)
	require.Len(t, steps, len(returndomain.Progression))
	assert.Equal(t, "Return Request Submitted", steps[0].Label)

	done := completed(steps)
	assert.True(t, done[returndomain.StatusPending])
	assert.True(t, done[returndomain.StatusApproved])
	for _, status := range returndomain.Progression[2:] {
		assert.False(t, done[status], status)
	}
}

func TestTimeline_PendingStillShowsApproved(t *testing.T) {
	done := completed(Timeline(returndomain.StatusPending))
	assert.True(t, done[returndomain.StatusApproved])
	assert.False(t, done[returndomain.StatusShipped])
}

func TestTimeline_Completed(t *testing.T) {
	for _, step := range Timeline(returndomain.StatusCompleted) {
		assert.True(t, step.Completed, step.Status)
	}
}

func TestTimeline_Monotonic(t *testing.T) {
	for i, lower := range returndomain.Progression {
		for _, higher := range returndomain.Progression[i:] {
			atLower := completed(Timeline(lower))
			atHigher := completed(Timeline(higher))
			for status, done := range atLower {
				if done {
					assert.True(t, atHigher[status], "%s completed at %s but not at %s", status, lower, higher)
				}
			}
		}
	}
}

func TestTimeline_OffPathStatuses(t *testing.T) {
	for _, status := range []returndomain.Status{returndomain.StatusRejected, returndomain.StatusCancelled} {
		steps := Timeline(status)
		require.Len(t, steps, len(returndomain.Progression)+1)

		last := steps[len(steps)-1]
		assert.Equal(t, status, last.Status)
		assert.True(t, last.Completed)
		assert.Equal(t, StepLabel(status), last.Label)

		done := completed(steps[:len(steps)-1])
		assert.True(t, done[returndomain.StatusPending])
		assert.False(t, done[returndomain.StatusApproved])
		assert.False(t, done[returndomain.StatusCompleted])
	}
	assert.Equal(t, "Return Rejected", StepLabel(returndomain.StatusRejected))
}

func TestTimeline_UnknownStatusCompletesNothing(t *testing.T) {
	for _, step := range Timeline("LOST_IN_TRANSIT") {
		assert.False(t, step.Completed)
	}
}
