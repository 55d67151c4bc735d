package portal

import (
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// TimelineStep is one row of the return tracker.
type TimelineStep struct {
	Status    returndomain.Status
	Label     string
	Completed bool
}

// StepLabel names a status on the tracker.
func StepLabel(status returndomain.Status) string {
	switch status {
	case returndomain.StatusPending:
		return "Return Request Submitted"
	case returndomain.StatusApproved:
		return "Return Approved"
	case returndomain.StatusShipped:
		return "Item Shipped"
	case returndomain.StatusReceived:
		return "Item Received"
	case returndomain.StatusInspected:
		return "Item Inspected"
	case returndomain.StatusProcessingRefund:
		return "Processing Refund"
	case returndomain.StatusCompleted:
		return "Return Completed"
	case returndomain.StatusRejected:
		return "Return Rejected"
	case returndomain.StatusCancelled:
		return "Return Cancelled"
	}
	return string(status)
}

// Timeline lays out the progression for status. On the linear path a step is
// completed when status has reached it; the first two steps are always
// completed. A rejected or cancelled return only keeps the submission step
// and ends with its own completed terminal step. Unknown statuses complete nothing.
func Timeline(status returndomain.Status) []TimelineStep {
	steps := make([]TimelineStep, 0, len(returndomain.Progression)+1)
	position := status.Position()
	offPath := status == returndomain.StatusRejected || status == returndomain.StatusCancelled
	for i, step := range returndomain.Progression {
		var completed bool
		switch {
		case offPath:
			completed = step == returndomain.StatusPending
		case position < 0:
			completed = false
		default:
			// A PENDING return also shows "Return Approved" as completed even though
			// nobody approved it yet. The server approves on creation, so only
			// returns stored before that rule can be PENDING.
			completed = position >= i || step == returndomain.StatusPending || step == returndomain.StatusApproved
		}
		steps = append(steps, TimelineStep{Status: step, Label: StepLabel(step), Completed: completed})
	}
	if offPath {
		steps = append(steps, TimelineStep{Status: status, Label: StepLabel(status), Completed: true})
	}
	return steps
}
