package portal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

var testSession = &rma.Session{CustomerID: "CUST001", Token: "tok"}

func newTestWizard(t *testing.T, c *fakeCollaborator) *Wizard {
	t.Helper()
	order := c.orders["ORD-2024-001"]
	w, err := NewWizard(c, testSession, order)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return w
}

func advanceToReview(t *testing.T, w *Wizard, method returndomain.Method) {
	t.Helper()
	require.NoError(t, w.Select(1))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetReason(returndomain.ReasonDefective))
	require.NoError(t, w.SetMethod(method))
	require.NoError(t, w.Next())
	require.Equal(t, StepReviewAndSubmit, w.Step())
}

func TestNewWizard_RequiresSession(t *testing.T) {
	_, err := NewWizard(newFakeCollaborator(), nil, rma.Order{})
	require.ErrorIs(t, err, ErrNoSession)
}

func TestEligibleItems_ExcludesLargeAndHazardous(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())

	var ids []int64
	for _, item := range w.EligibleItems() {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []int64{1, 2}, ids)
	assert.ErrorIs(t, w.Select(3), ErrNotEligible)
	assert.ErrorIs(t, w.Select(4), ErrNotEligible)
	assert.False(t, w.IsSelected(3))
}

func TestSelect_SeedsFullQuantityAndDeselectDropsIt(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())

	require.NoError(t, w.Select(2))
	qty, ok := w.Quantity(2)
	require.True(t, ok)
	assert.EqualValues(t, 3, qty)

	require.NoError(t, w.Toggle(2))
	assert.False(t, w.IsSelected(2))
	_, ok = w.Quantity(2)
	assert.False(t, ok)

	require.NoError(t, w.Toggle(2))
	assert.True(t, w.IsSelected(2))
}

func TestSetQuantityInput_Clamps(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())
	require.NoError(t, w.Select(2))

	cases := map[string]int32{
		"2":   2,
		" 1 ": 1,
		"abc": 1,
		"":    1,
		"0":   1,
		"-4":  1,
		"99":  3,
		"3":   3,
		"1.5": 1,
	}
	for raw, want := range cases {
		got, err := w.SetQuantityInput(2, raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := w.SetQuantityInput(1, "1")
	assert.ErrorIs(t, err, ErrNotSelected)
}

func TestNext_RequiresSelection(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())

	require.ErrorIs(t, w.Next(), ErrNothingSelected)
	assert.Equal(t, StepSelectItems, w.Step())
	assert.Equal(t, MsgSelectItems, w.Message())

	require.NoError(t, w.Select(1))
	require.NoError(t, w.Next())
	assert.Equal(t, StepReasonAndMethod, w.Step())
	assert.Empty(t, w.Message())
}

func TestNext_RequiresReasonAndMethod(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())
	require.NoError(t, w.Select(1))
	require.NoError(t, w.Next())

	require.ErrorIs(t, w.Next(), ErrReasonMethodRequired)
	require.NoError(t, w.SetReason(returndomain.ReasonDamaged))
	require.ErrorIs(t, w.Next(), ErrReasonMethodRequired)
	assert.Equal(t, StepReasonAndMethod, w.Step())
	assert.Equal(t, MsgReasonAndMethod, w.Message())

	assert.ErrorIs(t, w.SetMethod("BY_PIGEON"), returndomain.ErrInvalidMethod)
	assert.ErrorIs(t, w.SetReason("BORED"), returndomain.ErrInvalidReason)
	require.NoError(t, w.SetMethod(returndomain.MethodShipToWarehouse))
	require.NoError(t, w.Next())
	assert.Equal(t, StepReviewAndSubmit, w.Step())
}

func TestBack(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())
	require.ErrorIs(t, w.Back(), ErrWrongStep)

	advanceToReview(t, w, returndomain.MethodDropOffStore)
	require.NoError(t, w.Back())
	assert.Equal(t, StepReasonAndMethod, w.Step())
	require.NoError(t, w.Back())
	assert.Equal(t, StepSelectItems, w.Step())
	assert.True(t, w.IsSelected(1))
}

func TestMutatorsOnlyAtTheirStep(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())
	assert.ErrorIs(t, w.SetReason(returndomain.ReasonDefective), ErrWrongStep)
	assert.ErrorIs(t, w.Submit(context.Background()), ErrWrongStep)

	require.NoError(t, w.Select(1))
	require.NoError(t, w.Next())
	assert.ErrorIs(t, w.Select(2), ErrWrongStep)
	assert.ErrorIs(t, w.Deselect(1), ErrWrongStep)
}

func TestRequest_FollowsOrderLines(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())
	require.NoError(t, w.Select(2))
	require.NoError(t, w.Select(1))
	_, err := w.SetQuantityInput(2, "2")
	require.NoError(t, err)
	require.NoError(t, w.Next())
	require.NoError(t, w.SetReason(returndomain.ReasonWrongItem))
	require.NoError(t, w.SetMethod(returndomain.MethodDropOffStore))
	require.NoError(t, w.SetNotes("  box opened  "))

	request := w.Request()
	assert.Equal(t, "ORD-2024-001", request.OrderNumber)
	assert.Equal(t, "box opened", request.Notes)
	assert.Equal(t, []rma.ReturnItemRequest{
		{OrderItemID: 1, QuantityToReturn: 1, Condition: returndomain.DefaultCondition},
		{OrderItemID: 2, QuantityToReturn: 2, Condition: returndomain.DefaultCondition},
	}, request.ReturnItems)
}

func TestSubmit_DropOffShowsQRCodeOnly(t *testing.T) {
	c := newFakeCollaborator()
	w := newTestWizard(t, c)
	advanceToReview(t, w, returndomain.MethodDropOffStore)

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StepSuccess, w.Step())
	assert.Equal(t, "CUST001", c.lastAuthed)
	require.NotNil(t, w.Response())
	assert.Regexp(t, `^RMA-[A-Z0-9]{8}$`, w.Response().RMANumber)
	assert.False(t, w.IsSelected(1))

	artifacts := w.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, ArtifactQRCode, artifacts[0].Kind)
}

func TestSubmit_WarehouseShowsLabelOnly(t *testing.T) {
	w := newTestWizard(t, newFakeCollaborator())
	advanceToReview(t, w, returndomain.MethodShipToWarehouse)

	require.NoError(t, w.Submit(context.Background()))
	artifacts := w.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, ArtifactShippingLabel, artifacts[0].Kind)
	assert.Equal(t, "1Z999AA10123456784", artifacts[0].TrackingNumber)
}

func TestSubmit_FailureStaysOnReview(t *testing.T) {
	c := newFakeCollaborator()
	c.createErr = errBackend
	w := newTestWizard(t, c)
	advanceToReview(t, w, returndomain.MethodDropOffStore)

	err := w.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.NotErrorIs(t, err, errBackend)
	assert.Equal(t, StepReviewAndSubmit, w.Step())
	assert.Equal(t, MsgSubmitFailed, w.Message())
	assert.Nil(t, w.Response())
	assert.True(t, w.IsSelected(1))

	c.createErr = nil
	require.NoError(t, w.Submit(context.Background()))
	assert.Empty(t, w.Message())
	assert.Equal(t, 2, c.submissions())
}

func TestSubmit_OneInFlight(t *testing.T) {
	c := newFakeCollaborator()
	c.block = make(chan struct{})
	w := newTestWizard(t, c)
	advanceToReview(t, w, returndomain.MethodDropOffStore)

	result := make(chan error, 1)
	go func() { result <- w.Submit(context.Background()) }()
	require.Eventually(t, w.Submitting, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, w.Submit(context.Background()), ErrBusy)
	assert.ErrorIs(t, w.Back(), ErrBusy)

	close(c.block)
	require.NoError(t, <-result)
	assert.Equal(t, 1, c.submissions())
	assert.False(t, w.Submitting())
}

func TestSubmit_BackCannotSlipIntoSubmission(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := newFakeCollaborator()
		w := newTestWizard(t, c)
		advanceToReview(t, w, returndomain.MethodDropOffStore)

		start := make(chan struct{})
		submitted := make(chan error, 1)
		wentBack := make(chan error, 1)
		go func() { <-start; submitted <- w.Submit(context.Background()) }()
		go func() { <-start; wentBack <- w.Back() }()
		close(start)

		submitErr, backErr := <-submitted, <-wentBack
		if backErr == nil {
			require.ErrorIs(t, submitErr, ErrWrongStep)
			assert.Equal(t, StepReasonAndMethod, w.Step())
			assert.Zero(t, c.submissions())
			continue
		}
		require.NoError(t, submitErr)
		assert.Equal(t, StepSuccess, w.Step())
	}
}

func TestClose_CancelsSubmissionAndDropsResult(t *testing.T) {
	c := newFakeCollaborator()
	c.block = make(chan struct{})
	w := newTestWizard(t, c)
	advanceToReview(t, w, returndomain.MethodDropOffStore)

	result := make(chan error, 1)
	go func() { result <- w.Submit(context.Background()) }()
	require.Eventually(t, w.Submitting, time.Second, 5*time.Millisecond)

	w.Close()
	require.ErrorIs(t, <-result, ErrClosed)
	assert.Equal(t, StepReviewAndSubmit, w.Step())
	assert.Empty(t, w.Message())
}

func TestArtifacts_FollowMethodNotFields(t *testing.T) {
	both := rma.ReturnResponse{
		Method:           returndomain.MethodDropOffStore,
		QRCodeData:       "data:image/png;base64,AAAA",
		ShippingLabelURL: "https://labels.example.com/x",
	}
	artifacts := Artifacts(both)
	require.Len(t, artifacts, 1)
	assert.Equal(t, ArtifactQRCode, artifacts[0].Kind)

	both.Method = returndomain.MethodShipToWarehouse
	artifacts = Artifacts(both)
	require.Len(t, artifacts, 1)
	assert.Equal(t, ArtifactShippingLabel, artifacts[0].Kind)

	assert.Empty(t, Artifacts(rma.ReturnResponse{Method: returndomain.MethodShipToWarehouse, QRCodeData: "x"}))
	assert.Empty(t, Artifacts(rma.ReturnResponse{Method: "TELEPORT", QRCodeData: "x"}))
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "Review & Submit", StepReviewAndSubmit.String())
	assert.Equal(t, "Step(9)", Step(9).String())
}
