package portal

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// Step is a wizard state.
type Step int

const (
	StepSelectItems Step = iota
	StepReasonAndMethod
	StepReviewAndSubmit
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepSelectItems:
		return "Select Items"
	case StepReasonAndMethod:
		return "Choose Reason & Method"
	case StepReviewAndSubmit:
		return "Review & Submit"
	case StepSuccess:
		return "Success"
	default:
		return "Step(" + strconv.Itoa(int(s)) + ")"
	}
}

// Messages shown to the shopper.
const (
	MsgSelectItems     = "Please select at least one item to return"
	MsgReasonAndMethod = "Please select both reason and return method"
	MsgSubmitFailed    = "Failed to create return request. Please try again."
)

var (
	ErrNothingSelected      = errors.New("no items selected")
	ErrReasonMethodRequired = errors.New("reason and method are required")
	ErrSubmitFailed         = errors.New("return submission failed")
	ErrWrongStep            = errors.New("action not available at this step")
	ErrNotEligible          = errors.New("item is not eligible for self-service return")
	ErrNotSelected          = errors.New("item is not selected")
)

// Wizard is the three-step return creation form for one order.
type Wizard struct {
	collaborator Collaborator
	session      rma.Session
	order        rma.Order
	guard        *inflight
	logger       *slog.Logger

	mu         sync.RWMutex
	step       Step
	selected   map[int64]struct{}
	quantities map[int64]int32
	reason     returndomain.Reason
	method     returndomain.Method
	notes      string
	message    string
	response   *rma.ReturnResponse
	submitting bool
}

// NewWizard starts an empty wizard for order on behalf of session.
func NewWizard(c Collaborator, session *rma.Session, order rma.Order, opts ...Option) (*Wizard, error) {
	if session == nil || strings.TrimSpace(session.CustomerID) == "" {
		return nil, ErrNoSession
	}
	o := newOptions(opts)
	return &Wizard{
		collaborator: c,
		session:      *session,
		order:        order,
		guard:        newInflight(),
		logger:       o.logger,
		selected:     map[int64]struct{}{},
		quantities:   map[int64]int32{},
	}, nil
}

// EligibleItems returns the order lines offered for selection. It is derived
// from the order on every call.
func (w *Wizard) EligibleItems() []rma.OrderItem {
	items := make([]rma.OrderItem, 0, len(w.order.Items))
	for _, item := range w.order.Items {
		if item.Eligible() {
			items = append(items, item)
		}
	}
	return items
}

func (w *Wizard) eligibleItem(id int64) (rma.OrderItem, bool) {
	for _, item := range w.EligibleItems() {
		if item.ID == id {
			return item, true
		}
	}
	return rma.OrderItem{}, false
}

// Select adds an item and seeds its quantity to the full ordered quantity.
func (w *Wizard) Select(itemID int64) error {
	item, ok := w.eligibleItem(itemID)
	if !ok {
		return ErrNotEligible
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepSelectItems {
		return ErrWrongStep
	}
	w.selected[itemID] = struct{}{}
	w.quantities[itemID] = item.Quantity
	return nil
}

// Deselect removes an item and its quantity.
func (w *Wizard) Deselect(itemID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepSelectItems {
		return ErrWrongStep
	}
	delete(w.selected, itemID)
	delete(w.quantities, itemID)
	return nil
}

// Toggle flips the selection of an item.
func (w *Wizard) Toggle(itemID int64) error {
	if w.IsSelected(itemID) {
		return w.Deselect(itemID)
	}
	return w.Select(itemID)
}

// IsSelected reports whether itemID is in the selection.
func (w *Wizard) IsSelected(itemID int64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.selected[itemID]
	return ok
}

// Quantity returns the return quantity of a selected item.
func (w *Wizard) Quantity(itemID int64) (int32, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	qty, ok := w.quantities[itemID]
	return qty, ok
}

// SetQuantityInput applies raw text from the quantity field. Non-numeric
// input counts as 1 and the result is clamped to [1, ordered quantity].
func (w *Wizard) SetQuantityInput(itemID int64, raw string) (int32, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		qty = 1
	}
	return w.SetQuantity(itemID, qty)
}

// SetQuantity clamps qty to [1, ordered quantity] and stores it.
func (w *Wizard) SetQuantity(itemID int64, qty int) (int32, error) {
	item, ok := w.eligibleItem(itemID)
	if !ok {
		return 0, ErrNotEligible
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepSelectItems {
		return 0, ErrWrongStep
	}
	if _, selected := w.selected[itemID]; !selected {
		return 0, ErrNotSelected
	}
	clamped := int32(1)
	switch {
	case qty < 1:
	case qty > int(item.Quantity):
		clamped = item.Quantity
	default:
		clamped = int32(qty)
	}
	w.quantities[itemID] = clamped
	return clamped, nil
}

// SetReason records the return reason. An empty reason clears it.
func (w *Wizard) SetReason(reason returndomain.Reason) error {
	if reason != "" && !reason.Valid() {
		return returndomain.ErrInvalidReason
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepReasonAndMethod {
		return ErrWrongStep
	}
	w.reason = reason
	return nil
}

// SetMethod records the return method. An empty method clears it.
func (w *Wizard) SetMethod(method returndomain.Method) error {
	if method != "" && !method.Valid() {
		return returndomain.ErrInvalidMethod
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepReasonAndMethod {
		return ErrWrongStep
	}
	w.method = method
	return nil
}

// SetNotes records optional free text for the whole return.
func (w *Wizard) SetNotes(notes string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepReasonAndMethod {
		return ErrWrongStep
	}
	w.notes = notes
	return nil
}

// Next validates the current step and advances.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepSelectItems:
		if len(w.selected) == 0 {
			w.message = MsgSelectItems
			return ErrNothingSelected
		}
	case StepReasonAndMethod:
		if w.reason == "" || w.method == "" {
			w.message = MsgReasonAndMethod
			return ErrReasonMethodRequired
		}
	case StepReviewAndSubmit, StepSuccess:
		return ErrWrongStep
	}
	w.message = ""
	w.step++
	return nil
}

// Back returns to the previous step. It is unavailable at the first step,
// after success, and while a submission is outstanding.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return ErrBusy
	}
	switch w.step {
	case StepReasonAndMethod, StepReviewAndSubmit:
		w.step--
		return nil
	case StepSelectItems, StepSuccess:
		return ErrWrongStep
	}
	return ErrWrongStep
}

// Request composes the submission from the current selection, in order line order.
func (w *Wizard) Request() rma.ReturnRequest {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.requestLocked()
}

func (w *Wizard) requestLocked() rma.ReturnRequest {
	request := rma.ReturnRequest{
		OrderNumber: w.order.OrderNumber,
		Reason:      w.reason,
		Method:      w.method,
		Notes:       strings.TrimSpace(w.notes),
		ReturnItems: make([]rma.ReturnItemRequest, 0, len(w.selected)),
	}
	for _, item := range w.order.Items {
		if _, ok := w.selected[item.ID]; !ok {
			continue
		}
		request.ReturnItems = append(request.ReturnItems, rma.ReturnItemRequest{
			OrderItemID:      item.ID,
			QuantityToReturn: w.quantities[item.ID],
			Condition:        returndomain.DefaultCondition,
		})
	}
	return request
}

// Submit sends the request once. A failure keeps the wizard on the review
// step with a generic message; the cause is only logged.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.step != StepReviewAndSubmit {
		w.mu.Unlock()
		return ErrWrongStep
	}
	if w.submitting {
		w.mu.Unlock()
		return ErrBusy
	}
	w.submitting = true
	w.message = ""
	request := w.requestLocked()
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	ctx, done, err := w.guard.begin(ctx)
	if err != nil {
		return err
	}
	defer done()

	response, err := w.collaborator.CreateReturn(ctx, w.session, request)
	if err != nil {
		w.logger.WarnContext(ctx, "return submission failed",
			slog.String("orderNumber", request.OrderNumber), slog.String("error", err.Error()))
		if commitErr := w.guard.commit(func() {
			w.mu.Lock()
			w.message = MsgSubmitFailed
			w.mu.Unlock()
		}); commitErr != nil {
			return commitErr
		}
		return ErrSubmitFailed
	}
	return w.guard.commit(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.response = response
		w.step = StepSuccess
		w.selected = map[int64]struct{}{}
		w.quantities = map[int64]int32{}
	})
}

// Step returns the current state.
func (w *Wizard) Step() Step {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.step
}

// Message returns the inline error shown to the shopper, if any.
func (w *Wizard) Message() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.message
}

// Submitting reports whether the submit control is disabled.
func (w *Wizard) Submitting() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.submitting
}

// Response returns the issued RMA once the wizard reached StepSuccess.
func (w *Wizard) Response() *rma.ReturnResponse {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.response
}

// Artifacts lists what the success screen renders.
func (w *Wizard) Artifacts() []Artifact {
	response := w.Response()
	if response == nil {
		return nil
	}
	return Artifacts(*response)
}

// Close abandons the wizard and cancels an outstanding submission.
func (w *Wizard) Close() {
	w.guard.Close()
}
