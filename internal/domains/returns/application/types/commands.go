package types

// CreateReturnInput captures a customer's return submission.
type CreateReturnInput struct {
	CustomerID     string
	OrderNumber    string
	Reason         string
	Method         string
	Notes          string
	Items          []ReturnItemInput
	IdempotencyKey string
}

// ReturnItemInput is a single requested line.
type ReturnItemInput struct {
	OrderItemID int64
	Quantity    int32
	Condition   string
	Notes       string
}

// UpdateStatusInput moves an RMA to a new status.
type UpdateStatusInput struct {
	RMANumber string
	Status    string
}
