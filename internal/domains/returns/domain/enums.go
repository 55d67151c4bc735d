package domain

// Reason is why the customer sends the goods back.
type Reason string

const (
	ReasonDefective      Reason = "DEFECTIVE"
	ReasonDamaged        Reason = "DAMAGED"
	ReasonWrongItem      Reason = "WRONG_ITEM"
	ReasonNotAsDescribed Reason = "NOT_AS_DESCRIBED"
	ReasonChangedMind    Reason = "CHANGED_MIND"
	ReasonTooSmall       Reason = "TOO_SMALL"
	ReasonTooLarge       Reason = "TOO_LARGE"
	ReasonArrivedLate    Reason = "ARRIVED_LATE"
	ReasonDuplicateOrder Reason = "DUPLICATE_ORDER"
	ReasonOther          Reason = "OTHER"
)

// Reasons lists every reason in display order.
var Reasons = []Reason{
	ReasonDefective, ReasonDamaged, ReasonWrongItem, ReasonNotAsDescribed, ReasonChangedMind,
	ReasonTooSmall, ReasonTooLarge, ReasonArrivedLate, ReasonDuplicateOrder, ReasonOther,
}

func (r Reason) Valid() bool {
	return r.Label() != ""
}

// Label is the customer-facing name, empty for unknown values.
func (r Reason) Label() string {
	switch r {
	case ReasonDefective:
		return "Defective"
	case ReasonDamaged:
		return "Damaged"
	case ReasonWrongItem:
		return "Wrong Item"
	case ReasonNotAsDescribed:
		return "Not as Described"
	case ReasonChangedMind:
		return "Changed Mind"
	case ReasonTooSmall:
		return "Too Small"
	case ReasonTooLarge:
		return "Too Large"
	case ReasonArrivedLate:
		return "Arrived Late"
	case ReasonDuplicateOrder:
		return "Duplicate Order"
	case ReasonOther:
		return "Other"
	default:
		return ""
	}
}

// Method is how the goods travel back.
type Method string

const (
	MethodDropOffStore    Method = "DROP_OFF_STORE"
	MethodShipToWarehouse Method = "SHIP_TO_WAREHOUSE"
)

// Methods lists every method in display order.
var Methods = []Method{MethodDropOffStore, MethodShipToWarehouse}

func (m Method) Valid() bool {
	return m.Label() != ""
}

func (m Method) Label() string {
	switch m {
	case MethodDropOffStore:
		return "Drop off at Store"
	case MethodShipToWarehouse:
		return "Ship to Warehouse"
	default:
		return ""
	}
}

// Status tracks a return through processing.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusApproved         Status = "APPROVED"
	StatusShipped          Status = "SHIPPED"
	StatusReceived         Status = "RECEIVED"
	StatusInspected        Status = "INSPECTED"
	StatusProcessingRefund Status = "PROCESSING_REFUND"
	StatusCompleted        Status = "COMPLETED"
	StatusRejected         Status = "REJECTED"
	StatusCancelled        Status = "CANCELLED"
)

// Progression is the linear path a successful return follows.
var Progression = []Status{
	StatusPending, StatusApproved, StatusShipped, StatusReceived,
	StatusInspected, StatusProcessingRefund, StatusCompleted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusShipped, StatusReceived, StatusInspected,
		StatusProcessingRefund, StatusCompleted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Position is the index of s in Progression, or -1 for off-path statuses.
func (s Status) Position() int {
	for i, step := range Progression {
		if step == s {
			return i
		}
	}
	return -1
}

// ItemStatus tracks a single returned line.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "PENDING"
	ItemStatusReceived  ItemStatus = "RECEIVED"
	ItemStatusInspected ItemStatus = "INSPECTED"
	ItemStatusRefunded  ItemStatus = "REFUNDED"
	ItemStatusRejected  ItemStatus = "REJECTED"
)

// itemStatusFor derives the line status implied by a request status.
// ok is false when the lines keep their current status.
func itemStatusFor(s Status) (ItemStatus, bool) {
	switch s {
	case StatusReceived:
		return ItemStatusReceived, true
	case StatusInspected:
		return ItemStatusInspected, true
	case StatusCompleted:
		return ItemStatusRefunded, true
	case StatusRejected:
		return ItemStatusRejected, true
	default:
		return "", false
	}
}
