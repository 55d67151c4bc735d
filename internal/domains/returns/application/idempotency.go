package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
)

type normalizedCreateReturnInput struct {
	CustomerID  string                `json:"customerId"`
	OrderNumber string                `json:"orderNumber"`
	Reason      string                `json:"reason"`
	Method      string                `json:"method"`
	Notes       string                `json:"notes"`
	Items       []normalizedItemInput `json:"items"`
}

type normalizedItemInput struct {
	OrderItemID int64  `json:"orderItemId"`
	Quantity    int32  `json:"quantity"`
	Condition   string `json:"condition"`
	Notes       string `json:"notes"`
}

// FingerprintCreateReturn builds a deterministic hash of the submission (excluding the idempotency key).
// Line order does not change the fingerprint.
func FingerprintCreateReturn(input returntypes.CreateReturnInput) (string, error) {
	payload, err := json.Marshal(normalizeCreateReturnInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeCreateReturnInput(input returntypes.CreateReturnInput) normalizedCreateReturnInput {
	items := make([]normalizedItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, normalizedItemInput{
			OrderItemID: item.OrderItemID,
			Quantity:    item.Quantity,
			Condition:   strings.TrimSpace(item.Condition),
			Notes:       strings.TrimSpace(item.Notes),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].OrderItemID < items[j].OrderItemID })
	return normalizedCreateReturnInput{
		CustomerID:  strings.TrimSpace(input.CustomerID),
		OrderNumber: strings.TrimSpace(input.OrderNumber),
		Reason:      strings.TrimSpace(input.Reason),
		Method:      strings.TrimSpace(input.Method),
		Notes:       strings.TrimSpace(input.Notes),
		Items:       items,
	}
}
