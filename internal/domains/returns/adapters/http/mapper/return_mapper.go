package mapper

import (
	"time"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// CreateReturnRequest is the body of POST /api/returns.
type CreateReturnRequest struct {
	OrderNumber string              `json:"orderNumber" binding:"required,max=64"`
	Reason      string              `json:"reason" binding:"required,returnreason"`
	Method      string              `json:"method" binding:"required,returnmethod"`
	Notes       string              `json:"notes" binding:"max=2000"`
	ReturnItems []ReturnItemRequest `json:"returnItems" binding:"required,min=1,dive"`
}

// ReturnItemRequest is one requested line.
type ReturnItemRequest struct {
	OrderItemID      int64  `json:"orderItemId" binding:"required,gt=0"`
	QuantityToReturn int32  `json:"quantityToReturn" binding:"required,gte=1"`
	Condition        string `json:"condition" binding:"max=64"`
	Notes            string `json:"notes" binding:"max=500"`
}

// ReturnResponse is the JSON shape of an RMA.
type ReturnResponse struct {
	RMANumber        string               `json:"rmaNumber"`
	OrderNumber      string               `json:"orderNumber"`
	Reason           string               `json:"reason"`
	Method           string               `json:"method"`
	Status           string               `json:"status"`
	Notes            string               `json:"notes,omitempty"`
	TrackingNumber   string               `json:"trackingNumber,omitempty"`
	QRCodeData       string               `json:"qrCodeData,omitempty"`
	ShippingLabelURL string               `json:"shippingLabelUrl,omitempty"`
	WarehouseAddress string               `json:"warehouseAddress,omitempty"`
	ReturnItems      []ReturnItemResponse `json:"returnItems"`
	RequestedDate    time.Time            `json:"requestedDate"`
	ProcessedDate    *time.Time           `json:"processedDate,omitempty"`
	CompletedDate    *time.Time           `json:"completedDate,omitempty"`
}

// ReturnItemResponse is a returned line with its processing status.
type ReturnItemResponse struct {
	OrderItemID      int64  `json:"orderItemId"`
	ProductName      string `json:"productName"`
	SKU              string `json:"sku,omitempty"`
	QuantityToReturn int32  `json:"quantityToReturn"`
	Condition        string `json:"condition"`
	Notes            string `json:"notes,omitempty"`
	Status           string `json:"status"`
}

// ToCreateInput converts the transport payload into the application command.
func ToCreateInput(customerID string, payload CreateReturnRequest, idempotencyKey string) returntypes.CreateReturnInput {
	input := returntypes.CreateReturnInput{
		CustomerID:     customerID,
		OrderNumber:    payload.OrderNumber,
		Reason:         payload.Reason,
		Method:         payload.Method,
		Notes:          payload.Notes,
		Items:          make([]returntypes.ReturnItemInput, 0, len(payload.ReturnItems)),
		IdempotencyKey: idempotencyKey,
	}
	for _, item := range payload.ReturnItems {
		input.Items = append(input.Items, returntypes.ReturnItemInput{
			OrderItemID: item.OrderItemID,
			Quantity:    item.QuantityToReturn,
			Condition:   item.Condition,
			Notes:       item.Notes,
		})
	}
	return input
}

// FromDomain converts an RMA aggregate to its JSON shape.
func FromDomain(request *domain.ReturnRequest) ReturnResponse {
	if request == nil {
		return ReturnResponse{}
	}
	out := ReturnResponse{
		RMANumber:        request.RMANumber,
		OrderNumber:      request.OrderNumber,
		Reason:           string(request.Reason),
		Method:           string(request.Method),
		Status:           string(request.Status),
		Notes:            request.Notes,
		TrackingNumber:   request.TrackingNumber,
		QRCodeData:       request.QRCodeData,
		ShippingLabelURL: request.ShippingLabelURL,
		WarehouseAddress: request.WarehouseAddress,
		ReturnItems:      make([]ReturnItemResponse, 0, len(request.Items)),
		RequestedDate:    request.RequestedDate,
		ProcessedDate:    request.ProcessedDate,
		CompletedDate:    request.CompletedDate,
	}
	for _, item := range request.Items {
		out.ReturnItems = append(out.ReturnItems, ReturnItemResponse{
			OrderItemID:      item.OrderItemID,
			ProductName:      item.ProductName,
			SKU:              item.SKU,
			QuantityToReturn: item.Quantity,
			Condition:        item.Condition,
			Notes:            item.Notes,
			Status:           string(item.Status),
		})
	}
	return out
}

// FromDomainList converts a list of RMAs, never returning nil.
func FromDomainList(requests []*domain.ReturnRequest) []ReturnResponse {
	out := make([]ReturnResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, FromDomain(request))
	}
	return out
}
