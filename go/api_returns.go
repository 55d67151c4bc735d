package returnsserver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/export"
	returnmapper "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/http/mapper"
	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	returnports "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

// IdempotencyKeyHeader optionally makes return creation replayable.
const IdempotencyKeyHeader = "Idempotency-Key"

// ReturnAPI wires HTTP transport with the returns service and its creation workflow.
type ReturnAPI struct {
	service   returnports.Service
	workflows returnports.WorkflowOrchestrator
}

// NewReturnAPI builds the API. A nil orchestrator creates returns through the service directly.
func NewReturnAPI(service returnports.Service, workflows returnports.WorkflowOrchestrator) ReturnAPI {
	return ReturnAPI{service: service, workflows: workflows}
}

type statusQuery struct {
	Status string `form:"status" binding:"required,returnstatus"`
}

// Post /api/returns
// Create a return request for the caller
func (api *ReturnAPI) CreateReturn(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}
	var payload returnmapper.CreateReturnRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	created, err := api.createReturn(c.Request.Context(), returnmapper.ToCreateInput(customerID, payload, key))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, returnmapper.FromDomain(created))
}

func (api *ReturnAPI) createReturn(ctx context.Context, input returntypes.CreateReturnInput) (*returndomain.ReturnRequest, error) {
	if api.workflows != nil {
		return api.workflows.CreateReturn(ctx, input)
	}
	return api.service.CreateReturn(ctx, input)
}

// Get /api/returns/:rmaNumber
// Find a return request by RMA number
func (api *ReturnAPI) GetReturn(c *gin.Context) {
	request, err := api.service.GetReturn(c.Request.Context(), strings.ToUpper(strings.TrimSpace(c.Param("rmaNumber"))))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, returnmapper.FromDomain(request))
}

// Get /api/customers/:customerId/returns
// List a customer's return requests, newest first
func (api *ReturnAPI) CustomerReturns(c *gin.Context) {
	customerID, ok := authorizeCustomerParam(c)
	if !ok {
		return
	}
	requests, err := api.service.CustomerReturns(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, returnmapper.FromDomainList(requests))
}

// Get /api/customers/:customerId/returns/export
// Download a customer's return requests as a spreadsheet
func (api *ReturnAPI) ExportCustomerReturns(c *gin.Context) {
	customerID, ok := authorizeCustomerParam(c)
	if !ok {
		return
	}
	requests, err := api.service.CustomerReturns(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteReturns(&buf, requests); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="returns-%s.xlsx"`, customerID))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// Put /api/returns/:rmaNumber/status
// Move a return request to a new status
func (api *ReturnAPI) UpdateStatus(c *gin.Context) {
	var query statusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}
	updated, err := api.service.UpdateStatus(c.Request.Context(), returntypes.UpdateStatusInput{
		RMANumber: strings.ToUpper(strings.TrimSpace(c.Param("rmaNumber"))),
		Status:    strings.ToUpper(query.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, returnmapper.FromDomain(updated))
}

// Get /api/returns/health
func (api *ReturnAPI) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Return service is healthy"})
}
