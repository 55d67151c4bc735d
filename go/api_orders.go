package returnsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
)

// OrderAPI serves order lookups.
type OrderAPI struct {
	service orderports.Service
}

func NewOrderAPI(service orderports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Get /api/orders/:orderNumber
// Find an order by its number
func (api *OrderAPI) LookupOrder(c *gin.Context) {
	order, err := api.service.LookupOrder(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /api/customers/:customerId/orders
// List a customer's orders, newest first
func (api *OrderAPI) CustomerOrders(c *gin.Context) {
	customerID, ok := authorizeCustomerParam(c)
	if !ok {
		return
	}
	orders, err := api.service.CustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}
