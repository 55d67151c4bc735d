package returnsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customermapper "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
)

// CustomerAPI serves login and logout.
type CustomerAPI struct {
	service customerports.Service
}

func NewCustomerAPI(service customerports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Post /api/customers/login
// Opens a session for a known customer id
func (api *CustomerAPI) Login(c *gin.Context) {
	var payload customermapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainSession(session))
}

// Post /api/customers/logout
// Ends the caller's sessions
func (api *CustomerAPI) Logout(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}
	api.service.Logout(c.Request.Context(), customerID)
	c.Status(http.StatusNoContent)
}
