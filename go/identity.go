package returnsserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	customerports "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
	apierrors "github.com/Apurer/go-gin-returns-portal/internal/shared/errors"
)

// Identity headers.
const (
	AuthorizationHeader = "Authorization"
	CustomerIDHeader    = "X-Customer-ID"
	bearerPrefix        = "Bearer "
	customerIDKey       = "returns.customer_id"
)

// Authenticator resolves a session token to a customer id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Identity resolves the caller. A bearer token wins over X-Customer-ID and
// must verify; a request without either stays anonymous.
func Identity(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(AuthorizationHeader))
		if header != "" {
			if !strings.HasPrefix(header, bearerPrefix) || auth == nil {
				respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid authorization header format"))
				return
			}
			customerID, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
			if err != nil {
				respondProblem(c, apierrors.ErrUnauthorized.WithDetail(customerports.ErrInvalidToken.Error()))
				return
			}
			c.Set(customerIDKey, customerID)
			c.Next()
			return
		}
		if customerID := strings.TrimSpace(c.GetHeader(CustomerIDHeader)); customerID != "" {
			c.Set(customerIDKey, customerID)
		}
		c.Next()
	}
}

// CustomerID returns the resolved caller, if any.
func CustomerID(c *gin.Context) (string, bool) {
	customerID := c.GetString(customerIDKey)
	return customerID, customerID != ""
}

func requireCustomer(c *gin.Context) (string, bool) {
	customerID, ok := CustomerID(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("customer identity is required"))
		return "", false
	}
	return customerID, true
}

// authorizeCustomerParam reads the :customerId path parameter and rejects
// callers authenticated as someone else.
func authorizeCustomerParam(c *gin.Context) (string, bool) {
	requested := strings.TrimSpace(c.Param("customerId"))
	if requested == "" {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("customer id is required"))
		return "", false
	}
	if caller, ok := CustomerID(c); ok && caller != requested {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("customers may only access their own records"))
		return "", false
	}
	return requested, true
}
