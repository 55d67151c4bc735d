package returnsserver

import (
	"github.com/gin-gonic/gin"

	chatapp "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/application"
	chatdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
	customerdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
	orderapp "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
	returnapp "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	returnports "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
	apierrors "github.com/Apurer/go-gin-returns-portal/internal/shared/errors"
)

// responder maps every context's sentinel errors to problem details.
var responder = apierrors.DefaultResponder.With(
	apierrors.Sentinel(customerports.ErrInvalidCredentials, apierrors.ErrUnauthorized),
	apierrors.Sentinel(customerports.ErrInvalidToken, apierrors.ErrUnauthorized),
	apierrors.Sentinel(customerports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(customerdomain.ErrInvalidCustomerID, apierrors.ErrBadRequest),
	apierrors.Sentinel(orderports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(orderapp.ErrInvalidInput, apierrors.ErrBadRequest),
	apierrors.Sentinel(returnports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(returndomain.ErrOrderNotOwned, apierrors.ErrForbidden),
	apierrors.Sentinel(returnports.ErrIdempotencyConflict, apierrors.ErrConflict),
	apierrors.Sentinel(returndomain.ErrStatusTransition, apierrors.ErrConflict),
	apierrors.Sentinel(returnapp.ErrInvalidInput, apierrors.ErrBadRequest),
	apierrors.Sentinel(chatapp.ErrInvalidInput, apierrors.ErrBadRequest),
	apierrors.Sentinel(chatdomain.ErrEmptyMessage, apierrors.ErrBadRequest),
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func respondBindingError(c *gin.Context, err error) {
	respondProblem(c, bindingProblem(err))
}
