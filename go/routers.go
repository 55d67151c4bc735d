package returnsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	CustomerAPI CustomerAPI
	OrderAPI    OrderAPI
	ReturnAPI   ReturnAPI
	ChatAPI     ChatAPI
}

// NewRouter returns a gin engine with recovery, identity resolution, and every route.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers the routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	RegisterValidators()
	router.Use(Identity(handleFunctions.CustomerAPI.service))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"Login", http.MethodPost, "/api/customers/login", h.CustomerAPI.Login},
		{"Logout", http.MethodPost, "/api/customers/logout", h.CustomerAPI.Logout},
		{"CustomerOrders", http.MethodGet, "/api/customers/:customerId/orders", h.OrderAPI.CustomerOrders},
		{"CustomerReturns", http.MethodGet, "/api/customers/:customerId/returns", h.ReturnAPI.CustomerReturns},
		{"ExportCustomerReturns", http.MethodGet, "/api/customers/:customerId/returns/export", h.ReturnAPI.ExportCustomerReturns},
		{"LookupOrder", http.MethodGet, "/api/orders/:orderNumber", h.OrderAPI.LookupOrder},
		{"CreateReturn", http.MethodPost, "/api/returns", h.ReturnAPI.CreateReturn},
		{"ReturnsHealth", http.MethodGet, "/api/returns/health", h.ReturnAPI.Health},
		{"GetReturn", http.MethodGet, "/api/returns/:rmaNumber", h.ReturnAPI.GetReturn},
		{"UpdateReturnStatus", http.MethodPut, "/api/returns/:rmaNumber/status", h.ReturnAPI.UpdateStatus},
		{"SendChatMessage", http.MethodPost, "/api/chat/message", h.ChatAPI.SendMessage},
		{"ClearChatSession", http.MethodDelete, "/api/chat/session/:sessionId", h.ChatAPI.ClearSession},
		{"ChatHealth", http.MethodGet, "/api/chat/health", h.ChatAPI.Health},
	}
}
