package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewTechnician defines model for NewTechnician.
type NewTechnician struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewServiceOrder defines model for NewServiceOrder.
type NewServiceOrder struct {
	OrderNumber        int                 `json:"orderNumber"`
	ClientName         string              `json:"clientName"`
	Address            string              `json:"address"`
	ProblemDescription string              `json:"problemDescription"`
	Priority           string              `json:"priority"`
	Period             string              `json:"period"`
	Notes              string              `json:"notes"`
	TechnicianId       *openapi_types.UUID `json:"technicianId,omitempty"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Status        string   `json:"status"`
	Justification string   `json:"justification"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// TransferRequest defines model for TransferRequest.
type TransferRequest struct {
	TechnicianId *openapi_types.UUID `json:"technicianId,omitempty"`
}

// ReorderRequest defines model for ReorderRequest.
type ReorderRequest struct {
	OrderIds []openapi_types.UUID `json:"orderIds"`
}

// ListServiceOrdersParams defines parameters for ListServiceOrders.
type ListServiceOrdersParams struct {
	TechnicianId *openapi_types.UUID `form:"technicianId,omitempty" json:"technicianId,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/technicians)
	ListTechnicians(ctx echo.Context) error
	// (POST /api/v1/technicians)
	CreateTechnician(ctx echo.Context) error
	// (DELETE /api/v1/technicians/{technicianId})
	DeleteTechnician(ctx echo.Context, technicianId openapi_types.UUID) error
	// (GET /api/v1/technicians/{technicianId}/route)
	ListRoute(ctx echo.Context, technicianId openapi_types.UUID) error
	// (PUT /api/v1/route/reorder)
	ReorderRoute(ctx echo.Context) error
	// (GET /api/v1/service-orders)
	ListServiceOrders(ctx echo.Context, params ListServiceOrdersParams) error
	// (POST /api/v1/service-orders)
	CreateServiceOrder(ctx echo.Context) error
	// (DELETE /api/v1/service-orders/{orderId})
	DeleteServiceOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PATCH /api/v1/service-orders/{orderId}/status)
	UpdateServiceOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/service-orders/{orderId}/transfer)
	TransferServiceOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/service-orders/{orderId}/history)
	GetServiceOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListTechnicians(ctx echo.Context) error {
	return w.Handler.ListTechnicians(ctx)
}

func (w *ServerInterfaceWrapper) CreateTechnician(ctx echo.Context) error {
	return w.Handler.CreateTechnician(ctx)
}

func (w *ServerInterfaceWrapper) DeleteTechnician(ctx echo.Context) error {
	technicianId, err := bindPathUUID(ctx, "technicianId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteTechnician(ctx, technicianId)
}

func (w *ServerInterfaceWrapper) ListRoute(ctx echo.Context) error {
	technicianId, err := bindPathUUID(ctx, "technicianId")
	if err != nil {
		return err
	}
	return w.Handler.ListRoute(ctx, technicianId)
}

func (w *ServerInterfaceWrapper) ReorderRoute(ctx echo.Context) error {
	return w.Handler.ReorderRoute(ctx)
}

func (w *ServerInterfaceWrapper) ListServiceOrders(ctx echo.Context) error {
	var params ListServiceOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "technicianId", ctx.QueryParams(), &params.TechnicianId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter technicianId: %s", err))
	}

	return w.Handler.ListServiceOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateServiceOrder(ctx echo.Context) error {
	return w.Handler.CreateServiceOrder(ctx)
}

func (w *ServerInterfaceWrapper) DeleteServiceOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteServiceOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) UpdateServiceOrderStatus(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateServiceOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) TransferServiceOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.TransferServiceOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetServiceOrderHistory(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetServiceOrderHistory(ctx, orderId)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}

	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/technicians", w.ListTechnicians)
	router.POST("/api/v1/technicians", w.CreateTechnician)
	router.DELETE("/api/v1/technicians/:technicianId", w.DeleteTechnician)
	router.GET("/api/v1/technicians/:technicianId/route", w.ListRoute)
	router.PUT("/api/v1/route/reorder", w.ReorderRoute)
	router.GET("/api/v1/service-orders", w.ListServiceOrders)
	router.POST("/api/v1/service-orders", w.CreateServiceOrder)
	router.DELETE("/api/v1/service-orders/:orderId", w.DeleteServiceOrder)
	router.PATCH("/api/v1/service-orders/:orderId/status", w.UpdateServiceOrderStatus)
	router.POST("/api/v1/service-orders/:orderId/transfer", w.TransferServiceOrder)
	router.GET("/api/v1/service-orders/:orderId/history", w.GetServiceOrderHistory)
}
