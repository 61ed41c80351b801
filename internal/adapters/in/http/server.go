package http

import (
	"context"
	"net/http"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/core/domain/model/technician"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CreateTechnicianHandler interface {
		Handle(ctx context.Context, cmd commands.CreateTechnicianCommand) (*technician.Technician, error)
	}

	DeleteTechnicianHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteTechnicianCommand) error
	}

	CreateServiceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateServiceOrderCommand) (*serviceorder.ServiceOrder, error)
	}

	UpdateServiceOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateServiceOrderStatusCommand) (*serviceorder.ServiceOrder, error)
	}

	TransferServiceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransferServiceOrderCommand) (*serviceorder.ServiceOrder, error)
	}

	ReorderRouteHandler interface {
		Handle(ctx context.Context, cmd commands.ReorderRouteCommand) error
	}

	DeleteServiceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteServiceOrderCommand) error
	}

	ListTechniciansHandler interface {
		Handle(ctx context.Context, query queries.ListTechniciansQuery) ([]queries.TechnicianView, error)
	}

	ListServiceOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListServiceOrdersQuery) ([]queries.ServiceOrderView, error)
	}

	ListRouteHandler interface {
		Handle(ctx context.Context, query queries.ListRouteQuery) ([]queries.ServiceOrderView, error)
	}

	GetServiceOrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetServiceOrderHistoryQuery) ([]queries.HistoryEntryView, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	CreateTechnician         CreateTechnicianHandler
	DeleteTechnician         DeleteTechnicianHandler
	CreateServiceOrder       CreateServiceOrderHandler
	UpdateServiceOrderStatus UpdateServiceOrderStatusHandler
	TransferServiceOrder     TransferServiceOrderHandler
	ReorderRoute             ReorderRouteHandler
	DeleteServiceOrder       DeleteServiceOrderHandler

	// Query handlers
	ListTechnicians        ListTechniciansHandler
	ListServiceOrders      ListServiceOrdersHandler
	ListRoute              ListRouteHandler
	GetServiceOrderHistory GetServiceOrderHistoryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
// Failed use cases are returned as errors and rendered by ErrorHandler.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

var _ ServerInterface = (*Server)(nil)

// ListTechnicians handles GET /api/v1/technicians.
func (s *Server) ListTechnicians(ctx echo.Context) error {
	technicians, err := s.h.ListTechnicians.Handle(ctx.Request().Context(), queries.NewListTechniciansQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, technicians)
}

// CreateTechnician handles POST /api/v1/technicians.
func (s *Server) CreateTechnician(ctx echo.Context) error {
	var body NewTechnician
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewCreateTechnicianCommand(kernel.NewUUID(), body.Name, body.Email, body.Password)
	if err != nil {
		return err
	}

	t, err := s.h.CreateTechnician.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, queries.TechnicianView{
		ID:        t.ID(),
		Name:      t.Name(),
		Email:     t.Email(),
		CreatedAt: t.CreatedAt(),
	})
}

// DeleteTechnician handles DELETE /api/v1/technicians/{technicianId}.
func (s *Server) DeleteTechnician(ctx echo.Context, technicianId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(technicianId[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteTechnicianCommand(id)
	if err != nil {
		return err
	}

	if err = s.h.DeleteTechnician.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListRoute handles GET /api/v1/technicians/{technicianId}/route.
func (s *Server) ListRoute(ctx echo.Context, technicianId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(technicianId[:])
	if err != nil {
		return err
	}

	query, err := queries.NewListRouteQuery(id)
	if err != nil {
		return err
	}

	route, err := s.h.ListRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, route)
}

// ReorderRoute handles PUT /api/v1/route/reorder.
func (s *Server) ReorderRoute(ctx echo.Context) error {
	var body ReorderRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	ids := make([]kernel.UUID, 0, len(body.OrderIds))
	for _, raw := range body.OrderIds {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewReorderRouteCommand(ids)
	if err != nil {
		return err
	}

	if err = s.h.ReorderRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListServiceOrders handles GET /api/v1/service-orders.
func (s *Server) ListServiceOrders(ctx echo.Context, params ListServiceOrdersParams) error {
	technicianID, err := optionalUUID(params.TechnicianId)
	if err != nil {
		return err
	}

	query, err := queries.NewListServiceOrdersQuery(technicianID)
	if err != nil {
		return err
	}

	orders, err := s.h.ListServiceOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orders)
}

// CreateServiceOrder handles POST /api/v1/service-orders.
func (s *Server) CreateServiceOrder(ctx echo.Context) error {
	var body NewServiceOrder
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	technicianID, err := optionalUUID(body.TechnicianId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateServiceOrderCommand(kernel.NewUUID(), serviceorder.Details{
		OrderNumber:        body.OrderNumber,
		ClientName:         body.ClientName,
		Address:            body.Address,
		ProblemDescription: body.ProblemDescription,
		Priority:           body.Priority,
		Period:             body.Period,
		Notes:              body.Notes,
	}, technicianID)
	if err != nil {
		return err
	}

	order, err := s.h.CreateServiceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toServiceOrderView(order))
}

// DeleteServiceOrder handles DELETE /api/v1/service-orders/{orderId}.
func (s *Server) DeleteServiceOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteServiceOrderCommand(id)
	if err != nil {
		return err
	}

	if err = s.h.DeleteServiceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateServiceOrderStatus handles PATCH /api/v1/service-orders/{orderId}/status.
func (s *Server) UpdateServiceOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateServiceOrderStatusCommand(id, body.Status, body.Justification, body.Latitude, body.Longitude)
	if err != nil {
		return err
	}

	order, err := s.h.UpdateServiceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toServiceOrderView(order))
}

// TransferServiceOrder handles POST /api/v1/service-orders/{orderId}/transfer.
func (s *Server) TransferServiceOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body TransferRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return err
	}

	technicianID, err := optionalUUID(body.TechnicianId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransferServiceOrderCommand(id, technicianID)
	if err != nil {
		return err
	}

	order, err := s.h.TransferServiceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toServiceOrderView(order))
}

// GetServiceOrderHistory handles GET /api/v1/service-orders/{orderId}/history.
func (s *Server) GetServiceOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return err
	}

	query, err := queries.NewGetServiceOrderHistoryQuery(id)
	if err != nil {
		return err
	}

	entries, err := s.h.GetServiceOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, entries)
}

func optionalUUID(raw *openapi_types.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func invalidBody(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
}

func toServiceOrderView(o *serviceorder.ServiceOrder) queries.ServiceOrderView {
	d := o.Details()
	view := queries.ServiceOrderView{
		ID:                 o.ID(),
		OrderNumber:        d.OrderNumber,
		ClientName:         d.ClientName,
		Address:            d.Address,
		ProblemDescription: d.ProblemDescription,
		Priority:           d.Priority,
		Period:             d.Period,
		Notes:              d.Notes,
		Status:             o.Status().String(),
		Position:           o.Position(),
		TechnicianID:       o.TechnicianID(),
		CreatedAt:          o.CreatedAt(),
		ExecutionStartTime: o.ExecutionStartTime(),
		ExecutionDuration:  o.ExecutionDuration(),
	}
	if p := o.StartTravelLocation(); p != nil {
		view.StartTravelLocation = &queries.Coordinates{Latitude: p.Latitude(), Longitude: p.Longitude()}
	}
	if p := o.ExecutionLocation(); p != nil {
		view.ExecutionLocation = &queries.Coordinates{Latitude: p.Latitude(), Longitude: p.Longitude()}
	}
	return view
}
