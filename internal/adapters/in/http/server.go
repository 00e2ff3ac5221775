package http

import (
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the fulfillment use cases over HTTP.
// It coordinates between echo handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	claimOrderHandler           commands.ClaimOrderCommandHandler
	unclaimOrderHandler         commands.UnclaimOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	startPickTaskHandler        commands.StartPickTaskCommandHandler
	updatePickedQuantityHandler commands.UpdatePickedQuantityCommandHandler
	completePickTaskHandler     commands.CompletePickTaskCommandHandler
	skipPickTaskHandler         commands.SkipPickTaskCommandHandler
	revertSkipPickTaskHandler   commands.RevertSkipPickTaskCommandHandler
	undoPickHandler             commands.UndoPickCommandHandler

	// Query handlers
	getOrderQueueHandler  queries.GetOrderQueueQueryHandler
	getOrderDetailHandler queries.GetOrderDetailQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	unclaimOrderHandler commands.UnclaimOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	startPickTaskHandler commands.StartPickTaskCommandHandler,
	updatePickedQuantityHandler commands.UpdatePickedQuantityCommandHandler,
	completePickTaskHandler commands.CompletePickTaskCommandHandler,
	skipPickTaskHandler commands.SkipPickTaskCommandHandler,
	revertSkipPickTaskHandler commands.RevertSkipPickTaskCommandHandler,
	undoPickHandler commands.UndoPickCommandHandler,
	getOrderQueueHandler queries.GetOrderQueueQueryHandler,
	getOrderDetailHandler queries.GetOrderDetailQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		claimOrderHandler:           claimOrderHandler,
		unclaimOrderHandler:         unclaimOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		startPickTaskHandler:        startPickTaskHandler,
		updatePickedQuantityHandler: updatePickedQuantityHandler,
		completePickTaskHandler:     completePickTaskHandler,
		skipPickTaskHandler:         skipPickTaskHandler,
		revertSkipPickTaskHandler:   revertSkipPickTaskHandler,
		undoPickHandler:             undoPickHandler,
		getOrderQueueHandler:        getOrderQueueHandler,
		getOrderDetailHandler:       getOrderDetailHandler,
	}
}

// RegisterRoutes mounts all fulfillment endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrderQueue)
	api.GET("/orders/:orderID", s.GetOrderDetail)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.POST("/orders/:orderID/unclaim", s.UnclaimOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/status", s.UpdateOrderStatus)

	api.POST("/tasks/:taskID/start", s.StartPickTask)
	api.POST("/tasks/:taskID/quantity", s.UpdatePickedQuantity)
	api.POST("/tasks/:taskID/complete", s.CompletePickTask)
	api.POST("/tasks/:taskID/skip", s.SkipPickTask)
	api.POST("/tasks/:taskID/revert-skip", s.RevertSkipPickTask)
	api.POST("/tasks/:taskID/undo", s.UndoPick)
}

// CreateOrder handles POST /api/v1/orders - registers a new fulfillment order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	priority := order.PriorityNormal
	if request.Priority != "" {
		priority, err = order.PriorityFromString(request.Priority)
		if err != nil {
			return badRequest(ctx, "Invalid priority: "+err.Error())
		}
	}

	discount := kernel.ZeroMoney()
	if request.Discount != "" {
		discount, err = kernel.NewMoneyFromString(request.Discount)
		if err != nil {
			return badRequest(ctx, "Invalid discount: "+err.Error())
		}
	}

	lines := make([]commands.OrderLine, 0, len(request.Lines))
	for _, l := range request.Lines {
		line, lineErr := commands.NewOrderLine(l.SKU, l.Quantity)
		if lineErr != nil {
			return badRequest(ctx, "Invalid order line: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, priority, lines, discount)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// GetOrderQueue handles GET /api/v1/orders - retrieves a page of the picking queue.
func (s *Server) GetOrderQueue(ctx echo.Context) error {
	filter, err := queueFilterFromParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid page: "+raw)
		}
	}

	pageSize := 0
	if raw := ctx.QueryParam("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid page size: "+raw)
		}
	}

	query, err := queries.NewGetOrderQueueQuery(filter, page, pageSize)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.getOrderQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]QueueEntry, len(rows))
	for i, row := range rows {
		response[i] = QueueEntry{
			ID:         row.ID.String(),
			Number:     row.Number,
			CustomerID: row.CustomerID.String(),
			Priority:   row.Priority,
			Status:     row.Status,
			PickerID:   optionalUUIDString(row.PickerID),
			ItemCount:  row.ItemCount,
			Total:      row.Total,
			Currency:   row.Currency,
			CreatedAt:  row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderDetail handles GET /api/v1/orders/:orderID - retrieves one order
// with its items, pick tasks, and picking progress.
func (s *Server) GetOrderDetail(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetOrderDetailQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderDetailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailFromQuery(detail))
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim - assigns the order
// to a picker and materializes its pick tasks.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var request PickerRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickerID, err := kernel.UUIDFromString(request.PickerID)
	if err != nil {
		return badRequest(ctx, "Invalid picker ID: "+err.Error())
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, pickerID)
	if err != nil {
		return badRequest(ctx, "Invalid claim data: "+err.Error())
	}

	if handleErr := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnclaimOrder handles POST /api/v1/orders/:orderID/unclaim - releases the
// picker's claim and returns the order to the queue.
func (s *Server) UnclaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var request PickerRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickerID, err := kernel.UUIDFromString(request.PickerID)
	if err != nil {
		return badRequest(ctx, "Invalid picker ID: "+err.Error())
	}

	cmd, err := commands.NewUnclaimOrderCommand(orderID, pickerID)
	if err != nil {
		return badRequest(ctx, "Invalid unclaim data: "+err.Error())
	}

	if handleErr := s.unclaimOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel - cancels the order
// and releases any reserved stock.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid cancel data: "+err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles POST /api/v1/orders/:orderID/status - advances
// the order through the packing pipeline.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	var packerID *kernel.UUID
	if request.PackerID != "" {
		parsed, parseErr := kernel.UUIDFromString(request.PackerID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid packer ID: "+parseErr.Error())
		}
		packerID = &parsed
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, packerID)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if handleErr := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartPickTask handles POST /api/v1/tasks/:taskID/start - marks a pick task
// as being worked by the picker.
func (s *Server) StartPickTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskID"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID: "+err.Error())
	}

	var request PickerRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickerID, err := kernel.UUIDFromString(request.PickerID)
	if err != nil {
		return badRequest(ctx, "Invalid picker ID: "+err.Error())
	}

	cmd, err := commands.NewStartPickTaskCommand(taskID, pickerID)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	if handleErr := s.startPickTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdatePickedQuantity handles POST /api/v1/tasks/:taskID/quantity - records
// how many units have been physically picked so far.
func (s *Server) UpdatePickedQuantity(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskID"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID: "+err.Error())
	}

	var request UpdatePickedQuantityRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdatePickedQuantityCommand(taskID, request.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid quantity data: "+err.Error())
	}

	if handleErr := s.updatePickedQuantityHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePickTask handles POST /api/v1/tasks/:taskID/complete - finishes a
// fully picked task and consumes the reserved stock.
func (s *Server) CompletePickTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskID"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID: "+err.Error())
	}

	cmd, err := commands.NewCompletePickTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	if handleErr := s.completePickTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SkipPickTask handles POST /api/v1/tasks/:taskID/skip - skips a task with a
// mandatory reason and releases its reservation.
func (s *Server) SkipPickTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskID"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID: "+err.Error())
	}

	var request SkipPickTaskRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSkipPickTaskCommand(taskID, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid skip data: "+err.Error())
	}

	if handleErr := s.skipPickTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RevertSkipPickTask handles POST /api/v1/tasks/:taskID/revert-skip - returns
// a skipped task to the pending pool.
func (s *Server) RevertSkipPickTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskID"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID: "+err.Error())
	}

	cmd, err := commands.NewRevertSkipPickTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	if handleErr := s.revertSkipPickTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UndoPick handles POST /api/v1/tasks/:taskID/undo - reverts a completed task
// back to in-progress and restores the reservation.
func (s *Server) UndoPick(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskID"))
	if err != nil {
		return badRequest(ctx, "Invalid task ID: "+err.Error())
	}

	cmd, err := commands.NewUndoPickCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	if handleErr := s.undoPickHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// queueFilterFromParams builds a queue filter from the request query string.
func queueFilterFromParams(ctx echo.Context) (queries.QueueFilter, error) {
	var filter queries.QueueFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return queries.QueueFilter{}, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("priority"); raw != "" {
		priority, err := order.PriorityFromString(raw)
		if err != nil {
			return queries.QueueFilter{}, err
		}
		filter.Priority = &priority
	}

	if raw := ctx.QueryParam("picker_id"); raw != "" {
		pickerID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.QueueFilter{}, err
		}
		filter.PickerID = &pickerID
	}

	filter.UnclaimedOnly = ctx.QueryParam("unclaimed") == "true"

	return filter, nil
}

// writeError maps application errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	var notFoundErr *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFoundErr) || errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrConflict):
		return errorResponse(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err)
	default:
		return errorResponse(ctx, http.StatusInternalServerError, err)
	}
}

func errorResponse(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func optionalUUIDString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
