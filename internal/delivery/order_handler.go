package delivery

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/usecase"
)

type OrderHandler struct {
	useCase *usecase.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc *usecase.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{useCase: uc, log: logger}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrderByID)
		orders.PATCH("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var in domain.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Errorf("Failed to bind JSON for create order: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if in.CreatedBy == "" {
		in.CreatedBy = c.GetString(ctxUserID)
	}
	if err := in.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.useCase.AddOrder(ctx, in)
	if err != nil {
		h.log.Errorf("Failed to create order: %v", err)
		failWith(c, "Failed to create order", err)
		return
	}

	h.log.Infof("Order created successfully: ID %s, Total %s", created.ID, created.Total)
	SuccessResponse(c, http.StatusCreated, "Order created successfully", created)
}

// ListOrders supports ?status= and an inclusive ?from=&to= RFC 3339 range.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var orders []domain.Order

	statusParam := c.Query("status")
	fromParam, toParam := c.Query("from"), c.Query("to")
	switch {
	case statusParam != "":
		status := domain.OrderStatus(statusParam)
		if !domain.IsValidStatus(status) {
			ErrorResponse(c, http.StatusBadRequest, "Invalid status filter value: "+statusParam)
			return
		}
		orders = h.useCase.GetOrdersByStatus(status)
	case fromParam != "" || toParam != "":
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid 'from' date, expected RFC 3339")
			return
		}
		to, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid 'to' date, expected RFC 3339")
			return
		}
		orders = h.useCase.GetOrdersByDateRange(from, to)
	default:
		orders = h.useCase.Orders()
	}

	snap := h.useCase.Snapshot()
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", gin.H{
		"orders":    orders,
		"isLoading": snap.IsLoading,
		"error":     snap.Error,
	})
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	order, ok := h.useCase.GetOrderByID(id)
	if !ok {
		h.log.Warnf("Order %s not found", id)
		ErrorResponse(c, http.StatusNotFound, "Order not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id := c.Param("id")
	var patch domain.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.log.Errorf("Failed to bind JSON for update order %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.useCase.UpdateOrder(ctx, id, patch)
	if err != nil {
		h.log.Warnf("Failed to update order %s: %v", id, err)
		failWith(c, "Failed to update order", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Order updated successfully", updated)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.useCase.DeleteOrder(ctx, id); err != nil {
		h.log.Warnf("Failed to delete order %s: %v", id, err)
		failWith(c, "Failed to delete order", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Order deleted successfully", nil)
}
