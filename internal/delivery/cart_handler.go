package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/usecase"
)

// noSize stands in for an empty size in cart item paths.
const noSize = "-"

type CartHandler struct {
	carts    *usecase.Carts
	checkout *usecase.CheckoutUseCase
	log      *logrus.Logger
}

func NewCartHandler(carts *usecase.Carts, checkout *usecase.CheckoutUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{carts: carts, checkout: checkout, log: logger}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddItem)
		cart.DELETE("", h.ClearCart)
		cart.PATCH("/items/:id/:size", h.UpdateQuantity)
		cart.DELETE("/items/:id/:size", h.RemoveItem)
		cart.POST("/checkout", h.Checkout)
	}
}

func cartView(cart *usecase.CartUseCase) gin.H {
	return gin.H{
		"items":      cart.Items(),
		"totalItems": cart.TotalItems(),
		"totalPrice": cart.TotalPrice(),
	}
}

func sizeParam(c *gin.Context) string {
	if size := c.Param("size"); size != noSize {
		return size
	}
	return ""
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart := h.carts.Get(sessionKey(c))
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", cartView(cart))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var item domain.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		h.log.Warnf("Failed to bind cart item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := item.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cart := h.carts.Get(sessionKey(c))
	cart.AddToCart(item)
	SuccessResponse(c, http.StatusOK, "Item added to cart", cartView(cart))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cart := h.carts.Get(sessionKey(c))
	if !cart.UpdateQuantity(c.Param("id"), sizeParam(c), req.Quantity) {
		ErrorResponse(c, http.StatusNotFound, "Cart item not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart item updated", cartView(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart := h.carts.Get(sessionKey(c))
	if !cart.RemoveFromCart(c.Param("id"), sizeParam(c)) {
		ErrorResponse(c, http.StatusNotFound, "Cart item not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart item removed", cartView(cart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cart := h.carts.Get(sessionKey(c))
	cart.ClearCart()
	SuccessResponse(c, http.StatusOK, "Cart cleared", cartView(cart))
}

func (h *CartHandler) Checkout(c *gin.Context) {
	var in usecase.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Warnf("Failed to bind checkout request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if in.CreatedBy == "" {
		in.CreatedBy = c.GetString(ctxUserID)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.checkout.Checkout(ctx, h.carts.Get(sessionKey(c)), in)
	if err != nil {
		h.log.Warnf("Checkout failed: %v", err)
		failWith(c, "Checkout failed", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Order placed successfully", order)
}
