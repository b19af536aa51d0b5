package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/usecase"
)

type ProductHandler struct {
	useCase *usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc *usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{useCase: uc, log: logger}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/:id/toggle", h.ToggleProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.useCase.AddProduct(ctx, in)
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", in.Name, err)
		failWith(c, "Failed to create product", err)
		return
	}

	h.log.Infof("Product created successfully: ID %s, Name %s", created.ID, created.Name)
	SuccessResponse(c, http.StatusCreated, "Product created successfully", created)
}

// ListProducts returns every product, or only active ones with ?active=true,
// or one category with ?category=.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var products []domain.Product
	switch {
	case c.Query("category") != "":
		products = h.useCase.ProductsByCategory(c.Query("category"))
	case c.Query("active") == "true":
		products = h.useCase.ActiveProducts()
	default:
		products = h.useCase.Products()
	}

	snap := h.useCase.Snapshot()
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", gin.H{
		"products":  products,
		"isLoading": snap.IsLoading,
		"error":     snap.Error,
	})
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	product, ok := h.useCase.GetProductByID(id)
	if !ok {
		h.log.Warnf("Product %s not found", id)
		ErrorResponse(c, http.StatusNotFound, "Product not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var patch domain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.log.Errorf("Failed to bind JSON for update product %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.useCase.UpdateProduct(ctx, id, patch)
	if err != nil {
		h.log.Warnf("Failed to update product %s: %v", id, err)
		failWith(c, "Failed to update product", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.useCase.DeleteProduct(ctx, id); err != nil {
		h.log.Warnf("Failed to delete product %s: %v", id, err)
		failWith(c, "Failed to delete product", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) ToggleProduct(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := requestContext(c)
	defer cancel()

	toggled, err := h.useCase.ToggleProductStatus(ctx, id)
	if err != nil {
		h.log.Warnf("Failed to toggle product %s: %v", id, err)
		failWith(c, "Failed to toggle product", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product status toggled", toggled)
}
