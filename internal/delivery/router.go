package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/auth"
	"pos_service/internal/usecase"
)

// requestTimeout bounds a single request, simulated latency included.
const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// NewRouter wires every handler onto a gin engine. ready reports whether the
// containers finished their initial load; nil means always ready.
func NewRouter(containers *usecase.Containers, tokens *auth.TokenIssuer, ready func() bool, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	authHandler := NewAuthHandler(containers.Auth, containers.Carts, logger)

	router.GET("/health", healthHandler(ready))
	authHandler.RegisterPublicRoutes(router)

	protected := router.Group("/")
	protected.Use(JWTMiddleware(tokens, logger))
	{
		authHandler.RegisterRoutes(protected)
		NewProductHandler(containers.Products, logger).RegisterRoutes(protected)
		NewOrderHandler(containers.Orders, logger).RegisterRoutes(protected)
		NewReportHandler(containers.Reports, containers.Orders, containers.Products, logger).RegisterRoutes(protected)
		NewCartHandler(containers.Carts, containers.Checkout, logger).RegisterRoutes(protected)
		NewSettingsHandler(containers.Settings, logger).RegisterRoutes(protected)
	}

	logger.Info("API Routes registered.")
	return router
}

func healthHandler(ready func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil && !ready() {
			ErrorResponse(c, http.StatusServiceUnavailable, "Service is loading")
			return
		}
		SuccessResponse(c, http.StatusOK, "Service is healthy", gin.H{"time": time.Now().UTC()})
	}
}
