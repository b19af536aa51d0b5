package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/usecase"
)

type AuthHandler struct {
	useCase *usecase.AuthUseCase
	carts   *usecase.Carts
	log     *logrus.Logger
}

func NewAuthHandler(uc *usecase.AuthUseCase, carts *usecase.Carts, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{useCase: uc, carts: carts, log: logger}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterPublicRoutes mounts the routes reachable without a session token.
func (h *AuthHandler) RegisterPublicRoutes(router gin.IRouter) {
	router.POST("/auth/login", h.Login)
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/auth")
	{
		group.POST("/logout", h.Logout)
		group.GET("/me", h.Me)
		group.PATCH("/me", h.UpdateMe)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind login request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	session, err := h.useCase.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.log.Warnf("Login failed for %s: %v", req.Email, err)
		failWith(c, "Login failed", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	h.useCase.Logout(ctx)
	h.carts.Drop(sessionKey(c))
	SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.useCase.CurrentUser()
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "No user is signed in")
		return
	}
	SuccessResponse(c, http.StatusOK, "Current user retrieved successfully", user)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var patch domain.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.log.Warnf("Failed to bind profile update: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.useCase.UpdateUser(ctx, patch)
	if err != nil {
		h.log.Warnf("Failed to update profile: %v", err)
		failWith(c, "Failed to update profile", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Profile updated successfully", user)
}
