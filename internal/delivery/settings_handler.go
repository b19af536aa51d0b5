package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/usecase"
)

type SettingsHandler struct {
	useCase *usecase.SettingsUseCase
	log     *logrus.Logger
}

func NewSettingsHandler(uc *usecase.SettingsUseCase, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{useCase: uc, log: logger}
}

func (h *SettingsHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/settings", h.GetSettings)
	router.PUT("/settings", h.SaveSettings)
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Settings retrieved successfully", h.useCase.Get(c.Request.Context()))
}

func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var s domain.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		h.log.Warnf("Failed to bind settings: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := h.useCase.Save(c.Request.Context(), s)
	if err != nil {
		h.log.Warnf("Failed to save settings: %v", err)
		failWith(c, "Failed to save settings", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Settings saved successfully", saved)
}
