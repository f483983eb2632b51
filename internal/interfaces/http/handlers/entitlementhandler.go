package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skolar-inc/skolar/internal/application/billing/usecases"
	"github.com/skolar-inc/skolar/internal/shared/errors"
	"github.com/skolar-inc/skolar/internal/shared/logger"
	"github.com/skolar-inc/skolar/internal/shared/utils"
)

// EntitlementHandler answers product entitlement lookups per school.
type EntitlementHandler struct {
	getEntitlementUC *usecases.GetEntitlementUseCase
	logger           logger.Interface
}

func NewEntitlementHandler(getEntitlementUC *usecases.GetEntitlementUseCase) *EntitlementHandler {
	return &EntitlementHandler{
		getEntitlementUC: getEntitlementUC,
		logger:           logger.NewLogger(),
	}
}

// GetEntitlement handles GET /api/v1/schools/:id/entitlement
func (h *EntitlementHandler) GetEntitlement(c *gin.Context) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid school id"))
		return
	}

	result, err := h.getEntitlementUC.Execute(c.Request.Context(), uint(parsed))
	if err != nil {
		utils.ErrorResponseWithError(c, mapBillingError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
