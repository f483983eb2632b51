package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skolar-inc/skolar/internal/application/billing/usecases"
	"github.com/skolar-inc/skolar/internal/domain/billing"
	"github.com/skolar-inc/skolar/internal/interfaces/http/middleware"
	"github.com/skolar-inc/skolar/internal/shared/errors"
	"github.com/skolar-inc/skolar/internal/shared/logger"
	"github.com/skolar-inc/skolar/internal/shared/utils"
)

// BillingHandler serves the subscription request review surface.
type BillingHandler struct {
	decideUC *usecases.DecideRequestUseCase
	listUC   *usecases.ListRequestsUseCase
	getUC    *usecases.GetRequestUseCase
	logger   logger.Interface
}

func NewBillingHandler(
	decideUC *usecases.DecideRequestUseCase,
	listUC *usecases.ListRequestsUseCase,
	getUC *usecases.GetRequestUseCase,
) *BillingHandler {
	return &BillingHandler{
		decideUC: decideUC,
		listUC:   listUC,
		getUC:    getUC,
		logger:   logger.NewLogger(),
	}
}

type DecideRequestBody struct {
	Action string `json:"action" binding:"required"`
	Note   string `json:"note"`
}

// DecideRequest handles POST /api/v1/admin/subscription-requests/:id/decide
func (h *BillingHandler) DecideRequest(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var body DecideRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warnw("invalid request body for decide request",
			"request_id", requestID,
			"error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	cmd := usecases.DecideRequestCommand{
		RequestID:    requestID,
		Action:       body.Action,
		Note:         body.Note,
		OperatorID:   middleware.OperatorID(c),
		OperatorRole: middleware.OperatorRole(c),
	}

	result, err := h.decideUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, mapBillingError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request decided successfully", result)
}

// ListRequests handles GET /api/v1/admin/subscription-requests
func (h *BillingHandler) ListRequests(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	var schoolID uint
	if raw := c.Query("school_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid school_id"))
			return
		}
		schoolID = uint(parsed)
	}

	cmd := usecases.ListRequestsCommand{
		Status:   c.Query("status"),
		SchoolID: schoolID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	result, err := h.listUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, mapBillingError(err))
		return
	}

	utils.ListSuccessResponse(c, result.Requests, result.Total, pagination.Page, pagination.PageSize)
}

// GetRequest handles GET /api/v1/admin/subscription-requests/:id
func (h *BillingHandler) GetRequest(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), requestID)
	if err != nil {
		utils.ErrorResponseWithError(c, mapBillingError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseRequestID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, errors.NewValidationError("invalid request id")
	}
	return uint(parsed), nil
}

// mapBillingError translates workflow errors into transport errors.
func mapBillingError(err error) error {
	switch {
	case stderrors.Is(err, billing.ErrRequestNotFound):
		return errors.NewNotFoundError("subscription request not found")
	case stderrors.Is(err, billing.ErrAlreadyProcessed):
		return errors.NewConflictError("request has already been processed")
	case stderrors.Is(err, billing.ErrMissingEvidence):
		return errors.NewUnprocessableError("request has no payment proof on record")
	case billing.IsValidation(err):
		return errors.NewValidationError(err.Error())
	default:
		return err
	}
}
