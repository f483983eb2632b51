package usecases

import (
	"context"

	"github.com/skolar-inc/skolar/internal/application/billing/dto"
	"github.com/skolar-inc/skolar/internal/domain/billing"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// GetRequestUseCase loads one request with its plan, school, and latest
// proof for the review detail view.
type GetRequestUseCase struct {
	requests billing.RequestRepository
	logger   logger.Interface
}

func NewGetRequestUseCase(requests billing.RequestRepository, logger logger.Interface) *GetRequestUseCase {
	return &GetRequestUseCase{requests: requests, logger: logger}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, requestID uint) (*dto.RequestSummaryDTO, error) {
	summary, err := uc.requests.GetSummaryByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, billing.ErrRequestNotFound
	}
	return dto.RequestSummaryToDTO(summary), nil
}
