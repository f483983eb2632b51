package usecases

import (
	"context"

	"github.com/skolar-inc/skolar/internal/application/billing/dto"
	"github.com/skolar-inc/skolar/internal/domain/billing"
	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

type ListRequestsCommand struct {
	Status   string
	SchoolID uint
	Page     int
	PageSize int
}

type ListRequestsResult struct {
	Requests []*dto.RequestSummaryDTO
	Total    int64
	Page     int
	PageSize int
}

// ListRequestsUseCase serves the review queue: requests joined with plan,
// school, and latest proof, filterable by logical status and school.
type ListRequestsUseCase struct {
	requests billing.RequestRepository
	logger   logger.Interface
}

func NewListRequestsUseCase(requests billing.RequestRepository, logger logger.Interface) *ListRequestsUseCase {
	return &ListRequestsUseCase{requests: requests, logger: logger}
}

func (uc *ListRequestsUseCase) Execute(ctx context.Context, cmd ListRequestsCommand) (*ListRequestsResult, error) {
	filter := billing.RequestListFilter{
		SchoolID: cmd.SchoolID,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}
	if cmd.Status != "" && cmd.Status != "all" {
		status, err := vo.ParseRequestStatus(cmd.Status)
		if err != nil {
			return nil, billing.NewValidationError("%s", err)
		}
		filter.Status = status
	}

	summaries, total, err := uc.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListRequestsResult{
		Requests: dto.RequestSummariesToDTO(summaries),
		Total:    total,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}, nil
}
