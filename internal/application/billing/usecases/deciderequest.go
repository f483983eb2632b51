package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/skolar-inc/skolar/internal/application/billing/dto"
	"github.com/skolar-inc/skolar/internal/domain/billing"
	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
	"github.com/skolar-inc/skolar/internal/infrastructure/cache"
	"github.com/skolar-inc/skolar/internal/shared/biztime"
	"github.com/skolar-inc/skolar/internal/shared/db"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

type DecideRequestCommand struct {
	RequestID    uint
	Action       string
	Note         string
	OperatorID   uint
	OperatorRole string
}

type DecideRequestResult struct {
	Request      *dto.RequestSummaryDTO
	Subscription *dto.SubscriptionDTO
}

// DecideRequestUseCase executes one review decision on a subscription
// request: approve, reject, or return to pending. The whole decision is one
// transaction; the reviewable precondition is re-checked under a row lock so
// concurrent decisions on the same request serialize and the loser gets
// ErrAlreadyProcessed.
type DecideRequestUseCase struct {
	requests      billing.RequestRepository
	plans         billing.PlanRepository
	proofs        billing.ProofRepository
	subscriptions billing.SubscriptionRepository
	calculator    *billing.PeriodCalculator
	audit         billing.AuditRecorder
	entitlements  cache.EntitlementCache
	tm            *db.TransactionManager
	logger        logger.Interface
}

func NewDecideRequestUseCase(
	requests billing.RequestRepository,
	plans billing.PlanRepository,
	proofs billing.ProofRepository,
	subscriptions billing.SubscriptionRepository,
	calculator *billing.PeriodCalculator,
	audit billing.AuditRecorder,
	entitlements cache.EntitlementCache,
	tm *db.TransactionManager,
	logger logger.Interface,
) *DecideRequestUseCase {
	return &DecideRequestUseCase{
		requests:      requests,
		plans:         plans,
		proofs:        proofs,
		subscriptions: subscriptions,
		calculator:    calculator,
		audit:         audit,
		entitlements:  entitlements,
		tm:            tm,
		logger:        logger,
	}
}

func (uc *DecideRequestUseCase) Execute(ctx context.Context, cmd DecideRequestCommand) (*DecideRequestResult, error) {
	action, err := vo.ParseDecisionAction(cmd.Action)
	if err != nil {
		return nil, billing.NewValidationError("%s", err)
	}
	if cmd.OperatorID == 0 {
		return nil, billing.NewValidationError("operator ID is required")
	}
	if action.RequiresNote() && strings.TrimSpace(cmd.Note) == "" {
		return nil, billing.NewValidationError("a review note is required for %s", action)
	}

	// Unlocked read first; the authoritative reviewable check happens again
	// under the row lock inside the transaction.
	request, err := uc.requests.GetByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, billing.ErrRequestNotFound
	}
	if !request.CanDecide() {
		return nil, billing.ErrAlreadyProcessed
	}

	var subscription *billing.SchoolSubscription
	var decided *billing.SubscriptionRequest
	err = uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.requests.GetByIDForUpdate(txCtx, cmd.RequestID)
		if err != nil {
			return err
		}
		if locked == nil {
			return billing.ErrRequestNotFound
		}
		if !locked.CanDecide() {
			return billing.ErrAlreadyProcessed
		}
		decided = locked

		now := biztime.NowUTC()
		proofStatus := vo.ProofRejected
		var plan *billing.SubscriptionPlan

		switch action {
		case vo.ActionApprove:
			subscription, plan, err = uc.approve(txCtx, locked, cmd, now)
			if err != nil {
				return err
			}
			proofStatus = vo.ProofApproved
		case vo.ActionReject:
			if err := locked.Reject(cmd.OperatorID, cmd.Note, now); err != nil {
				return err
			}
		case vo.ActionMarkPending:
			if err := locked.ReturnToPending(cmd.OperatorID, cmd.Note, now); err != nil {
				return err
			}
		}

		if err := uc.requests.UpdateDecision(txCtx, locked); err != nil {
			return err
		}
		if err := uc.proofs.UpdateStatusByRequestID(txCtx, locked.ID(), proofStatus); err != nil {
			return err
		}

		entry := billing.AuditEntry{
			Action:    action,
			SchoolID:  locked.SchoolID(),
			RequestID: locked.ID(),
			ActorID:   cmd.OperatorID,
			ActorRole: cmd.OperatorRole,
			Message:   strings.TrimSpace(cmd.Note),
			At:        now,
		}
		if subscription != nil {
			entry.Metadata = map[string]any{
				"subscription_id": subscription.ID(),
				"plan_id":         subscription.PlanID(),
				"billing_cycle":   plan.BillingCycle().String(),
				"status":          subscription.Status().String(),
				"start_date":      dto.FormatDate(subscription.StartDate()),
				"end_date":        dto.FormatDatePtr(subscription.EndDate()),
				"grace_end_date":  dto.FormatDatePtr(subscription.GraceEndDate()),
			}
		}
		return uc.audit.Record(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	// The decision is committed; a stale entitlement entry is the only
	// thing left to clean up.
	if subscription != nil {
		if err := uc.entitlements.Invalidate(ctx, request.SchoolID()); err != nil {
			uc.logger.Warnw("failed to invalidate entitlement cache",
				"school_id", request.SchoolID(), "error", err)
		}
	}

	uc.logger.Infow("subscription request decided",
		"request_id", cmd.RequestID,
		"action", action,
		"operator_id", cmd.OperatorID,
	)

	// The decision is already committed; a failed read-back must not be
	// reported as a failed decision, or the caller would retry into
	// ErrAlreadyProcessed.
	summary, err := uc.requests.GetSummaryByID(ctx, cmd.RequestID)
	if err != nil || summary == nil {
		uc.logger.Warnw("request read-back failed after committed decision",
			"request_id", cmd.RequestID, "error", err)
		summary = &billing.RequestSummary{Request: decided}
	}

	return &DecideRequestResult{
		Request:      dto.RequestSummaryToDTO(summary),
		Subscription: dto.SubscriptionToDTO(subscription),
	}, nil
}

func (uc *DecideRequestUseCase) approve(
	ctx context.Context,
	locked *billing.SubscriptionRequest,
	cmd DecideRequestCommand,
	now time.Time,
) (*billing.SchoolSubscription, *billing.SubscriptionPlan, error) {
	count, err := uc.proofs.CountByRequestID(ctx, locked.ID())
	if err != nil {
		return nil, nil, err
	}
	if count == 0 {
		return nil, nil, billing.ErrMissingEvidence
	}

	plan, err := uc.plans.GetByID(ctx, locked.PlanID())
	if err != nil {
		return nil, nil, err
	}
	if plan == nil {
		return nil, nil, billing.NewValidationError("subscription plan %d not found", locked.PlanID())
	}

	if err := locked.Approve(cmd.OperatorID, cmd.Note, now); err != nil {
		return nil, nil, err
	}

	period, err := uc.calculator.Compute(ctx, plan, locked.SchoolID(), biztime.Today())
	if err != nil {
		return nil, nil, err
	}

	subscription, err := billing.NewSchoolSubscription(
		locked.SchoolID(), plan.ID(), locked.ID(),
		period, cmd.OperatorID, now,
	)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.subscriptions.Create(ctx, subscription); err != nil {
		return nil, nil, err
	}
	return subscription, plan, nil
}
