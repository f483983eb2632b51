package usecases

import (
	"context"
	"time"

	"github.com/skolar-inc/skolar/internal/application/billing/dto"
	"github.com/skolar-inc/skolar/internal/domain/billing"
	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
	"github.com/skolar-inc/skolar/internal/infrastructure/cache"
	"github.com/skolar-inc/skolar/internal/shared/biztime"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// GetEntitlementUseCase answers whether a school is currently entitled to
// the product, from its latest provisioned period. Lookups go through the
// entitlement cache; the entitled flag itself is always recomputed against
// today so a cached entry cannot keep a lapsed school entitled.
type GetEntitlementUseCase struct {
	subscriptions billing.SubscriptionRepository
	entitlements  cache.EntitlementCache
	logger        logger.Interface
}

func NewGetEntitlementUseCase(
	subscriptions billing.SubscriptionRepository,
	entitlements cache.EntitlementCache,
	logger logger.Interface,
) *GetEntitlementUseCase {
	return &GetEntitlementUseCase{
		subscriptions: subscriptions,
		entitlements:  entitlements,
		logger:        logger,
	}
}

func (uc *GetEntitlementUseCase) Execute(ctx context.Context, schoolID uint) (*dto.EntitlementDTO, error) {
	today := biztime.Today()

	cached, err := uc.entitlements.Get(ctx, schoolID)
	if err != nil {
		// A broken cache degrades to a database lookup.
		uc.logger.Warnw("entitlement cache lookup failed", "school_id", schoolID, "error", err)
	} else if cached != nil {
		return uc.fromCached(schoolID, cached, today), nil
	}

	subscription, err := uc.subscriptions.GetLatestBySchoolID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	if subscription == nil {
		uc.cache(ctx, schoolID, &cache.CachedEntitlement{NotFound: true})
		return &dto.EntitlementDTO{SchoolID: schoolID, Entitled: false}, nil
	}

	entry := &cache.CachedEntitlement{
		Entitled:     subscription.IsCurrentOn(today),
		Status:       subscription.Status().String(),
		PlanID:       subscription.PlanID(),
		EndDate:      subscription.EndDate(),
		GraceEndDate: subscription.GraceEndDate(),
	}
	uc.cache(ctx, schoolID, entry)

	return &dto.EntitlementDTO{
		SchoolID:     schoolID,
		Entitled:     subscription.IsCurrentOn(today),
		Status:       subscription.Status().String(),
		PlanID:       subscription.PlanID(),
		EndDate:      dto.FormatDatePtr(subscription.EndDate()),
		GraceEndDate: dto.FormatDatePtr(subscription.GraceEndDate()),
	}, nil
}

func (uc *GetEntitlementUseCase) fromCached(schoolID uint, cached *cache.CachedEntitlement, today time.Time) *dto.EntitlementDTO {
	if cached.NotFound {
		return &dto.EntitlementDTO{SchoolID: schoolID, Entitled: false}
	}
	return &dto.EntitlementDTO{
		SchoolID:     schoolID,
		Entitled:     entitledOn(cached, today),
		Status:       cached.Status,
		PlanID:       cached.PlanID,
		EndDate:      dto.FormatDatePtr(cached.EndDate),
		GraceEndDate: dto.FormatDatePtr(cached.GraceEndDate),
	}
}

func (uc *GetEntitlementUseCase) cache(ctx context.Context, schoolID uint, entry *cache.CachedEntitlement) {
	if err := uc.entitlements.Set(ctx, schoolID, entry); err != nil {
		uc.logger.Warnw("failed to cache entitlement", "school_id", schoolID, "error", err)
	}
}

// entitledOn recomputes entitlement from the cached period facts so the
// answer tracks date boundaries within the cache TTL.
func entitledOn(cached *cache.CachedEntitlement, today time.Time) bool {
	if cached.Status == vo.SubscriptionLifetimeActive.String() {
		return true
	}
	limit := cached.EndDate
	if cached.GraceEndDate != nil {
		limit = cached.GraceEndDate
	}
	if limit == nil {
		return true
	}
	return !limit.Before(today)
}
