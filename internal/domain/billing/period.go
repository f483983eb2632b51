package billing

import (
	"context"
	"fmt"
	"time"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// Period is the computed shape of a billing period before it is provisioned.
type Period struct {
	Status       vo.SubscriptionStatus
	StartDate    time.Time
	EndDate      *time.Time
	GraceEndDate *time.Time
}

// Validate checks the internal consistency of a computed period.
func (p Period) Validate() error {
	switch p.Status {
	case vo.SubscriptionLifetimeActive:
		if p.EndDate != nil || p.GraceEndDate != nil {
			return fmt.Errorf("lifetime period must not carry end dates")
		}
	case vo.SubscriptionActive:
		if p.EndDate == nil || p.GraceEndDate == nil {
			return fmt.Errorf("metered period requires end and grace end dates")
		}
		if p.EndDate.Before(p.StartDate) {
			return fmt.Errorf("period end date must not precede start date")
		}
		if p.GraceEndDate.Before(*p.EndDate) {
			return fmt.Errorf("grace end date must not precede end date")
		}
	default:
		return fmt.Errorf("invalid period status: %s", p.Status)
	}
	return nil
}

// ComputePeriod derives the billing period an approval provisions.
//
// Lifetime plans start at asOf and never end. Metered plans run for the
// plan's effective duration; when the school's prior period is still running
// on asOf (or expires exactly that day), the new period starts the day after
// the prior end date so renewals chain with no gap and no overlap. A lapsed
// prior period does not drag the start date backward.
func ComputePeriod(plan *SubscriptionPlan, prior *SchoolSubscription, asOf time.Time) Period {
	if plan.BillingCycle().IsLifetime() {
		return Period{
			Status:    vo.SubscriptionLifetimeActive,
			StartDate: asOf,
		}
	}

	start := asOf
	if prior != nil && prior.EndDate() != nil && !prior.EndDate().Before(asOf) {
		start = prior.EndDate().AddDate(0, 0, 1)
	}

	end := start.AddDate(0, 0, plan.EffectiveDurationDays()-1)
	graceEnd := end.AddDate(0, 0, plan.EffectiveGraceDays())

	return Period{
		Status:       vo.SubscriptionActive,
		StartDate:    start,
		EndDate:      &end,
		GraceEndDate: &graceEnd,
	}
}

// PeriodCalculator computes the period for a school's approval, looking up
// the school's most recent provisioned subscription for renewal chaining.
//
// The prior-subscription lookup takes no lock of its own: two simultaneous
// approvals for the same school through different requests can both read the
// same prior period. See DESIGN.md for the residual hazard.
type PeriodCalculator struct {
	subscriptions SubscriptionRepository
}

// NewPeriodCalculator creates a period calculator backed by the subscription
// repository.
func NewPeriodCalculator(subscriptions SubscriptionRepository) *PeriodCalculator {
	return &PeriodCalculator{subscriptions: subscriptions}
}

// Compute returns the period a new approval for schoolID should provision as
// of the given date.
func (c *PeriodCalculator) Compute(ctx context.Context, plan *SubscriptionPlan, schoolID uint, asOf time.Time) (Period, error) {
	if plan.BillingCycle().IsLifetime() {
		return ComputePeriod(plan, nil, asOf), nil
	}

	prior, err := c.subscriptions.GetLatestBySchoolID(ctx, schoolID)
	if err != nil {
		return Period{}, err
	}

	return ComputePeriod(plan, prior, asOf), nil
}
