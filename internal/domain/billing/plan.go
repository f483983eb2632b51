package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// SubscriptionPlan is immutable reference data describing a billable offering.
type SubscriptionPlan struct {
	id           uint
	name         string
	billingCycle vo.BillingCycle
	durationDays int
	graceDays    int
	amount       decimal.Decimal
	createdAt    time.Time
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(
	id uint,
	name string,
	billingCycle vo.BillingCycle,
	durationDays, graceDays int,
	amount decimal.Decimal,
	createdAt time.Time,
) (*SubscriptionPlan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	switch billingCycle {
	case vo.CycleMonthly, vo.CycleYearly, vo.CycleLifetime:
	default:
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}

	return &SubscriptionPlan{
		id:           id,
		name:         name,
		billingCycle: billingCycle,
		durationDays: durationDays,
		graceDays:    graceDays,
		amount:       amount,
		createdAt:    createdAt,
	}, nil
}

// ID returns the plan ID
func (p *SubscriptionPlan) ID() uint {
	return p.id
}

// Name returns the plan name
func (p *SubscriptionPlan) Name() string {
	return p.name
}

// BillingCycle returns the plan's billing cadence
func (p *SubscriptionPlan) BillingCycle() vo.BillingCycle {
	return p.billingCycle
}

// DurationDays returns the configured period length in days. A value of zero
// or less means the cycle default applies.
func (p *SubscriptionPlan) DurationDays() int {
	return p.durationDays
}

// GraceDays returns the configured grace period length in days.
func (p *SubscriptionPlan) GraceDays() int {
	return p.graceDays
}

// Amount returns the plan price.
func (p *SubscriptionPlan) Amount() decimal.Decimal {
	return p.amount
}

// CreatedAt returns when the plan was created
func (p *SubscriptionPlan) CreatedAt() time.Time {
	return p.createdAt
}

// EffectiveDurationDays returns the period length the calculator should use:
// the configured duration when positive, otherwise the cycle default.
func (p *SubscriptionPlan) EffectiveDurationDays() int {
	if p.durationDays > 0 {
		return p.durationDays
	}
	return p.billingCycle.DefaultDurationDays()
}

// EffectiveGraceDays returns the grace period clamped to non-negative.
func (p *SubscriptionPlan) EffectiveGraceDays() int {
	if p.graceDays < 0 {
		return 0
	}
	return p.graceDays
}
