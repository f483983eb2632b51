package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/skolar-inc/skolar/internal/domain/billing/valueobjects"
)

// --- helpers ---

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestPlan(t *testing.T, cycle vo.BillingCycle, durationDays, graceDays int) *SubscriptionPlan {
	t.Helper()
	plan, err := ReconstructPlan(1, "Standard", cycle, durationDays, graceDays, decimal.NewFromInt(500000), date(2024, 1, 1))
	require.NoError(t, err)
	return plan
}

func newPriorSubscription(t *testing.T, endDate time.Time) *SchoolSubscription {
	t.Helper()
	grace := endDate.AddDate(0, 0, 5)
	sub, err := ReconstructSubscription(
		10, 7, 1, 3,
		vo.SubscriptionActive,
		endDate.AddDate(0, 0, -29),
		&endDate, &grace,
		42, endDate.AddDate(0, 0, -29),
	)
	require.NoError(t, err)
	return sub
}

func TestComputePeriod_Lifetime(t *testing.T) {
	plan := newTestPlan(t, vo.CycleLifetime, 0, 0)
	asOf := date(2024, 6, 15)

	period := ComputePeriod(plan, nil, asOf)

	assert.Equal(t, vo.SubscriptionLifetimeActive, period.Status)
	assert.Equal(t, asOf, period.StartDate)
	assert.Nil(t, period.EndDate)
	assert.Nil(t, period.GraceEndDate)
	assert.NoError(t, period.Validate())
}

func TestComputePeriod_FirstSubscription(t *testing.T) {
	plan := newTestPlan(t, vo.CycleMonthly, 30, 5)
	asOf := date(2024, 6, 15)

	period := ComputePeriod(plan, nil, asOf)

	assert.Equal(t, vo.SubscriptionActive, period.Status)
	assert.Equal(t, date(2024, 6, 15), period.StartDate)
	require.NotNil(t, period.EndDate)
	assert.Equal(t, date(2024, 7, 14), *period.EndDate)
	require.NotNil(t, period.GraceEndDate)
	assert.Equal(t, date(2024, 7, 19), *period.GraceEndDate)
	assert.NoError(t, period.Validate())
}

func TestComputePeriod_RenewalChainsAfterActivePrior(t *testing.T) {
	plan := newTestPlan(t, vo.CycleMonthly, 30, 5)
	prior := newPriorSubscription(t, date(2024, 6, 30))

	period := ComputePeriod(plan, prior, date(2024, 6, 15))

	assert.Equal(t, date(2024, 7, 1), period.StartDate)
	require.NotNil(t, period.EndDate)
	assert.Equal(t, date(2024, 7, 30), *period.EndDate)
	require.NotNil(t, period.GraceEndDate)
	assert.Equal(t, date(2024, 8, 4), *period.GraceEndDate)
}

func TestComputePeriod_PriorExpiringTodayStillChains(t *testing.T) {
	plan := newTestPlan(t, vo.CycleMonthly, 30, 0)
	prior := newPriorSubscription(t, date(2024, 6, 15))

	period := ComputePeriod(plan, prior, date(2024, 6, 15))

	assert.Equal(t, date(2024, 6, 16), period.StartDate)
}

func TestComputePeriod_LapsedPriorStartsToday(t *testing.T) {
	plan := newTestPlan(t, vo.CycleMonthly, 30, 5)
	prior := newPriorSubscription(t, date(2024, 1, 31))

	period := ComputePeriod(plan, prior, date(2024, 3, 1))

	assert.Equal(t, date(2024, 3, 1), period.StartDate)
	require.NotNil(t, period.EndDate)
	assert.Equal(t, date(2024, 3, 30), *period.EndDate)
}

func TestComputePeriod_DefaultDurations(t *testing.T) {
	tests := []struct {
		name         string
		cycle        vo.BillingCycle
		durationDays int
		wantDays     int
	}{
		{"monthly zero duration falls back to 30", vo.CycleMonthly, 0, 30},
		{"monthly negative duration falls back to 30", vo.CycleMonthly, -7, 30},
		{"yearly zero duration falls back to 120", vo.CycleYearly, 0, 120},
		{"explicit duration wins", vo.CycleYearly, 365, 365},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan := newTestPlan(t, tc.cycle, tc.durationDays, 0)
			asOf := date(2024, 1, 1)

			period := ComputePeriod(plan, nil, asOf)

			require.NotNil(t, period.EndDate)
			assert.Equal(t, asOf.AddDate(0, 0, tc.wantDays-1), *period.EndDate)
		})
	}
}

func TestComputePeriod_NegativeGraceClampedToZero(t *testing.T) {
	plan := newTestPlan(t, vo.CycleMonthly, 30, -3)

	period := ComputePeriod(plan, nil, date(2024, 1, 1))

	require.NotNil(t, period.GraceEndDate)
	assert.Equal(t, *period.EndDate, *period.GraceEndDate)
}

func TestComputePeriod_LifetimeIgnoresPrior(t *testing.T) {
	plan := newTestPlan(t, vo.CycleLifetime, 0, 0)
	prior := newPriorSubscription(t, date(2024, 12, 31))

	period := ComputePeriod(plan, prior, date(2024, 6, 1))

	assert.Equal(t, vo.SubscriptionLifetimeActive, period.Status)
	assert.Equal(t, date(2024, 6, 1), period.StartDate)
	assert.Nil(t, period.EndDate)
}

func TestPeriodValidate_Invalid(t *testing.T) {
	end := date(2024, 1, 1)
	tests := []struct {
		name   string
		period Period
	}{
		{"lifetime with end date", Period{Status: vo.SubscriptionLifetimeActive, StartDate: date(2024, 1, 1), EndDate: &end}},
		{"metered without end date", Period{Status: vo.SubscriptionActive, StartDate: date(2024, 1, 1)}},
		{"unknown status", Period{Status: "suspended", StartDate: date(2024, 1, 1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.period.Validate())
		})
	}
}
