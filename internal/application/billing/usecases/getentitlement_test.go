package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolar-inc/skolar/internal/infrastructure/cache"
	"github.com/skolar-inc/skolar/internal/shared/biztime"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

func TestGetEntitlement_NoSubscription(t *testing.T) {
	env := newBillingEnv(t, nil)
	schoolID := env.seedSchool(t, "SMA Tanpa Langganan")

	uc := NewGetEntitlementUseCase(env.subscriptions, cache.NoopEntitlementCache{}, logger.NewLogger())
	result, err := uc.Execute(context.Background(), schoolID)
	require.NoError(t, err)

	assert.False(t, result.Entitled)
	assert.Equal(t, schoolID, result.SchoolID)
}

func TestGetEntitlement_CurrentPeriod(t *testing.T) {
	env := newBillingEnv(t, nil)
	schoolID := env.seedSchool(t, "SMA Aktif")
	planID := env.seedPlan(t, "monthly", 0, 5)

	end := biztime.AddDays(biztime.Today(), 10)
	env.seedSubscription(t, schoolID, planID, biztime.AddDays(end, -29), end, biztime.AddDays(end, 5))

	uc := NewGetEntitlementUseCase(env.subscriptions, cache.NoopEntitlementCache{}, logger.NewLogger())
	result, err := uc.Execute(context.Background(), schoolID)
	require.NoError(t, err)

	assert.True(t, result.Entitled)
	assert.Equal(t, "active", result.Status)
}

func TestGetEntitlement_GraceWindowStillCovers(t *testing.T) {
	env := newBillingEnv(t, nil)
	schoolID := env.seedSchool(t, "SMA Masa Tenggang")
	planID := env.seedPlan(t, "monthly", 0, 5)

	// Period ended three days ago but the grace window runs two more days.
	end := biztime.AddDays(biztime.Today(), -3)
	env.seedSubscription(t, schoolID, planID, biztime.AddDays(end, -29), end, biztime.AddDays(end, 5))

	uc := NewGetEntitlementUseCase(env.subscriptions, cache.NoopEntitlementCache{}, logger.NewLogger())
	result, err := uc.Execute(context.Background(), schoolID)
	require.NoError(t, err)

	assert.True(t, result.Entitled)
}

func TestGetEntitlement_LapsedPeriod(t *testing.T) {
	env := newBillingEnv(t, nil)
	schoolID := env.seedSchool(t, "SMA Kedaluwarsa")
	planID := env.seedPlan(t, "monthly", 0, 5)

	end := biztime.AddDays(biztime.Today(), -40)
	env.seedSubscription(t, schoolID, planID, biztime.AddDays(end, -29), end, biztime.AddDays(end, 5))

	uc := NewGetEntitlementUseCase(env.subscriptions, cache.NoopEntitlementCache{}, logger.NewLogger())
	result, err := uc.Execute(context.Background(), schoolID)
	require.NoError(t, err)

	assert.False(t, result.Entitled)
}

func TestEntitledOn_CachedFacts(t *testing.T) {
	today := biztime.Today()
	endSoon := biztime.AddDays(today, 2)
	endPast := biztime.AddDays(today, -10)

	assert.True(t, entitledOn(&cache.CachedEntitlement{Status: "lifetime_active"}, today))
	assert.True(t, entitledOn(&cache.CachedEntitlement{Status: "active", EndDate: &endSoon, GraceEndDate: &endSoon}, today))
	assert.False(t, entitledOn(&cache.CachedEntitlement{Status: "active", EndDate: &endPast, GraceEndDate: &endPast}, today))
}
