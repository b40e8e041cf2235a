package capacity

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

func unitWithCF(name string, mwe int, cf30 *float64, status domain.PowerStatus) domain.ReactorUnit {
	return domain.ReactorUnit{
		Name:          name,
		ReactorType:   domain.ReactorPWR,
		CapacityMWe:   mwe,
		LicenseStatus: domain.LicenseOriginal,
		Performance: &domain.CapacityFactorSummary{
			CapacityFactor30d: cf30,
			Status:            status,
		},
	}
}

func TestFleet_CapacityWeightedMean(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	units := []domain.ReactorUnit{
		unitWithCF("Big 1", 1200, fp(100), domain.StatusFullPower),
		unitWithCF("Small 1", 400, fp(60), domain.StatusReducedPower),
	}

	stats := Fleet(units, nil)

	// (100*1200 + 60*400) / 1600 = 90
	require.NotNil(t, stats.FleetCapacityFactor)
	assert.Equal(t, 90.0, *stats.FleetCapacityFactor)
	assert.Equal(t, "2025-06-30", stats.DataAsOf)

	t.Run("order invariant", func(t *testing.T) {
		reversed := []domain.ReactorUnit{units[1], units[0]}
		stats2 := Fleet(reversed, nil)
		assert.Equal(t, *stats.FleetCapacityFactor, *stats2.FleetCapacityFactor)
	})
}

func TestFleet_ExcludesUnitsWithoutData(t *testing.T) {
	noData := domain.ReactorUnit{
		Name:          "Dark 1",
		ReactorType:   domain.ReactorBWR,
		CapacityMWe:   900,
		LicenseStatus: domain.LicenseOriginal,
		Performance: &domain.CapacityFactorSummary{
			Status: domain.StatusOffline,
		},
	}
	unmatched := domain.ReactorUnit{
		Name:          "Ghost 1",
		ReactorType:   domain.ReactorBWR,
		CapacityMWe:   800,
		LicenseStatus: domain.LicenseOriginal,
	}
	units := []domain.ReactorUnit{
		unitWithCF("Lit 1", 1000, fp(90), domain.StatusFullPower),
		noData,
		unmatched,
	}

	stats := Fleet(units, nil)

	// The no-data units appear in counts but not in the weighted mean.
	require.NotNil(t, stats.FleetCapacityFactor)
	assert.Equal(t, 90.0, *stats.FleetCapacityFactor)
	assert.Equal(t, 3, stats.TotalReactors)
	assert.Equal(t, 2700, stats.TotalCapacityMWe)
	assert.Equal(t, 2.7, stats.TotalCapacityGWe)
}

func TestFleet_NoDataAtAll(t *testing.T) {
	stats := Fleet([]domain.ReactorUnit{{Name: "Ghost 1", ReactorType: domain.ReactorPWR}}, nil)
	assert.Nil(t, stats.FleetCapacityFactor)
}

func TestFleet_Counts(t *testing.T) {
	age1, age2 := 40, 50
	units := []domain.ReactorUnit{
		{Name: "A 1", ReactorType: domain.ReactorPWR, NRCRegion: 1, LicenseStatus: domain.LicenseFirstRenewal, CurrentAge: &age1,
			Performance: &domain.CapacityFactorSummary{Status: domain.StatusFullPower}},
		{Name: "A 2", ReactorType: domain.ReactorPWR, NRCRegion: 1, LicenseStatus: domain.LicenseFirstRenewal, CurrentAge: &age2,
			Performance: &domain.CapacityFactorSummary{Status: domain.StatusFullPower}},
		{Name: "B 1", ReactorType: domain.ReactorBWR, NRCRegion: 3, LicenseStatus: domain.LicenseSubsequentRenewal,
			Performance: &domain.CapacityFactorSummary{Status: domain.StatusOffline}},
	}
	sites := []domain.Site{{UnitCount: 2}, {UnitCount: 1}}

	stats := Fleet(units, sites)

	assert.Equal(t, 3, stats.TotalReactors)
	assert.Equal(t, 2, stats.TotalSites)
	assert.Equal(t, 2, stats.PWRCount)
	assert.Equal(t, 1, stats.BWRCount)
	assert.Equal(t, map[int]int{1: 2, 3: 1}, stats.ByRegion)
	assert.Equal(t, 2, stats.LicenseCounts[domain.LicenseFirstRenewal])
	assert.Equal(t, 1, stats.LicenseCounts[domain.LicenseSubsequentRenewal])
	assert.Equal(t, 45.0, stats.AverageAge)
	assert.Equal(t, 2, stats.AtFullPower)
	assert.Equal(t, 2, stats.StatusCounts[domain.StatusFullPower])
	assert.Equal(t, 1, stats.StatusCounts[domain.StatusOffline])
}
