package capacity

import (
	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

// Fleet aggregates fleet-wide statistics from the registry (with performance
// merged in) and the derived sites. The fleet capacity factor is the
// capacity-weighted mean of per-unit 30-day capacity factors, weight = rated
// MWe; units without data are excluded from both numerator and denominator,
// so supplying units in a different order cannot change the result.
func Fleet(units []domain.ReactorUnit, sites []domain.Site) domain.FleetStats {
	stats := domain.FleetStats{
		TotalReactors: len(units),
		TotalSites:    len(sites),
		ByRegion:      make(map[int]int),
		LicenseCounts: make(map[domain.LicenseStatus]int),
		StatusCounts:  make(map[domain.PowerStatus]int),
		DataAsOf:      domain.Clock().Now().UTC().Format("2006-01-02"),
	}

	var (
		weightedSum float64
		weightTotal float64
		ageSum      int
		ageCount    int
	)

	for _, u := range units {
		stats.TotalCapacityMWe += u.CapacityMWe

		switch u.ReactorType {
		case domain.ReactorPWR:
			stats.PWRCount++
		case domain.ReactorBWR:
			stats.BWRCount++
		}
		if u.NRCRegion != 0 {
			stats.ByRegion[u.NRCRegion]++
		}
		stats.LicenseCounts[u.LicenseStatus]++

		if u.CurrentAge != nil {
			ageSum += *u.CurrentAge
			ageCount++
		}

		if u.Performance == nil {
			continue
		}
		stats.StatusCounts[u.Performance.Status]++
		if u.Performance.Status == domain.StatusFullPower {
			stats.AtFullPower++
		}
		if cf := u.Performance.CapacityFactor30d; cf != nil {
			weightedSum += *cf * float64(u.CapacityMWe)
			weightTotal += float64(u.CapacityMWe)
		}
	}

	stats.TotalCapacityGWe = round1(float64(stats.TotalCapacityMWe) / 1000)
	if ageCount > 0 {
		stats.AverageAge = round1(float64(ageSum) / float64(ageCount))
	}
	if weightTotal > 0 {
		cf := round1(weightedSum / weightTotal)
		stats.FleetCapacityFactor = &cf
	}

	return stats
}
