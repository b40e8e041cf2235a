package domain

import "time"

// PowerStatus classifies a unit's most recent reported power level.
type PowerStatus string

const (
	StatusFullPower    PowerStatus = "full_power"    // >= 95%
	StatusReducedPower PowerStatus = "reduced_power" // >= 50% and < 95%
	StatusLowPower     PowerStatus = "low_power"     // > 0% and < 50%
	StatusOffline      PowerStatus = "offline"       // 0% or no data
)

// Trend classifies the direction of a unit's recent capacity factor relative
// to the prior non-overlapping window.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// DailyPowerRecord is one (date, unit, power) row from the daily status feed.
// Power is a percentage of rated output, 0–100; nil means no report was filed.
type DailyPowerRecord struct {
	Date  time.Time
	Unit  string
	Power *float64
}

// CapacityFactorSummary holds the derived performance metrics for one unit.
// It is fully recomputed from the unit's record history on every run. All
// capacity factors are nil for a unit with no usable records.
type CapacityFactorSummary struct {
	CurrentPower *float64    `json:"current_power"`
	Status       PowerStatus `json:"status"`

	CapacityFactor30d      *float64 `json:"capacity_factor_30d"`
	CapacityFactor90d      *float64 `json:"capacity_factor_90d"`
	CapacityFactor365d     *float64 `json:"capacity_factor_365d"`
	CapacityFactorLifetime *float64 `json:"capacity_factor_lifetime"`

	Trend Trend `json:"trend"`

	OutageCount     int  `json:"outage_count"`
	OutageDays      int  `json:"outage_days"`
	DaysSinceOutage *int `json:"days_since_outage"` // nil when no outage in history
	LongestRunDays  int  `json:"longest_run_days"`  // longest run at >= full-power threshold

	MonthlyCF []float64 `json:"monthly_cf"` // one mean per calendar month present, chronological

	DataAsOf string `json:"data_as_of,omitempty"` // latest record date, YYYY-MM-DD
}

// FleetStats aggregates the whole fleet for the dashboard header.
type FleetStats struct {
	TotalReactors    int     `json:"total_reactors"`
	TotalSites       int     `json:"total_sites"`
	TotalCapacityMWe int     `json:"total_capacity_mwe"`
	TotalCapacityGWe float64 `json:"total_capacity_gwe"`

	PWRCount int         `json:"pwr_count"`
	BWRCount int         `json:"bwr_count"`
	ByRegion map[int]int `json:"by_region"`

	AverageAge    float64               `json:"average_age"`
	LicenseCounts map[LicenseStatus]int `json:"license_status"`

	// FleetCapacityFactor is the capacity-weighted mean of per-unit 30-day
	// capacity factors, weight = rated MWe. Units with no data are excluded
	// from both numerator and denominator. Nil when no unit has data.
	FleetCapacityFactor *float64 `json:"fleet_capacity_factor"`

	StatusCounts map[PowerStatus]int `json:"status_counts"`
	AtFullPower  int                 `json:"at_full_power"`

	DataAsOf string `json:"data_as_of"`
}
