// Package capacity derives per-unit performance metrics and fleet-wide
// statistics from daily power records.
//
// Aggregation policy, pinned by tests:
//
//   - Windows are trailing calendar windows anchored at the unit's latest
//     record date. Days with no record are excluded from window means, never
//     zero-filled, so a reporting gap does not drag the capacity factor down.
//   - Duplicate (date, unit) rows collapse last-write-wins in file order.
//   - An outage is a maximal run of consecutive dates with power exactly 0,
//     over the unit's full history.
//   - Trend compares the 30-day window (31 dates, both ends inclusive)
//     against the 30 dates immediately before it; the windows never overlap.
//   - A unit with no usable records degrades to a null-metric offline
//     summary; it never fails the batch.
package capacity

import (
	"math"
	"sort"
	"time"

	"github.com/reactorwatch/plant-dashboard/internal/config"
	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

// Window sizes in days for the trailing capacity factors.
const (
	windowShort = 30
	windowMid   = 90
	windowLong  = 365
)

// Aggregator computes CapacityFactorSummaries under a fixed threshold policy.
type Aggregator struct {
	thresholds config.Thresholds
}

// New creates an Aggregator with the given thresholds.
func New(thresholds config.Thresholds) *Aggregator {
	return &Aggregator{thresholds: thresholds}
}

// SummarizeAll computes a summary for every unit present in the feed. Each
// unit's computation is independent; a degenerate series yields a null-metric
// summary rather than an error.
func (a *Aggregator) SummarizeAll(byUnit map[string][]domain.DailyPowerRecord) map[string]*domain.CapacityFactorSummary {
	out := make(map[string]*domain.CapacityFactorSummary, len(byUnit))
	for unit, records := range byUnit {
		s := a.Summarize(records)
		out[unit] = &s
	}
	return out
}

// Summarize derives the full metric set for one unit's record history.
func (a *Aggregator) Summarize(records []domain.DailyPowerRecord) domain.CapacityFactorSummary {
	records = dedupeAndSort(records)

	summary := domain.CapacityFactorSummary{
		Status:    domain.StatusOffline,
		Trend:     domain.TrendStable,
		MonthlyCF: []float64{},
	}
	if len(records) == 0 {
		return summary
	}

	latest := records[len(records)-1]
	anchor := latest.Date
	summary.DataAsOf = anchor.Format("2006-01-02")
	summary.CurrentPower = latest.Power
	summary.Status = a.classify(latest.Power)

	summary.CapacityFactor30d = windowMean(records, anchor, windowShort)
	summary.CapacityFactor90d = windowMean(records, anchor, windowMid)
	summary.CapacityFactor365d = windowMean(records, anchor, windowLong)
	summary.CapacityFactorLifetime = meanOf(records)

	count, days, since := outageRuns(records, anchor)
	summary.OutageCount = count
	summary.OutageDays = days
	summary.DaysSinceOutage = since

	summary.LongestRunDays = longestRunAtLeast(records, a.thresholds.FullPower)
	summary.MonthlyCF = monthlyMeans(records)
	summary.Trend = a.trend(records, anchor, summary.CapacityFactor30d)

	return summary
}

// classify maps a power value to a status. A nil value means no data, which
// reads as offline.
func (a *Aggregator) classify(power *float64) domain.PowerStatus {
	switch {
	case power == nil:
		return domain.StatusOffline
	case *power >= a.thresholds.FullPower:
		return domain.StatusFullPower
	case *power >= a.thresholds.ReducedPower:
		return domain.StatusReducedPower
	case *power > 0:
		return domain.StatusLowPower
	default:
		return domain.StatusOffline
	}
}

// dedupeAndSort collapses duplicate dates last-write-wins (later rows in file
// order replace earlier ones) and returns the records sorted by date
// ascending. The input slice is not modified.
func dedupeAndSort(records []domain.DailyPowerRecord) []domain.DailyPowerRecord {
	byDate := make(map[time.Time]domain.DailyPowerRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}
	out := make([]domain.DailyPowerRecord, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// windowMean is the mean of non-null power values dated within the trailing
// window of `days` calendar days ending at anchor, inclusive on both ends.
// Returns nil when the window holds no usable records.
func windowMean(records []domain.DailyPowerRecord, anchor time.Time, days int) *float64 {
	start := anchor.AddDate(0, 0, -days)
	var inWindow []domain.DailyPowerRecord
	for _, r := range records {
		if !r.Date.Before(start) && !r.Date.After(anchor) {
			inWindow = append(inWindow, r)
		}
	}
	return meanOf(inWindow)
}

// meanOf averages the non-null power values, rounded to one decimal. Returns
// nil when there are none.
func meanOf(records []domain.DailyPowerRecord) *float64 {
	var sum float64
	var n int
	for _, r := range records {
		if r.Power == nil {
			continue
		}
		sum += *r.Power
		n++
	}
	if n == 0 {
		return nil
	}
	m := round1(sum / float64(n))
	return &m
}

// outageRuns scans the full history for maximal runs of consecutive dates at
// exactly zero power. It returns the run count, the total days across runs,
// and days-since-last-outage: the number of complete days strictly between
// the run's final zero-power date and the anchor, so a unit that recovered
// on the latest date — or is still in an outage — reads 0. Nil when the
// history has no outage at all.
func outageRuns(records []domain.DailyPowerRecord, anchor time.Time) (count, totalDays int, sinceLast *int) {
	var lastEnd time.Time
	inRun := false
	var prevDate time.Time

	for _, r := range records {
		zero := r.Power != nil && *r.Power == 0
		if zero {
			// A gap in dates breaks the run: the dates are no longer consecutive.
			if !inRun || daysBetween(prevDate, r.Date) != 1 {
				count++
			}
			inRun = true
			totalDays++
			lastEnd = r.Date
		} else {
			inRun = false
		}
		prevDate = r.Date
	}

	if count == 0 {
		return 0, 0, nil
	}
	since := daysBetween(lastEnd, anchor) - 1
	if since < 0 {
		since = 0
	}
	return count, totalDays, &since
}

// daysBetween counts calendar days from a to b. Record dates are midnight
// UTC, so the hour arithmetic is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// longestRunAtLeast returns the length in days of the longest run of
// consecutive dates with power at or above the threshold.
func longestRunAtLeast(records []domain.DailyPowerRecord, threshold float64) int {
	var longest, current int
	var prevDate time.Time
	inRun := false

	for _, r := range records {
		high := r.Power != nil && *r.Power >= threshold
		if high {
			if !inRun || daysBetween(prevDate, r.Date) != 1 {
				current = 0
			}
			inRun = true
			current++
			if current > longest {
				longest = current
			}
		} else {
			inRun = false
		}
		prevDate = r.Date
	}
	return longest
}

// monthlyMeans returns one mean per calendar month present in the history,
// chronological. Records with no power value contribute nothing.
func monthlyMeans(records []domain.DailyPowerRecord) []float64 {
	type month struct {
		year int
		mon  time.Month
	}
	sums := make(map[month]float64)
	counts := make(map[month]int)
	var order []month

	for _, r := range records {
		if r.Power == nil {
			continue
		}
		m := month{r.Date.Year(), r.Date.Month()}
		if _, seen := counts[m]; !seen {
			order = append(order, m)
		}
		sums[m] += *r.Power
		counts[m]++
	}

	out := make([]float64, 0, len(order))
	for _, m := range order {
		out = append(out, round1(sums[m]/float64(counts[m])))
	}
	return out
}

// trend compares the 30-day capacity factor against the prior non-overlapping
// 30-day window. Differences within the configured threshold read as stable,
// as does an empty window on either side.
func (a *Aggregator) trend(records []domain.DailyPowerRecord, anchor time.Time, cf30 *float64) domain.Trend {
	if cf30 == nil {
		return domain.TrendStable
	}

	priorEnd := anchor.AddDate(0, 0, -windowShort-1)
	prior := windowMean(records, priorEnd, windowShort-1)
	if prior == nil {
		return domain.TrendStable
	}

	switch {
	case *cf30 > *prior+a.thresholds.Trend:
		return domain.TrendImproving
	case *cf30 < *prior-a.thresholds.Trend:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
