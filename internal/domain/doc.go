// Package domain models US commercial nuclear reactor data published by the
// Nuclear Regulatory Commission (NRC).
//
// # Data Sources
//
// The reactor master table is extracted from the NRC's Information Digest
// (one row per licensed power reactor unit). The daily power table comes from
// the NRC Power Reactor Status Reports: one row per (date, unit) giving the
// reported power level as a percentage of rated thermal output, 0–100, with
// an empty cell when no report was filed for that day.
//
// # NRC Data Conventions
//
// Docket numbers:
//
//	Zero-padded numeric strings in two formats: "05000XXX" for reactors
//	licensed under 10 CFR Part 50 and "05200XXX" for combined licenses under
//	Part 52 (e.g. Vogtle 3 and 4). A docket identifies exactly one unit.
//
// Unit naming:
//
//	The master table uses full legal names ("Edwin I. Hatch Nuclear Plant,
//	Unit 1") while the daily status feed uses short names ("Hatch 1"). The
//	registry matcher in internal/registry bridges the two.
//
// Sites:
//
//	A site is a derived grouping of units sharing identical registry
//	coordinates. Coordinates carry six decimal places, so grouping uses exact
//	float equality with no distance tolerance.
//
// License lifecycle:
//
//	Original operating licenses run 40 years. A first renewal extends the
//	term to 60 years and a subsequent renewal to 80. Renewal status is
//	inferred from which renewal date columns are populated.
//
// Document categories:
//
//	Regulatory documents from the ADAMS library are bucketed by keyword into
//	LER (Licensee Event Report), Inspection, Enforcement, License Amendment,
//	Correspondence, Report, or Other. A document tagged to more than 5
//	distinct dockets is treated as an industry-wide notice and excluded from
//	per-reactor feeds.
//
// # Capacity Factor
//
// The capacity factor over a window is the arithmetic mean of reported power
// percentages within that window. Days with no report are excluded from the
// mean rather than counted as zero; see internal/capacity for the full
// aggregation policy.
package domain
