// Package registry loads the reactor master table and derives sites and
// license lifecycle fields.
package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

// RowError reports one rejected registry row. Row numbers are 1-based and
// include the header, matching what an editor shows.
type RowError struct {
	Row  int
	Name string
	Err  error
}

func (e RowError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("row %d (%s): %v", e.Row, e.Name, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

var (
	errMissingCoordinates = errors.New("missing required coordinates")
	errMissingDocket      = errors.New("missing docket number")
	errDuplicateDocket    = errors.New("duplicate docket number")
)

// requiredColumns must all be present in the header row; a missing column
// means the table is structurally unreadable.
var requiredColumns = []string{
	"name", "docket_number", "reactor_type", "latitude", "longitude",
}

// Load parses the master CSV into validated ReactorUnits. Row-level problems
// (missing coordinates, duplicate dockets, unknown reactor types, unparseable
// numbers) are collected as RowErrors and do not stop other rows. Only a
// structurally unreadable table returns a non-nil error.
func Load(r io.Reader) ([]domain.ReactorUnit, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read registry header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, nil, fmt.Errorf("registry table missing required column %q", c)
		}
	}

	var (
		units   []domain.ReactorUnit
		rowErrs []RowError
		seen    = map[string]string{} // docket -> unit name
		row     = 1
	)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: err})
			continue
		}

		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		unit, err := parseRow(get)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Name: get("name"), Err: err})
			continue
		}

		if prev, dup := seen[unit.DocketNumber]; dup {
			rowErrs = append(rowErrs, RowError{
				Row:  row,
				Name: unit.Name,
				Err:  fmt.Errorf("%w %s (already used by %s)", errDuplicateDocket, unit.DocketNumber, prev),
			})
			continue
		}
		seen[unit.DocketNumber] = unit.Name

		units = append(units, unit)
	}

	return units, rowErrs, nil
}

func parseRow(get func(string) string) (domain.ReactorUnit, error) {
	name := get("name")
	if name == "" {
		return domain.ReactorUnit{}, errors.New("missing unit name")
	}

	docket := get("docket_number")
	if docket == "" {
		return domain.ReactorUnit{}, errMissingDocket
	}

	latStr, lonStr := get("latitude"), get("longitude")
	if latStr == "" || lonStr == "" {
		return domain.ReactorUnit{}, errMissingCoordinates
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.ReactorUnit{}, fmt.Errorf("parse latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.ReactorUnit{}, fmt.Errorf("parse longitude %q: %w", lonStr, err)
	}

	rtype := domain.ReactorType(strings.ToUpper(get("reactor_type")))
	if !rtype.Valid() {
		return domain.ReactorUnit{}, fmt.Errorf("unrecognized reactor type %q", get("reactor_type"))
	}

	unit := domain.ReactorUnit{
		Name:              name,
		DocketNumber:      docket,
		LicenseNumber:     get("license_number"),
		Location:          get("location"),
		ReactorType:       rtype,
		ContainmentType:   get("containment_type"),
		NSSSSupplier:      get("nsss_supplier"),
		ArchitectEngineer: get("architect_engineer"),
		Constructor:       get("constructor"),
		ParentCompany:     get("parent_company"),
		Licensee:          get("licensee"),
		ParentWebsite:     get("parent_website"),
		Coordinates:       domain.Coordinates{Latitude: lat, Longitude: lon},
		NRCSiteURL:        get("nrc_site_url"),
		Dates: domain.LicenseDates{
			ConstructionPermit:  get("construction_permit"),
			OperatingLicense:    get("operating_license"),
			CommercialOperation: get("commercial_operation"),
			LicenseRenewed:      get("license_renewed"),
			LicenseExpires:      get("license_expires"),
			SubsequentRenewal:   get("subsequent_renewal"),
		},
	}

	if s := get("nrc_region"); s != "" {
		region, err := strconv.Atoi(s)
		if err != nil || region < 1 || region > 4 {
			return domain.ReactorUnit{}, fmt.Errorf("invalid nrc_region %q", s)
		}
		unit.NRCRegion = region
	}
	if s := get("licensed_mwt"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.ReactorUnit{}, fmt.Errorf("parse licensed_mwt %q: %w", s, err)
		}
		unit.LicensedMWt = v
	}
	if s := get("capacity_mwe"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return domain.ReactorUnit{}, fmt.Errorf("parse capacity_mwe %q: %w", s, err)
		}
		unit.CapacityMWe = v
	}

	deriveLicenseLifecycle(&unit)
	return unit, nil
}

// deriveLicenseLifecycle fills the license status, licensed term, current
// age, and remaining-term fields from the date columns, relative to the
// domain clock. Unparseable dates leave the corresponding field nil.
func deriveLicenseLifecycle(unit *domain.ReactorUnit) {
	switch {
	case unit.Dates.SubsequentRenewal != "":
		unit.LicenseStatus = domain.LicenseSubsequentRenewal
	case unit.Dates.LicenseRenewed != "":
		unit.LicenseStatus = domain.LicenseFirstRenewal
	default:
		unit.LicenseStatus = domain.LicenseOriginal
	}
	unit.LicenseYears = unit.LicenseStatus.Years()

	now := domain.Clock().Now()

	if t, ok := parseDate(unit.Dates.CommercialOperation); ok {
		age := int(now.Sub(t).Hours() / 24 / 365)
		unit.CurrentAge = &age
	}
	if t, ok := parseDate(unit.Dates.LicenseExpires); ok {
		remaining := round1(t.Sub(now).Hours() / 24 / 365)
		unit.TimeRemaining = &remaining
		if unit.LicenseYears > 0 {
			pct := round1(remaining / float64(unit.LicenseYears) * 100)
			unit.PctLicenseRemaining = &pct
		}
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
