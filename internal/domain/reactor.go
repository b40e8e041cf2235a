package domain

// ReactorType identifies the reactor technology.
type ReactorType string

const (
	ReactorPWR ReactorType = "PWR" // pressurized-water reactor
	ReactorBWR ReactorType = "BWR" // boiling-water reactor
)

// Valid reports whether t is a recognized technology code.
func (t ReactorType) Valid() bool {
	return t == ReactorPWR || t == ReactorBWR
}

// LicenseStatus reflects how far a unit's operating license has been renewed.
type LicenseStatus string

const (
	LicenseOriginal          LicenseStatus = "original"
	LicenseFirstRenewal      LicenseStatus = "first_renewal"
	LicenseSubsequentRenewal LicenseStatus = "subsequent_renewal"
)

// Years returns the licensed operating term for the status: 40 for an
// original license, 60 after first renewal, 80 after subsequent renewal.
func (s LicenseStatus) Years() int {
	switch s {
	case LicenseFirstRenewal:
		return 60
	case LicenseSubsequentRenewal:
		return 80
	default:
		return 40
	}
}

// Coordinates is a WGS-84 latitude/longitude pair as stored in the registry,
// six decimal places. Site grouping compares these values exactly.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LicenseDates holds the license lifecycle milestones as ISO-8601 date
// strings from the master table. Empty means the milestone has not occurred
// (or was not recorded).
type LicenseDates struct {
	ConstructionPermit  string `json:"construction_permit,omitempty"`
	OperatingLicense    string `json:"operating_license,omitempty"`
	CommercialOperation string `json:"commercial_operation,omitempty"`
	LicenseRenewed      string `json:"license_renewed,omitempty"`
	LicenseExpires      string `json:"license_expires,omitempty"`
	SubsequentRenewal   string `json:"subsequent_renewal,omitempty"`
}

// ReactorUnit is one physical reactor unit (not a site). The docket number is
// unique per unit and coordinates are required.
type ReactorUnit struct {
	Name              string       `json:"name"`
	DocketNumber      string       `json:"docket_number"`
	LicenseNumber     string       `json:"license_number,omitempty"`
	Location          string       `json:"location,omitempty"`
	NRCRegion         int          `json:"nrc_region,omitempty"` // 1-4
	ReactorType       ReactorType  `json:"reactor_type"`
	ContainmentType   string       `json:"containment_type,omitempty"`
	NSSSSupplier      string       `json:"nsss_supplier,omitempty"`
	ArchitectEngineer string       `json:"architect_engineer,omitempty"`
	Constructor       string       `json:"constructor,omitempty"`
	ParentCompany     string       `json:"parent_company,omitempty"`
	Licensee          string       `json:"licensee,omitempty"`
	ParentWebsite     string       `json:"parent_website,omitempty"`
	LicensedMWt       float64      `json:"licensed_mwt,omitempty"`
	CapacityMWe       int          `json:"capacity_mwe,omitempty"`
	Dates             LicenseDates `json:"dates"`
	Coordinates       Coordinates  `json:"coordinates"`
	NRCSiteURL        string       `json:"nrc_site_url,omitempty"`

	// License lifecycle derivations, computed at load time against the
	// package clock.
	LicenseStatus       LicenseStatus `json:"license_status"`
	LicenseYears        int           `json:"license_years"`
	CurrentAge          *int          `json:"current_age"`
	TimeRemaining       *float64      `json:"time_remaining"`        // years, one decimal
	PctLicenseRemaining *float64      `json:"pct_license_remaining"` // percent of licensed term

	// Performance is merged in from the capacity aggregator; nil when the
	// unit could not be matched to the daily power feed.
	Performance *CapacityFactorSummary `json:"performance"`
}

// Site is a derived grouping of units sharing identical coordinates. It is
// recomputed on every run and never persisted independently of its members.
type Site struct {
	Coordinates Coordinates `json:"coordinates"`
	UnitCount   int         `json:"unit_count"`
	CapacityMWe int         `json:"capacity_mwe"`
	UnitNames   []string    `json:"unit_names"`
}
