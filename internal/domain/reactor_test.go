package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestReactorTypeValid(t *testing.T) {
	assert.True(t, ReactorPWR.Valid())
	assert.True(t, ReactorBWR.Valid())
	assert.False(t, ReactorType("HTGR").Valid())
	assert.False(t, ReactorType("").Valid())
	assert.False(t, ReactorType("pwr").Valid(), "codes are case-sensitive; the loader upper-cases input")
}

func TestLicenseStatusYears(t *testing.T) {
	assert.Equal(t, 40, LicenseOriginal.Years())
	assert.Equal(t, 60, LicenseFirstRenewal.Years())
	assert.Equal(t, 80, LicenseSubsequentRenewal.Years())
}

func TestSetClock(t *testing.T) {
	frozen := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	assert.Equal(t, frozen, Clock().Now())

	SetClock(nil)
	assert.WithinDuration(t, time.Now(), Clock().Now(), time.Second)
}
