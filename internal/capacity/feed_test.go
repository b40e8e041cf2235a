package capacity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDailyFeed(t *testing.T) {
	t.Run("valid rows grouped by unit", func(t *testing.T) {
		csv := "Date,Unit,Power\n" +
			"2025-06-01,Hatch 1,100\n" +
			"2025-06-02,Hatch 1,98.5\n" +
			"2025-06-01,Hatch 2,\n"

		byUnit, rowErrs, err := ReadDailyFeed(strings.NewReader(csv))

		require.NoError(t, err)
		assert.Empty(t, rowErrs)
		require.Len(t, byUnit["Hatch 1"], 2)
		assert.Equal(t, 100.0, *byUnit["Hatch 1"][0].Power)

		// Empty power cell is a valid record with no data.
		require.Len(t, byUnit["Hatch 2"], 1)
		assert.Nil(t, byUnit["Hatch 2"][0].Power)
	})

	t.Run("bad rows reported and skipped", func(t *testing.T) {
		csv := "Date,Unit,Power\n" +
			"not-a-date,Hatch 1,100\n" +
			"2025-06-01,Hatch 1,250\n" +
			"2025-06-01,,90\n" +
			"2025-06-02,Hatch 1,97\n"

		byUnit, rowErrs, err := ReadDailyFeed(strings.NewReader(csv))

		require.NoError(t, err)
		assert.Len(t, rowErrs, 3)
		require.Len(t, byUnit["Hatch 1"], 1)
		assert.Equal(t, 97.0, *byUnit["Hatch 1"][0].Power)
	})

	t.Run("missing columns is fatal", func(t *testing.T) {
		_, _, err := ReadDailyFeed(strings.NewReader("Date,Name\n2025-06-01,Hatch 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required columns")
	})

	t.Run("empty input is fatal", func(t *testing.T) {
		_, _, err := ReadDailyFeed(strings.NewReader(""))
		require.Error(t, err)
	})
}
