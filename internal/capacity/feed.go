package capacity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

// RowError reports one rejected daily-feed row.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// ReadDailyFeed parses the daily power CSV (Date, Unit, Power header) into
// per-unit record slices in file order. Rows with an unparseable date or an
// out-of-range power value are reported and skipped; an empty power cell is a
// valid record with no data. Only an unreadable header is fatal.
func ReadDailyFeed(r io.Reader) (map[string][]domain.DailyPowerRecord, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read daily feed header: %w", err)
	}

	dateCol, unitCol, powerCol := -1, -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.ToLower(h)) {
		case "date":
			dateCol = i
		case "unit":
			unitCol = i
		case "power":
			powerCol = i
		}
	}
	if dateCol < 0 || unitCol < 0 || powerCol < 0 {
		return nil, nil, fmt.Errorf("daily feed missing required columns (have %v)", header)
	}

	byUnit := make(map[string][]domain.DailyPowerRecord)
	var rowErrs []RowError
	row := 1

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
		if dateCol >= len(rec) || unitCol >= len(rec) || powerCol >= len(rec) {
			rowErrs = append(rowErrs, RowError{Row: row, Err: errors.New("short row")})
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(rec[dateCol]))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: fmt.Errorf("parse date: %w", err)})
			continue
		}

		unit := strings.TrimSpace(rec[unitCol])
		if unit == "" {
			rowErrs = append(rowErrs, RowError{Row: row, Err: errors.New("missing unit name")})
			continue
		}

		var power *float64
		if s := strings.TrimSpace(rec[powerCol]); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Row: row, Err: fmt.Errorf("parse power: %w", err)})
				continue
			}
			if v < 0 || v > 100 {
				rowErrs = append(rowErrs, RowError{Row: row, Err: fmt.Errorf("power %g out of range 0-100", v)})
				continue
			}
			power = &v
		}

		byUnit[unit] = append(byUnit[unit], domain.DailyPowerRecord{
			Date:  date,
			Unit:  unit,
			Power: power,
		})
	}

	return byUnit, rowErrs, nil
}
