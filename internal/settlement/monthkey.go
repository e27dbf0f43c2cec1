package settlement

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthKey identifies one calendar month. Its string form "M/YYYY" is the
// unique key closed months are stored under.
type MonthKey struct {
	Month int
	Year  int
}

func NewMonthKey(month, year int) (MonthKey, error) {
	if month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("%w: month %d out of range", ErrMalformedInput, month)
	}
	if year < 1 {
		return MonthKey{}, fmt.Errorf("%w: year %d out of range", ErrMalformedInput, year)
	}
	return MonthKey{Month: month, Year: year}, nil
}

func ParseMonthKey(raw string) (MonthKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return MonthKey{}, fmt.Errorf("%w: month key %q", ErrMalformedInput, raw)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: month key %q", ErrMalformedInput, raw)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: month key %q", ErrMalformedInput, raw)
	}
	return NewMonthKey(month, year)
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%d/%d", k.Month, k.Year)
}

// Label is the human form, e.g. "janeiro 2026".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", monthNames[k.Month-1], k.Year)
}

// Bounds returns the first instant of the month and the last instant before
// the next month. Both ends are inclusive when filtering by date.
func (k MonthKey) Bounds() (time.Time, time.Time) {
	start := time.Date(k.Year, time.Month(k.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// Contains reports whether t falls within the month, inclusive on both ends.
func (k MonthKey) Contains(t time.Time) bool {
	start, end := k.Bounds()
	return !t.Before(start) && !t.After(end)
}
