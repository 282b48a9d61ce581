package service

import (
	"strings"
	"time"

	"github.com/noah-isme/lesson-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lesson-ledger-api/pkg/errors"
)

const (
	defaultWindowDays = 30
	dateOnlyLayout    = "2006-01-02"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateOnlyLayout,
}

// DateRangeOptions selects the normalisation variant for a call site.
type DateRangeOptions struct {
	// DayInclusive moves the upper bound forward a day and the lower bound
	// back a day, then truncates both to midnight. Used by teacher lookups.
	DayInclusive bool
	// Open yields no range at all when neither date is supplied.
	Open bool
}

// DateRangeNormalizer turns optional start/end inputs into a concrete window.
//
// startDate names the later boundary and endDate the earlier one, matching
// the legacy "look back from" query parameters. Bounds supplied in the other
// order are swapped, so From <= To always holds.
type DateRangeNormalizer struct {
	windowDays int
	now        func() time.Time
}

// NewDateRangeNormalizer constructs a normalizer with the default look-back window.
func NewDateRangeNormalizer(windowDays int, now func() time.Time) *DateRangeNormalizer {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	if now == nil {
		now = time.Now
	}
	return &DateRangeNormalizer{windowDays: windowDays, now: now}
}

// Normalize produces the window for the given inputs. A nil range with a nil
// error is only returned when opts.Open is set and both inputs are empty.
func (n *DateRangeNormalizer) Normalize(startDate, endDate string, opts DateRangeOptions) (*models.DateRange, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if startDate == "" && endDate == "" && opts.Open {
		return nil, nil
	}

	start, err := parseOptionalDate("startDate", startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("endDate", endDate)
	if err != nil {
		return nil, err
	}

	if !start.IsZero() && !end.IsZero() && start.Equal(end) {
		day := startOfDay(start)
		return &models.DateRange{From: day, To: endOfDay(day)}, nil
	}

	upper := start
	if upper.IsZero() {
		upper = n.now().UTC()
	}
	lower := end
	if lower.IsZero() {
		lower = upper.AddDate(0, 0, -n.windowDays)
	}
	if lower.After(upper) {
		lower, upper = upper, lower
	}

	if opts.DayInclusive {
		upper = startOfDay(upper.AddDate(0, 0, 1))
		lower = startOfDay(lower.AddDate(0, 0, -1))
	}

	return &models.DateRange{From: lower, To: upper}, nil
}

// Window builds the conventional [startDate, endDate] window used by the
// latest-lesson report. The lower bound is open when startDate is empty and
// the upper bound defaults to now. A date-only upper bound covers that whole
// day.
func (n *DateRangeNormalizer) Window(startDate, endDate string) (models.DateRange, error) {
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)
	from, err := parseOptionalDate("startDate", startDate)
	if err != nil {
		return models.DateRange{}, err
	}
	to, err := parseOptionalDate("endDate", endDate)
	if err != nil {
		return models.DateRange{}, err
	}
	wholeDay := isDateOnly(endDate)
	if to.IsZero() {
		to = n.now().UTC()
	}
	if !from.IsZero() && from.After(to) {
		from, to = to, from
		wholeDay = isDateOnly(startDate)
	}
	if wholeDay {
		to = endOfDay(to)
	}
	return models.DateRange{From: from, To: to}, nil
}

// ParseDate parses a date or timestamp in one of the accepted layouts.
func ParseDate(field, raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, appErrors.Clone(appErrors.ErrInvalidDate, "invalid "+field+": "+raw)
}

func parseOptionalDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return ParseDate(field, raw)
}

func isDateOnly(raw string) bool {
	_, err := time.Parse(dateOnlyLayout, raw)
	return err == nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
