package energy

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Mode string

const (
	ModeToday Mode = "today"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
	ModeAll   Mode = "all"
)

// Dated is a log row that belongs to a calendar day and optionally to a
// time of day (HH:MM or HH:MM:SS, empty when unknown).
type Dated interface {
	RecordDate() string
	RecordTime() string
}

// Window selects which days of a log collection are returned.
//
// Bounds only apply when both Start and End are set. Rolling enables the
// weight-log behaviour: bounds win over any mode, and week/month without
// bounds mean "since Now minus 7 days / 1 month" with no upper limit.
type Window struct {
	Mode    Mode
	Date    string
	Start   string
	End     string
	Rolling bool
	Now     time.Time
}

// NewWindow validates and normalizes the query parameters of a range query.
func NewWindow(mode, date, start, end string) (Window, error) {
	w := Window{Mode: Mode(strings.ToLower(strings.TrimSpace(mode)))}
	if w.Mode == "" {
		w.Mode = ModeAll
	}
	var err error
	if strings.TrimSpace(date) != "" {
		if w.Date, err = ParseDate(date); err != nil {
			return Window{}, err
		}
	}
	if strings.TrimSpace(start) != "" {
		if w.Start, err = ParseDate(start); err != nil {
			return Window{}, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if w.End, err = ParseDate(end); err != nil {
			return Window{}, err
		}
	}
	return w, nil
}

func (w Window) hasBounds() bool {
	return w.Start != "" && w.End != ""
}

// Includes reports whether a record dated date passes the window.
func (w Window) Includes(date string) bool {
	if w.Mode == ModeToday && w.Date != "" {
		return date == w.Date
	}
	if w.hasBounds() && (w.Rolling || w.Mode == ModeWeek || w.Mode == ModeMonth) {
		return date >= w.Start && date <= w.End
	}
	if w.Rolling && (w.Mode == ModeWeek || w.Mode == ModeMonth) {
		now := w.Now
		if now.IsZero() {
			now = time.Now()
		}
		cutoff := now.AddDate(0, 0, -7)
		if w.Mode == ModeMonth {
			cutoff = now.AddDate(0, -1, 0)
		}
		day, err := time.ParseInLocation(DateLayout, date, now.Location())
		if err != nil {
			return false
		}
		return !day.Before(cutoff)
	}
	return true
}

type DayGroup[T Dated] struct {
	Date    string `json:"date"`
	Records []T    `json:"records"`
}

// Aggregate filters records through w and groups them per day, most recent
// day first. Within a day records are ordered by time of day with unknown
// times first; equal times keep their input order.
func Aggregate[T Dated](records []T, w Window) []DayGroup[T] {
	kept := make([]T, 0, len(records))
	for _, r := range records {
		if w.Includes(r.RecordDate()) {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		di, dj := kept[i].RecordDate(), kept[j].RecordDate()
		if di != dj {
			return di > dj
		}
		return clockOffset(kept[i].RecordTime()) < clockOffset(kept[j].RecordTime())
	})

	groups := make([]DayGroup[T], 0)
	for _, r := range kept {
		n := len(groups)
		if n > 0 && groups[n-1].Date == r.RecordDate() {
			groups[n-1].Records = append(groups[n-1].Records, r)
			continue
		}
		groups = append(groups, DayGroup[T]{Date: r.RecordDate(), Records: []T{r}})
	}
	return groups
}

// clockOffset converts a time of day to its offset from midnight. Missing or
// unreadable values sort as midnight.
func clockOffset(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
		}
	}
	return 0
}

// ParseClock normalizes a time of day to HH:MM:SS. Empty input stays empty.
func ParseClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("%w: invalid time %q, expected HH:MM or HH:MM:SS", ErrInvalidInput, value)
}
