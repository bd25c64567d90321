package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeDelta is a signed offset in days, hours, and minutes. Components
// default to zero and carry independent signs, so {Days: -1, Hours: 20}
// means "the day before at 20:00" relative to a midnight anchor.
type TimeDelta struct {
	Days    int
	Hours   int
	Minutes int
}

// Duration converts the delta to an absolute time.Duration.
func (d TimeDelta) Duration() time.Duration {
	return time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute
}

// Shift returns t moved by the delta. Only the instant changes; the
// location of t is preserved.
func (d TimeDelta) Shift(t time.Time) time.Time {
	return t.Add(d.Duration())
}

// IsZero reports whether every component is zero.
func (d TimeDelta) IsZero() bool {
	return d.Days == 0 && d.Hours == 0 && d.Minutes == 0
}

func (d TimeDelta) String() string {
	if d.IsZero() {
		return "0m"
	}
	s := ""
	if d.Days != 0 {
		s += fmt.Sprintf("%dd", d.Days)
	}
	if d.Hours != 0 {
		s = appendComponent(s, d.Hours, "h")
	}
	if d.Minutes != 0 {
		s = appendComponent(s, d.Minutes, "m")
	}
	return s
}

func appendComponent(s string, v int, unit string) string {
	if s != "" && v > 0 {
		return s + fmt.Sprintf("+%d%s", v, unit)
	}
	return s + fmt.Sprintf("%d%s", v, unit)
}

var deltaComponentRe = regexp.MustCompile(`^([+-]?\d+)([dhm])`)

// ParseTimeDelta parses a compact delta such as "-1d20h" or "30m". Each
// component carries its own sign; an unsigned component is positive, so
// "-1d20h" is one day back plus twenty hours forward. Components must
// appear in day, hour, minute order, each at most once.
func ParseTimeDelta(s string) (TimeDelta, error) {
	var d TimeDelta
	if s == "" {
		return d, fmt.Errorf("empty time delta")
	}
	rest := s
	order := map[string]int{"d": 0, "h": 1, "m": 2}
	last := -1
	for rest != "" {
		match := deltaComponentRe.FindStringSubmatch(rest)
		if match == nil {
			return TimeDelta{}, fmt.Errorf("invalid time delta %q", s)
		}
		v, err := strconv.Atoi(match[1])
		if err != nil {
			return TimeDelta{}, fmt.Errorf("invalid time delta %q: %w", s, err)
		}
		unit := match[2]
		if order[unit] <= last {
			return TimeDelta{}, fmt.Errorf("invalid time delta %q: components out of order", s)
		}
		last = order[unit]
		switch unit {
		case "d":
			d.Days = v
		case "h":
			d.Hours = v
		case "m":
			d.Minutes = v
		}
		rest = rest[len(match[0]):]
	}
	return d, nil
}
