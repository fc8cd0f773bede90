package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// Time24h is a wall-clock time of day, accepted as "HH:MM" or "HH:MM:SS".
// Adapted from the teacher's domain.Time24h, generalized to accept the
// optional seconds field condition values arrive with (spec.md §4.4.4).
type Time24h string

// ParseTime24h validates and normalizes a wall-clock string into minutes
// since midnight.
func ParseTime24h(raw string) (minutes int, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time format %q: want HH:MM or HH:MM:SS", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	if len(parts) == 3 {
		s, err := strconv.Atoi(parts[2])
		if err != nil || s < 0 || s > 59 {
			return 0, fmt.Errorf("invalid second in %q", raw)
		}
	}
	return h*60 + m, nil
}

// MinutesFromStart converts an absolute wall-clock string into minutes
// elapsed since timeStart (minutes since midnight). Negative results mean
// the clock time is before timeStart.
func MinutesFromStart(clock string, timeStart int) (int, error) {
	abs, err := ParseTime24h(clock)
	if err != nil {
		return 0, err
	}
	return abs - timeStart, nil
}
