package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrWrongKind is returned by transforms that receive a JSON value of the
// wrong kind. The decoder reports it as a TypeMismatch.
var ErrWrongKind = errors.New("wrong JSON kind")

// ErrInvalidClock is returned for strings that are not a valid "HH:MM" time.
var ErrInvalidClock = errors.New("invalid clock time")

// ClockTimeName is the transform name used for "HH:MM" fields.
const ClockTimeName = "clock"

// ClockTime returns a transform that reads an "HH:MM" string and places it
// on the local calendar date of now() at decode time.
//
// The provider reports no date, so times close to midnight can land on the
// wrong day.
func ClockTime(now func() time.Time) TransformFunc {
	if now == nil {
		now = time.Now
	}

	return func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want string, got %s", ErrWrongKind, kindOf(raw))
		}

		hour, minute, err := parseClock(s)
		if err != nil {
			return nil, err
		}

		today := now()
		return time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, today.Location()), nil
	}
}

func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w %q: want HH:MM", ErrInvalidClock, s)
	}

	hour, err := parseClockPart(parts[0])
	if err != nil || hour > 23 {
		return 0, 0, fmt.Errorf("%w %q: hour out of range", ErrInvalidClock, s)
	}

	minute, err := parseClockPart(parts[1])
	if err != nil || minute > 59 {
		return 0, 0, fmt.Errorf("%w %q: minute out of range", ErrInvalidClock, s)
	}

	return hour, minute, nil
}

// parseClockPart accepts only decimal digits, so signs and spaces are rejected.
func parseClockPart(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, ErrInvalidClock
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidClock
		}
	}
	return strconv.Atoi(s)
}
