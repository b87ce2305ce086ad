// Package timestamp converts recognizer timestamps (hh:mm:ss.mmm) to and from
// millisecond offsets.
package timestamp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a timestamp does not have the h:m:s.ms shape.
var ErrMalformed = errors.New("malformed timestamp")

// ToMs converts "hh:mm:ss.mmm" to milliseconds.
// The fractional part is read as a whole number of milliseconds.
func ToMs(ts string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, ts)
	}

	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, ts)
	}

	fields := []string{parts[0], parts[1], secParts[0], secParts[1]}
	values := make([]int64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, ts)
		}
		values[i] = n
	}

	return values[0]*3600000 + values[1]*60000 + values[2]*1000 + values[3], nil
}

// Format renders milliseconds as zero-padded "hh:mm:ss.mmm".
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
