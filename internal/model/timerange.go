package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Time conversion constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

var (
	// ErrInvalidTimeFormat is returned when a time point is neither numeric
	// nor in H:MM:SS or MM:SS form.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidTimeRange is returned when the end of a range does not lie
	// strictly after its start.
	ErrInvalidTimeRange = errors.New("end time must be greater than start time")
)

var (
	longTimePattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
	shortTimePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// TimeRange is a validated cut interval in seconds. End is always strictly
// greater than Start.
type TimeRange struct {
	Start float64
	End   float64
}

// NewTimeRange builds a TimeRange, rejecting inverted or empty intervals.
func NewTimeRange(start, end float64) (TimeRange, error) {
	if start < 0 {
		return TimeRange{}, fmt.Errorf("%w: start %v is negative", ErrInvalidTimeFormat, start)
	}
	if end <= start {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseTimePoint converts a time point string to seconds. Accepted forms are
// H:MM:SS, MM:SS, or a plain number of seconds.
func ParseTimePoint(s string) (float64, error) {
	if m := longTimePattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds, _ := strconv.Atoi(m[3])
		return float64(hours*SecondsPerHour + minutes*SecondsPerMinute + seconds), nil
	}
	if m := shortTimePattern.FindStringSubmatch(s); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		return float64(minutes*SecondsPerMinute + seconds), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return v, nil
}

// FormatSeconds renders seconds as HH:MM:SS, or MM:SS when under an hour.
func FormatSeconds(seconds float64) string {
	total := int(seconds)
	hours := total / SecondsPerHour
	minutes := (total % SecondsPerHour) / SecondsPerMinute
	secs := total % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// UnmarshalJSON accepts {"start": ..., "end": ...} where each bound is
// either a JSON number or a time string, and validates the interval.
func (tr *TimeRange) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start json.RawMessage `json:"start"`
		End   json.RawMessage `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, err := parseBound(raw.Start)
	if err != nil {
		return err
	}
	end, err := parseBound(raw.End)
	if err != nil {
		return err
	}

	parsed, err := NewTimeRange(start, end)
	if err != nil {
		return err
	}
	*tr = parsed
	return nil
}

// MarshalJSON emits the canonical numeric form.
func (tr TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}{Start: tr.Start, End: tr.End})
}

func parseBound(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: missing bound", ErrInvalidTimeFormat)
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, string(raw))
	}
	return ParseTimePoint(s)
}
