package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseTimePoint(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1:02:03", 3723},
		{"00:00:05", 5},
		{"10:30", 630},
		{"0:45", 45},
		{"90", 90},
		{"12.5", 12.5},
	}

	for _, test := range tests {
		got, err := ParseTimePoint(test.input)
		if err != nil {
			t.Fatalf("ParseTimePoint(%q) returned error: %v", test.input, err)
		}
		if got != test.expected {
			t.Errorf("ParseTimePoint(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestParseTimePoint_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1:2:3:4", "::", "1h30m"} {
		if _, err := ParseTimePoint(input); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ParseTimePoint(%q) error = %v, expected ErrInvalidTimeFormat", input, err)
		}
	}
}

func TestFormatSecondsRoundTrip(t *testing.T) {
	// "1:02:03" -> 3723s -> "01:02:03"
	seconds, err := ParseTimePoint("1:02:03")
	if err != nil {
		t.Fatalf("ParseTimePoint failed: %v", err)
	}
	if got := FormatSeconds(seconds); got != "01:02:03" {
		t.Errorf("FormatSeconds(%v) = %q, expected %q", seconds, got, "01:02:03")
	}

	if got := FormatSeconds(125); got != "02:05" {
		t.Errorf("FormatSeconds(125) = %q, expected %q", got, "02:05")
	}
}

func TestNewTimeRange_RejectsInvertedRanges(t *testing.T) {
	tests := []struct {
		start, end float64
	}{
		{10, 5},
		{10, 10},
		{0, 0},
	}

	for _, test := range tests {
		if _, err := NewTimeRange(test.start, test.end); !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("NewTimeRange(%v, %v) error = %v, expected ErrInvalidTimeRange", test.start, test.end, err)
		}
	}

	tr, err := NewTimeRange(5, 10)
	if err != nil {
		t.Fatalf("NewTimeRange(5, 10) returned error: %v", err)
	}
	if tr.Start != 5 || tr.End != 10 {
		t.Errorf("NewTimeRange(5, 10) = %+v", tr)
	}
}

func TestTimeRange_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		start    float64
		end      float64
		wantErr  error
		hasError bool
	}{
		{input: `{"start": 5, "end": 10}`, start: 5, end: 10},
		{input: `{"start": "00:05", "end": "00:10"}`, start: 5, end: 10},
		{input: `{"start": "1:00:00", "end": "1:30:00"}`, start: 3600, end: 5400},
		{input: `{"start": "10", "end": 20.5}`, start: 10, end: 20.5},
		{input: `{"start": "00:10", "end": "00:05"}`, hasError: true, wantErr: ErrInvalidTimeRange},
		{input: `{"start": "bogus", "end": 10}`, hasError: true, wantErr: ErrInvalidTimeFormat},
		{input: `{"start": 5}`, hasError: true, wantErr: ErrInvalidTimeFormat},
	}

	for _, test := range tests {
		var tr TimeRange
		err := json.Unmarshal([]byte(test.input), &tr)
		if test.hasError {
			if err == nil {
				t.Errorf("Unmarshal(%s) expected error, got nil", test.input)
			} else if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				t.Errorf("Unmarshal(%s) error = %v, expected %v", test.input, err, test.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s) returned error: %v", test.input, err)
			continue
		}
		if tr.Start != test.start || tr.End != test.end {
			t.Errorf("Unmarshal(%s) = %+v, expected start=%v end=%v", test.input, tr, test.start, test.end)
		}
	}
}
