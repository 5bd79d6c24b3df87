package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ReportHours are the hours at which the official daily mean temperature is
// sampled. A settlement's mean is only reported when all of them are present.
var ReportHours = []int{1, 7, 13, 19}

// ReportTime is the hour and minute a telegram was recorded at.
type ReportTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewReportTime validates hour (0-23) and minute (0-59).
func NewReportTime(hour, minute int) (ReportTime, error) {
	if hour < 0 || hour > 23 {
		return ReportTime{}, fmt.Errorf("hour %d out of range 0-23", hour)
	}
	if minute < 0 || minute > 59 {
		return ReportTime{}, fmt.Errorf("minute %d out of range 0-59", minute)
	}
	return ReportTime{Hour: hour, Minute: minute}, nil
}

// MustReportTime is like NewReportTime but panics on invalid input.
// Intended for fixtures and tests.
func MustReportTime(hour, minute int) ReportTime {
	t, err := NewReportTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseHHMM parses the 24-hour "HHMM" telegram field, e.g. "0300" or "1910".
// Three-digit values are zero-padded: "930" is 09:30.
func ParseHHMM(s string) (ReportTime, error) {
	s = strings.TrimSpace(s)
	if len(s) == 3 {
		s = "0" + s
	}
	if len(s) != 4 {
		return ReportTime{}, fmt.Errorf("time %q is not in HHMM format", s)
	}
	hour, errH := strconv.Atoi(s[:2])
	mins, errM := strconv.Atoi(s[2:])
	if errH != nil || errM != nil {
		return ReportTime{}, fmt.Errorf("time %q is not in HHMM format", s)
	}
	return NewReportTime(hour, mins)
}

// Compare orders times by hour, then minute. It returns -1, 0 or +1.
func (t ReportTime) Compare(other ReportTime) int {
	if c := cmp.Compare(t.Hour, other.Hour); c != 0 {
		return c
	}
	return cmp.Compare(t.Minute, other.Minute)
}

// Before reports whether t is strictly earlier than other.
func (t ReportTime) Before(other ReportTime) bool {
	return t.Compare(other) < 0
}

// IsReportHour reports whether the hour is one of ReportHours.
func (t ReportTime) IsReportHour() bool {
	return slices.Contains(ReportHours, t.Hour)
}

// HHMM renders the compact telegram form, e.g. "0300".
func (t ReportTime) HHMM() string {
	return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
}

// String renders the time as zero-padded "HH:MM".
func (t ReportTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
