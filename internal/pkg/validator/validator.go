package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// IsValidEmployeeID accepts HR employee codes such as "EMP001" or "2024-0001".
func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+05:30"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// IsValidClock checks a 24h "HH:MM" wall-clock time.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// IsValidPeriod checks a payroll period: month 1-12 and a four digit year.
func IsValidPeriod(year, month int) bool {
	return month >= 1 && month <= 12 && year >= 1000 && year <= 9999
}
