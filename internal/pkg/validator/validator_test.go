package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	valid := []string{"EMP001", "2024-0001", "emp.42_a"}
	invalid := []string{"", "EMP 001", "EMP/001", "emp#1"}
	for _, id := range valid {
		if !IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+05:30", "2024-01-15T10:30:00.123456Z"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	if _, ok := IsValidDateTime("2024-01-15 10:30"); ok {
		t.Error("IsValidDateTime accepted a non ISO8601 value")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input      string
		hour, min  int
		shouldFail bool
	}{
		{"09:45", 9, 45, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"9:45", 0, 0, true},
		{"09:60", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, c := range cases {
		h, m, err := ParseClock(c.input)
		if c.shouldFail {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", c.input)
			}
			if IsValidClock(c.input) {
				t.Errorf("IsValidClock(%q) = true, want false", c.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", c.input, err)
			continue
		}
		if h != c.hour || m != c.min {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", c.input, h, m, c.hour, c.min)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	if !IsValidPeriod(2024, 2) {
		t.Error("IsValidPeriod(2024, 2) = false, want true")
	}
	for _, p := range [][2]int{{2024, 0}, {2024, 13}, {24, 2}} {
		if IsValidPeriod(p[0], p[1]) {
			t.Errorf("IsValidPeriod(%d, %d) = true, want false", p[0], p[1])
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "must be between 1 and 12"},
		{Field: "year", Message: "is required"},
	}
	if got := errs.Error(); got != "month: must be between 1 and 12; year: is required" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["year"] != "is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
