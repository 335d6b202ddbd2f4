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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", "", "yesterday"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:30am", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseTimeOfDay(c.input)
		if ok != c.ok || got != c.minutes {
			t.Errorf("ParseTimeOfDay(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.minutes, c.ok)
		}
	}
}

func TestTimeOfDayBefore(t *testing.T) {
	if !TimeOfDayBefore("09:00", "17:00") {
		t.Error("TimeOfDayBefore(09:00, 17:00) = false, want true")
	}
	if TimeOfDayBefore("17:00", "09:00") {
		t.Error("TimeOfDayBefore(17:00, 09:00) = true, want false")
	}
	if TimeOfDayBefore("09:00", "09:00") {
		t.Error("TimeOfDayBefore(09:00, 09:00) = true, want false")
	}
	if TimeOfDayBefore("bad", "09:00") {
		t.Error("TimeOfDayBefore(bad, 09:00) = true, want false")
	}
}

func TestWindowsOverlap(t *testing.T) {
	cases := []struct {
		sa, ea, sb, eb string
		want           bool
	}{
		{"09:00", "13:00", "12:00", "16:00", true},
		{"09:00", "13:00", "13:00", "16:00", false}, // back to back
		{"09:00", "17:00", "10:00", "11:00", true},  // contained
		{"09:00", "10:00", "11:00", "12:00", false},
		{"bad", "10:00", "11:00", "12:00", false},
	}
	for _, c := range cases {
		got := WindowsOverlap(c.sa, c.ea, c.sb, c.eb)
		if got != c.want {
			t.Errorf("WindowsOverlap(%s-%s, %s-%s) = %v, want %v", c.sa, c.ea, c.sb, c.eb, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"forklift", "first_aid"}
	if !IsInSlice("forklift", slice) {
		t.Error("IsInSlice(forklift) = false, want true")
	}
	if IsInSlice("crane", slice) {
		t.Error("IsInSlice(crane) = true, want false")
	}
}
