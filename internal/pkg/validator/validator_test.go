package validator

import (
	"testing"
	"time"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-02-30"); ok {
		t.Error("IsValidDate accepted an impossible date")
	}
	date, ok := IsValidDate("2026-01-15")
	if !ok {
		t.Fatal("IsValidDate rejected a valid date")
	}
	if date.Day() != 15 || date.Month() != time.January {
		t.Errorf("IsValidDate parsed wrong date: %v", date)
	}
}

func TestIsFutureDate(t *testing.T) {
	if IsFutureDate(time.Now().UTC().AddDate(0, 0, -1)) {
		t.Error("yesterday reported as future")
	}
	// A timestamp earlier today stays valid, e.g. a morning shift entered
	// after checkout.
	if IsFutureDate(time.Now().UTC().Add(-time.Minute)) {
		t.Error("earlier today reported as future")
	}
	if IsFutureDate(time.Now().UTC()) {
		t.Error("now reported as future")
	}
	if !IsFutureDate(time.Now().UTC().AddDate(0, 0, 2)) {
		t.Error("day after tomorrow not reported as future")
	}
}

func TestIsValidMonth(t *testing.T) {
	for _, m := range []int{1, 6, 12} {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = false, want true", m)
		}
	}
	for _, m := range []int{0, 13, -1} {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = true, want false", m)
		}
	}
}
