package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"student@univ.edu", "first.last+tag@dept.univ.ac.uk"}
	invalid := []string{"", "no-at-sign", "a@b", "spaces in@univ.edu"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Fatalf("%q should be valid", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Fatalf("%q should be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Fatal("short password should fail")
	}
	if ok, msg := ValidatePassword("longenough"); !ok {
		t.Fatalf("valid password rejected: %s", msg)
	}
}

func TestValidateDacCount(t *testing.T) {
	cases := []struct {
		count int
		want  bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, true},
		{5, false},
	}

	for _, tc := range cases {
		if ok, _ := ValidateDacCount(tc.count); ok != tc.want {
			t.Fatalf("count %d: got %v, want %v", tc.count, ok, tc.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  title\x00 "); got != "title" {
		t.Fatalf("got %q, want %q", got, "title")
	}
}
