// Property-based tests for phone normalization.
package service

import (
	"testing"

	"pgregory.net/rapid"
)

// TestNormalizePhoneProperty tests that every accepted input form of a
// valid Kenyan mobile number normalizes to the same stored value.
func TestNormalizePhoneProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		local := rapid.StringMatching(`[17][0-9]{8}`).Draw(t, "local")
		want := "+254" + local

		inputs := []string{
			local,
			"0" + local,
			"254" + local,
			"+254" + local,
		}

		for _, input := range inputs {
			got, err := NormalizePhone(input)
			if err != nil {
				t.Fatalf("NormalizePhone(%q) failed: %v", input, err)
			}
			if got != want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", input, got, want)
			}
		}
	})
}

// TestNormalizePhoneIdempotentProperty tests that normalization is
// idempotent: re-normalizing a stored value returns it unchanged.
func TestNormalizePhoneIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		local := rapid.StringMatching(`[17][0-9]{8}`).Draw(t, "local")

		once, err := NormalizePhone("0" + local)
		if err != nil {
			t.Fatalf("first normalization failed: %v", err)
		}

		twice, err := NormalizePhone(once)
		if err != nil {
			t.Fatalf("second normalization failed: %v", err)
		}
		if once != twice {
			t.Fatalf("normalization not idempotent: %q != %q", once, twice)
		}
	})
}

// TestNormalizePhoneRejectsBadLeadingDigitProperty tests that local parts
// not starting with 1 or 7 never pass validation.
func TestNormalizePhoneRejectsBadLeadingDigitProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		local := rapid.StringMatching(`[02-689][0-9]{8}`).Draw(t, "local")

		if _, err := NormalizePhone("+254" + local); err == nil {
			t.Fatalf("NormalizePhone(+254%s) unexpectedly accepted", local)
		}
	})
}
