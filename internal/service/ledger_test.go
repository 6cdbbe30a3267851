package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMonthKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "2024-01"},
		{time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC), "2024-01"},
		{time.Date(2024, time.December, 15, 12, 0, 0, 0, time.UTC), "2024-12"},
		{time.Date(1999, time.September, 9, 9, 9, 9, 0, time.UTC), "1999-09"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthKey(tt.date))
	}
}

// TestMonthKeyProperty tests that any two dates in the same calendar month
// resolve to the same bucket key, and that every key is a valid YYYY-MM
// value.
func TestMonthKeyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		year := rapid.IntRange(1970, 2100).Draw(t, "year")
		month := rapid.IntRange(1, 12).Draw(t, "month")
		dayA := rapid.IntRange(1, 28).Draw(t, "dayA")
		dayB := rapid.IntRange(1, 28).Draw(t, "dayB")

		a := time.Date(year, time.Month(month), dayA, 13, 37, 0, 0, time.UTC)
		b := time.Date(year, time.Month(month), dayB, 1, 2, 3, 0, time.UTC)

		keyA := MonthKey(a)
		keyB := MonthKey(b)

		if keyA != keyB {
			t.Fatalf("same month produced different keys: %q vs %q", keyA, keyB)
		}
		if err := ValidateMonthKey(keyA); err != nil {
			t.Fatalf("MonthKey produced invalid key %q: %v", keyA, err)
		}
	})
}
