package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"local with leading zero", "0712345678", "+254712345678", true},
		{"stored form", "+254712345678", "+254712345678", true},
		{"country code no plus", "254712345678", "+254712345678", true},
		{"bare local part", "712345678", "+254712345678", true},
		{"one-series number", "0101234567", "+254101234567", true},
		{"spaces and hyphens", "+254 712-345-678", "+254712345678", true},
		{"wrong leading digit", "0812345678", "", false},
		{"too short", "071234567", "", false},
		{"too long", "07123456789", "", false},
		{"letters", "07123a5678", "", false},
		{"empty", "", "", false},
		{"plus only", "+", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if !tt.valid {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Jo"))
	assert.NoError(t, ValidateName("Denis Murerwa"))
	assert.ErrorIs(t, ValidateName("J"), ErrInvalidName)
	assert.ErrorIs(t, ValidateName("  "), ErrInvalidName)

	long := make([]rune, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, ValidateName(string(long)), ErrInvalidName)
	assert.NoError(t, ValidateName(string(long[:50])))
}

func TestValidateNationalID(t *testing.T) {
	assert.NoError(t, ValidateNationalID("12345678"))
	assert.NoError(t, ValidateNationalID("1234567890123"))
	assert.ErrorIs(t, ValidateNationalID("1234567"), ErrInvalidNationalID)
	assert.ErrorIs(t, ValidateNationalID("1234567a"), ErrInvalidNationalID)
	assert.ErrorIs(t, ValidateNationalID(""), ErrInvalidNationalID)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Passw0rd"))
	assert.ErrorIs(t, ValidatePassword("Pass0rd"), ErrWeakPassword)   // too short
	assert.ErrorIs(t, ValidatePassword("password1"), ErrWeakPassword) // no upper
	assert.ErrorIs(t, ValidatePassword("PASSWORD1"), ErrWeakPassword) // no lower
	assert.ErrorIs(t, ValidatePassword("Passwords"), ErrWeakPassword) // no digit
}

func TestValidateMonthKey(t *testing.T) {
	assert.NoError(t, ValidateMonthKey("2024-01"))
	assert.NoError(t, ValidateMonthKey("2024-12"))
	assert.ErrorIs(t, ValidateMonthKey("2024-13"), ErrInvalidMonth)
	assert.ErrorIs(t, ValidateMonthKey("2024-00"), ErrInvalidMonth)
	assert.ErrorIs(t, ValidateMonthKey("2024-1"), ErrInvalidMonth)
	assert.ErrorIs(t, ValidateMonthKey("202401"), ErrInvalidMonth)
	assert.ErrorIs(t, ValidateMonthKey(""), ErrInvalidMonth)
}
