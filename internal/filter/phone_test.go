package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantsIsraeliShapes(t *testing.T) {
	want := []string{"+972501234567", "972501234567", "0501234567"}

	testCases := []struct {
		name       string
		identifier string
	}{
		{"international with plus", "+972501234567"},
		{"international without plus", "972501234567"},
		{"domestic", "0501234567"},
		{"domestic with separators", "050-123 4567"},
		{"international with parens", "+972 (50) 123-4567"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, want, Variants(tc.identifier))
		})
	}
}

func TestVariantsEightDigitNumber(t *testing.T) {
	// Landlines have 8 national digits instead of 9
	assert.ElementsMatch(t,
		[]string{"+97231234567", "97231234567", "031234567"},
		Variants("03-123-4567"))
}

func TestVariantsExactMatchFallback(t *testing.T) {
	testCases := []struct {
		name       string
		identifier string
		want       string
	}{
		{"us number", "+1 (415) 555-0100", "+14155550100"},
		{"username", "alice", "alice"},
		{"too short domestic", "0501234", "0501234"},
		{"too long domestic", "05012345678901", "05012345678901"},
		{"other country code", "442071234567", "442071234567"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, []string{tc.want}, Variants(tc.identifier))
		})
	}
}

func TestIntersects(t *testing.T) {
	assert.True(t, intersects(Variants("0501234567"), Variants("+972501234567")))
	assert.False(t, intersects(Variants("0501234567"), Variants("0501234568")))
	assert.False(t, intersects(Variants("alice"), Variants("Alice")))
}
