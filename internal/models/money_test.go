package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"123.45", 12345},
		{"0.01", 1},
		{"-42.50", -4250},
		{"1000", 100000},
		{"0.005", 1}, // rounds half up
	}
	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCents("not a number")
	assert.Error(t, err)
}

func TestReaisCentsRoundtrip(t *testing.T) {
	// 0.1 and friends are not exactly representable as float64; the decimal
	// conversion must still land on the right cent.
	assert.Equal(t, int64(10), ReaisToCents(0.1))
	assert.Equal(t, int64(123456), ReaisToCents(1234.56))
	assert.Equal(t, int64(-299), ReaisToCents(-2.99))

	assert.InDelta(t, 1234.56, CentsToReais(123456), 0.000001)
	assert.Equal(t, int64(123456), ReaisToCents(CentsToReais(123456)))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "1234.56", FormatCents(123456))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-12.00", FormatCents(-1200))
	assert.Equal(t, "0.00", FormatCents(0))
}
