package internal

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(fn func(b *strings.Builder)) string {
	var b strings.Builder
	fn(&b)
	return b.String()
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		sep      string
		expected string
	}{
		{"zero", 0, ",", "0"},
		{"below a thousand", 999, ",", "999"},
		{"thousands", 1000, ",", "1,000"},
		{"millions", 1234567, ",", "1,234,567"},
		{"negative", -1234, ",", "-1,234"},
		{"custom separator", 1234567, ".", "1.234.567"},
		{"empty separator", 1234567, "", "1234567"},
		{"max", math.MaxInt64, ",", "9,223,372,036,854,775,807"},
		{"min", math.MinInt64, ",", "-9,223,372,036,854,775,808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(func(b *strings.Builder) { FormatNumber(b, tt.input, tt.sep) })
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		digits   int
		expected string
	}{
		{"no digits groups the number", 123456, 0, "123,456"},
		{"two digits", 123456, 2, "1,234.56"},
		{"zero padded fraction", 1005, 3, "1.005"},
		{"small value", 5, 2, "0.05"},
		{"negative", -123456, 2, "-1,234.56"},
		{"negative below one", -5, 1, "-0.5"},
		{"digits clamped", 1, 40, "0.000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(func(b *strings.Builder) { FormatDecimal(b, tt.input, tt.digits, ",", ".") })
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatSimpleNumbers(t *testing.T) {
	assert.Equal(t, "1234567", render(func(b *strings.Builder) { FormatPlainNumber(b, 1234567) }))
	assert.Equal(t, "-12", render(func(b *strings.Builder) { FormatPlainNumber(b, -12) }))
	assert.Equal(t, "005", render(func(b *strings.Builder) { FormatZerofillNumber(b, 5, 3) }))
	assert.Equal(t, "12345", render(func(b *strings.Builder) { FormatZerofillNumber(b, 12345, 3) }))
	assert.Equal(t, "0xFF", render(func(b *strings.Builder) { FormatHexNumber(b, 255) }))
	assert.Equal(t, "0x0", render(func(b *strings.Builder) { FormatHexNumber(b, 0) }))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"bytes", 500, "500" + NBSP + "B"},
		{"just below a kibibyte", 1023, "1023" + NBSP + "B"},
		{"one and a half kibibytes", 1536, "1.50" + NBSP + "KiB"},
		{"two digits", 15000, "14.6" + NBSP + "KiB"},
		{"three digits", 200 * 1024, "200" + NBSP + "KiB"},
		{"mebibyte", 1 << 20, "1.00" + NBSP + "MiB"},
		{"gibibytes", 5 << 30, "5.00" + NBSP + "GiB"},
		{"negative", -500, "-500" + NBSP + "B"},
		{"most negative", math.MinInt64, "-8.00" + NBSP + "EiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(func(b *strings.Builder) { FormatBytes(b, tt.input, ".") })
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompactMoney(t *testing.T) {
	tests := []struct {
		name       string
		input      int64
		expected   int64
		expectedSx uint16
	}{
		{"no suffix", 999_999, 999_999, 0},
		{"kilo", 2_500_000, 2_500, SysCurrencyShortKilo},
		{"kilo rounds", 1_234_567, 1_235, SysCurrencyShortKilo},
		{"mega", 5_000_000_000, 5_000, SysCurrencyShortMega},
		{"giga", 7_000_000_000_000, 7_000, SysCurrencyShortGiga},
		{"tera", 3_000_000_000_000_000, 3_000, SysCurrencyShortTera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, suffix := CompactMoney(tt.input)
			assert.Equal(t, tt.expected, n)
			assert.Equal(t, tt.expectedSx, suffix)
		})
	}
}

func TestMaxDigitsForValue(t *testing.T) {
	assert.Equal(t, 1, MaxDigitsForValue(0))
	assert.Equal(t, 1, MaxDigitsForValue(9))
	assert.Equal(t, 2, MaxDigitsForValue(10))
	assert.Equal(t, 3, MaxDigitsForValue(999))
	assert.Equal(t, 20, MaxDigitsForValue(math.MaxUint64))
}

func TestMaxDigitsValue(t *testing.T) {
	assert.Equal(t, uint64(9), MaxDigitsValue(1, 8, 9))
	assert.Equal(t, uint64(899), MaxDigitsValue(3, 8, 9))
	assert.Equal(t, uint64(0), MaxDigitsValue(0, 8, 0))
	assert.Equal(t, uint64(8999), MaxValueDigits(1234, 2, 8, 9))
	assert.Equal(t, uint64(899), MaxValueDigits(5, 3, 8, 9))
}
