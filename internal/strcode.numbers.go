package internal

import (
	"fmt"
	"strconv"
	"strings"
)

const maxNumberDigits = 20

// FormatNumber writes number with sep between every group of three digits.
func FormatNumber(b *strings.Builder, number int64, sep string) {
	num := uint64(number)
	if number < 0 {
		b.WriteByte('-')
		num = uint64(-number)
	}

	divisor := uint64(10000000000000000000)
	thousandsOffset := (maxNumberDigits - 1) % 3
	started := false
	for i := 0; i < maxNumberDigits; i++ {
		var quot uint64
		if num >= divisor {
			quot = num / divisor
			num %= divisor
		}
		if quot != 0 {
			started = true
		}
		if started || i == maxNumberDigits-1 {
			b.WriteByte(byte('0' + quot))
			if i%3 == thousandsOffset && i < maxNumberDigits-1 {
				b.WriteString(sep)
			}
		}
		divisor /= 10
	}
}

// FormatPlainNumber writes number without grouping.
func FormatPlainNumber(b *strings.Builder, number int64) {
	b.WriteString(strconv.FormatInt(number, 10))
}

// FormatZerofillNumber writes number padded with zeros to at least count
// characters. The sign counts towards the width.
func FormatZerofillNumber(b *strings.Builder, number int64, count int) {
	fmt.Fprintf(b, "%0*d", count, number)
}

// FormatHexNumber writes number as upper-case hexadecimal with a 0x prefix.
func FormatHexNumber(b *strings.Builder, number uint64) {
	fmt.Fprintf(b, "0x%X", number)
}

// FormatDecimal writes number/10^digits using the group and decimal
// separators. A zero digit count formats the number as a grouped integer.
func FormatDecimal(b *strings.Builder, number int64, digits int, groupSep, decimalSep string) {
	if digits <= 0 {
		FormatNumber(b, number, groupSep)
		return
	}
	if digits > MaxDecimalDigits {
		digits = MaxDecimalDigits
	}
	divisor := uint64(1)
	for i := 0; i < digits; i++ {
		divisor *= 10
	}
	// The sign is written once, in front of the whole part.
	mag := uint64(number)
	if number < 0 {
		b.WriteByte('-')
		mag = uint64(-number)
	}
	FormatNumber(b, int64(mag/divisor), groupSep)
	b.WriteString(decimalSep)
	fmt.Fprintf(b, "%0*d", digits, mag%divisor)
}

var iecPrefixes = [...]string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}

// FormatBytes writes a byte count with a binary prefix and up to three
// significant digits.
func FormatBytes(b *strings.Builder, number int64, decimalSep string) {
	num := uint64(number)
	if number < 0 {
		b.WriteByte('-')
		num = -num
	}

	id := 1
	for num >= 1024*1024 {
		num /= 1024
		id++
	}

	switch {
	case num < 1024:
		id = 0
		fmt.Fprintf(b, "%d", num)
	case num < 1024*10:
		fmt.Fprintf(b, "%d%s%02d", num/1024, decimalSep, (num%1024)*100/1024)
	case num < 1024*100:
		fmt.Fprintf(b, "%d%s%01d", num/1024, decimalSep, (num%1024)*10/1024)
	default:
		fmt.Fprintf(b, "%d", num/1024)
	}

	b.WriteString(NBSP)
	b.WriteString(iecPrefixes[id])
	b.WriteByte('B')
}

// CompactMoney reduces a non-negative amount to thousands, millions,
// billions or trillions, rounding so that an amount never renders as
// 1,000 of one suffix instead of 1 of the next. It returns the reduced
// amount and the system template of the suffix, or 0 when no suffix
// applies.
func CompactMoney(number int64) (int64, uint16) {
	switch {
	case number >= 1_000_000_000_000_000-500_000_000:
		return (number + 500_000_000_000) / 1_000_000_000_000, SysCurrencyShortTera
	case number >= 1_000_000_000_000-500_000:
		return (number + 500_000_000) / 1_000_000_000, SysCurrencyShortGiga
	case number >= 1_000_000_000-500:
		return (number + 500_000) / 1_000_000, SysCurrencyShortMega
	case number >= 1_000_000:
		return (number + 500) / 1_000, SysCurrencyShortKilo
	}
	return number, 0
}

// MaxDigitsForValue returns the number of decimal digits needed to show
// every value up to max.
func MaxDigitsForValue(max uint64) int {
	digits := 1
	for max >= 10 {
		max /= 10
		digits++
	}
	return digits
}

// MaxDigitsValue builds the widest-rendering value of count digits, where
// front is the widest non-zero digit and next the widest digit overall.
// Callers size UI elements by formatting the result.
func MaxDigitsValue(count int, front, next uint8) uint64 {
	val := uint64(next)
	if count > 1 {
		val = uint64(front)
	}
	for ; count > 1; count-- {
		val = 10*val + uint64(next)
	}
	return val
}

// MaxValueDigits is MaxDigitsValue sized for limit, with at least
// minCount digits.
func MaxValueDigits(limit uint64, minCount int, front, next uint8) uint64 {
	return MaxDigitsValue(max(minCount, MaxDigitsForValue(limit)), front, next)
}
