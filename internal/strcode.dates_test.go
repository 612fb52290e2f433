package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateToYMD(t *testing.T) {
	tests := []struct {
		name     string
		date     int64
		expected YearMonthDay
	}{
		{"epoch", 0, YearMonthDay{Year: 0, Month: 0, Day: 1}},
		{"year zero is a leap year", 59, YearMonthDay{Year: 0, Month: 1, Day: 29}},
		{"base year 1920", 701265, YearMonthDay{Year: 1920, Month: 0, Day: 1}},
		{"last day of 1920", 701265 + 365, YearMonthDay{Year: 1920, Month: 11, Day: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateToYMD(tt.date))
		})
	}
}

func TestYMDToDate_RoundTrip(t *testing.T) {
	for _, date := range []int64{0, 1, 365, 366, 701265, 730119, 2_000_000} {
		ymd := DateToYMD(date)
		assert.Equal(t, date, YMDToDate(ymd.Year, ymd.Month, ymd.Day), "date %d", date)
	}
	assert.Equal(t, int64(701265), YMDToDate(1920, 0, 1))
}
