package internal

import "time"

// YearMonthDay is a calendar date. Month is 0-based, Day is 1-based.
type YearMonthDay struct {
	Year  int64
	Month int
	Day   int
}

// epoch is day 0 of the date parameter: 1 January of year 0 in the
// proleptic Gregorian calendar.
var epoch = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

// DateToYMD converts a count of days since the epoch to a calendar date.
func DateToYMD(date int64) YearMonthDay {
	t := epoch.AddDate(0, 0, int(date))
	return YearMonthDay{Year: int64(t.Year()), Month: int(t.Month()) - 1, Day: t.Day()}
}

// YMDToDate is the inverse of DateToYMD.
func YMDToDate(year int64, month, day int) int64 {
	t := time.Date(int(year), time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	return (t.Unix() - epoch.Unix()) / secondsPerDay
}
