package strcode

import "github.com/itsatony/go-strcode/internal"

// ConvertSpeedToDisplay converts an internal speed to the speed shown to
// the user under the snapshot's unit selection.
func ConvertSpeedToDisplay(snap *Snapshot, speed int64, vt VehicleType) int64 {
	return snap.Settings.Units.SpeedToDisplay(speed, vt, snap.Wallclock)
}

// ConvertDisplaySpeedToSpeed converts a displayed speed back to the
// internal unit.
func ConvertDisplaySpeedToSpeed(snap *Snapshot, speed int64, vt VehicleType) int64 {
	return snap.Settings.Units.DisplayToSpeed(speed, vt, snap.Wallclock)
}

// ConvertKmhishSpeedToDisplay converts a km-ish/h speed to the displayed
// speed.
func ConvertKmhishSpeedToDisplay(snap *Snapshot, speed int64, vt VehicleType) int64 {
	return snap.Settings.Units.KmhishToDisplay(speed, vt, snap.Wallclock)
}

// ConvertDisplaySpeedToKmhish converts a displayed speed to km-ish/h.
func ConvertDisplaySpeedToKmhish(snap *Snapshot, speed int64, vt VehicleType) int64 {
	return snap.Settings.Units.DisplayToKmhish(speed, vt, snap.Wallclock)
}

// MaxDigitsValue returns the widest-rendering number of count digits.
// front is the widest non-zero digit and next the widest digit in the
// caller's font.
func MaxDigitsValue(count int, front, next uint8) uint64 {
	return internal.MaxDigitsValue(count, front, next)
}

// MaxValueDigits returns the widest-rendering number with as many digits
// as limit, and at least minCount.
func MaxValueDigits(limit uint64, minCount int, front, next uint8) uint64 {
	return internal.MaxValueDigits(limit, minCount, front, next)
}
