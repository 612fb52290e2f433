package internal

import "math"

// VehicleType selects between land and nautical velocity units.
type VehicleType uint8

const (
	VehicleTrain VehicleType = iota
	VehicleRoad
	VehicleShip
	VehicleAircraft
)

// UnitConversion scales an internal quantity to its display unit.
type UnitConversion struct {
	Factor float64
}

// ToDisplay converts an internal value to the displayed value.
func (u UnitConversion) ToDisplay(input int64, round bool) int64 {
	if round {
		return int64(math.Round(float64(input) * u.Factor))
	}
	return int64(float64(input) * u.Factor)
}

// FromDisplay converts a displayed value back to the internal unit and
// divides the result by divider.
func (u UnitConversion) FromDisplay(input int64, round bool, divider int64) int64 {
	if round {
		return int64(math.Round(float64(input) / u.Factor / float64(divider)))
	}
	return int64(float64(input) / u.Factor / float64(divider))
}

// Units describes one unit system: its conversion, the system template
// that renders it, and the decimal places embedded in the converted value.
type Units struct {
	Conversion    UnitConversion
	Template      uint16
	DecimalPlaces int
}

// UnitsLong is a unit system with a short and a long rendering.
type UnitsLong struct {
	Conversion    UnitConversion
	Short         uint16
	Long          uint16
	DecimalPlaces int
}

var unitsVelocityCalendar = []Units{
	{UnitConversion{1.0}, SysUnitsVelocityImperial, 0},
	{UnitConversion{1.609344}, SysUnitsVelocityMetric, 0},
	{UnitConversion{0.44704}, SysUnitsVelocitySI, 0},
	{UnitConversion{0.578125}, SysUnitsVelocityGameUnitsDay, 1},
	{UnitConversion{0.868976}, SysUnitsVelocityKnots, 0},
}

var unitsVelocityRealtime = []Units{
	{UnitConversion{1.0}, SysUnitsVelocityImperial, 0},
	{UnitConversion{1.609344}, SysUnitsVelocityMetric, 0},
	{UnitConversion{0.44704}, SysUnitsVelocitySI, 0},
	{UnitConversion{0.289352}, SysUnitsVelocityGameUnitsSec, 1},
	{UnitConversion{0.868976}, SysUnitsVelocityKnots, 0},
}

var unitsPower = []Units{
	{UnitConversion{1.0}, SysUnitsPowerImperial, 0},
	{UnitConversion{1.01387}, SysUnitsPowerMetric, 0},
	{UnitConversion{0.745699}, SysUnitsPowerSI, 0},
}

// Indexed by power*3 + weight.
var unitsPowerToWeight = []Units{
	{UnitConversion{0.907185}, SysUnitsPowerImperialToWeightImperial, 1},
	{UnitConversion{1.0}, SysUnitsPowerImperialToWeightMetric, 1},
	{UnitConversion{1.0}, SysUnitsPowerImperialToWeightSI, 1},
	{UnitConversion{0.919768}, SysUnitsPowerMetricToWeightImperial, 1},
	{UnitConversion{1.01387}, SysUnitsPowerMetricToWeightMetric, 1},
	{UnitConversion{1.01387}, SysUnitsPowerMetricToWeightSI, 1},
	{UnitConversion{0.676487}, SysUnitsPowerSIToWeightImperial, 1},
	{UnitConversion{0.745699}, SysUnitsPowerSIToWeightMetric, 1},
	{UnitConversion{0.745699}, SysUnitsPowerSIToWeightSI, 1},
}

var unitsWeight = []UnitsLong{
	{UnitConversion{1.102311}, SysUnitsWeightShortImperial, SysUnitsWeightLongImperial, 0},
	{UnitConversion{1.0}, SysUnitsWeightShortMetric, SysUnitsWeightLongMetric, 0},
	{UnitConversion{1000.0}, SysUnitsWeightShortSI, SysUnitsWeightLongSI, 0},
}

var unitsVolume = []UnitsLong{
	{UnitConversion{264.172}, SysUnitsVolumeShortImperial, SysUnitsVolumeLongImperial, 0},
	{UnitConversion{1000.0}, SysUnitsVolumeShortMetric, SysUnitsVolumeLongMetric, 0},
	{UnitConversion{1.0}, SysUnitsVolumeShortSI, SysUnitsVolumeLongSI, 0},
}

var unitsForce = []Units{
	{UnitConversion{0.224809}, SysUnitsForceImperial, 0},
	{UnitConversion{0.101972}, SysUnitsForceMetric, 0},
	{UnitConversion{0.001}, SysUnitsForceSI, 0},
}

// The imperial factor is rounded to 3 so heights display as whole feet.
var unitsHeight = []Units{
	{UnitConversion{3.0}, SysUnitsHeightImperial, 0},
	{UnitConversion{1.0}, SysUnitsHeightMetric, 0},
	{UnitConversion{1.0}, SysUnitsHeightSI, 0},
}

// Time families, indexed by 0 for calendar units and 1 for wallclock units.
var (
	unitsDaysOrSeconds   = []Units{{UnitConversion{1}, SysUnitsDays, 0}, {UnitConversion{2}, SysUnitsSeconds, 0}}
	unitsMonthsOrMinutes = []Units{{UnitConversion{1}, SysUnitsMonths, 0}, {UnitConversion{1}, SysUnitsMinutes, 0}}
	unitsYearsOrPeriods  = []Units{{UnitConversion{1}, SysUnitsYears, 0}, {UnitConversion{1}, SysUnitsPeriods, 0}}
	unitsYearsOrMinutes  = []Units{{UnitConversion{1}, SysUnitsYears, 0}, {UnitConversion{12}, SysUnitsMinutes, 0}}
)

// UnitSettings holds the selected index of every unit family. An index
// outside its table selects entry 0.
type UnitSettings struct {
	Velocity         uint8
	VelocityNautical uint8
	Power            uint8
	Weight           uint8
	Volume           uint8
	Force            uint8
	Height           uint8
}

func pick[T any](table []T, index int) T {
	if index < 0 || index >= len(table) {
		return table[0]
	}
	return table[index]
}

func wallclockIndex(wallclock bool) int {
	if wallclock {
		return 1
	}
	return 0
}

// VelocityUnits returns the velocity units for a vehicle type.
func (s UnitSettings) VelocityUnits(vt VehicleType, wallclock bool) Units {
	setting := s.Velocity
	if vt == VehicleShip || vt == VehicleAircraft {
		setting = s.VelocityNautical
	}
	if wallclock {
		return pick(unitsVelocityRealtime, int(setting))
	}
	return pick(unitsVelocityCalendar, int(setting))
}

// PowerUnits returns the selected power units.
func (s UnitSettings) PowerUnits() Units { return pick(unitsPower, int(s.Power)) }

// PowerToWeightUnits returns the units for the selected power and weight pair.
func (s UnitSettings) PowerToWeightUnits() Units {
	return pick(unitsPowerToWeight, int(s.Power)*3+int(s.Weight))
}

// WeightUnits returns the selected weight units.
func (s UnitSettings) WeightUnits() UnitsLong { return pick(unitsWeight, int(s.Weight)) }

// VolumeUnits returns the selected volume units.
func (s UnitSettings) VolumeUnits() UnitsLong { return pick(unitsVolume, int(s.Volume)) }

// ForceUnits returns the selected force units.
func (s UnitSettings) ForceUnits() Units { return pick(unitsForce, int(s.Force)) }

// HeightUnits returns the selected height units.
func (s UnitSettings) HeightUnits() Units { return pick(unitsHeight, int(s.Height)) }

// TimeUnits returns the time family unit for a control code.
func TimeUnits(code rune, wallclock bool) (Units, bool) {
	idx := wallclockIndex(wallclock)
	switch code {
	case SCCUnitsDaysOrSeconds:
		return unitsDaysOrSeconds[idx], true
	case SCCUnitsMonthsOrMinutes:
		return unitsMonthsOrMinutes[idx], true
	case SCCUnitsYearsOrPeriods:
		return unitsYearsOrPeriods[idx], true
	case SCCUnitsYearsOrMinutes:
		return unitsYearsOrMinutes[idx], true
	}
	return Units{}, false
}

// SpeedToDisplay converts an internal speed to the display speed. The
// conversion truncates to match historic behaviour.
func (s UnitSettings) SpeedToDisplay(speed int64, vt VehicleType, wallclock bool) int64 {
	return s.VelocityUnits(vt, wallclock).Conversion.ToDisplay(speed, false)
}

// DisplayToSpeed converts a display speed back to the internal speed.
func (s UnitSettings) DisplayToSpeed(speed int64, vt VehicleType, wallclock bool) int64 {
	return s.VelocityUnits(vt, wallclock).Conversion.FromDisplay(speed, true, 1)
}

// KmhishToDisplay converts a km-ish/h speed (1 unit = 1/1.6 mph) to the
// display speed.
func (s UnitSettings) KmhishToDisplay(speed int64, vt VehicleType, wallclock bool) int64 {
	return s.VelocityUnits(vt, wallclock).Conversion.ToDisplay(speed*10, false) / 16
}

// DisplayToKmhish converts a display speed to a km-ish/h speed.
func (s UnitSettings) DisplayToKmhish(speed int64, vt VehicleType, wallclock bool) int64 {
	return s.VelocityUnits(vt, wallclock).Conversion.FromDisplay(speed*16, true, 10)
}

// PackVelocity packs a km-ish/h speed and vehicle type into one velocity
// parameter value.
func PackVelocity(speed uint64, vt VehicleType) uint64 {
	return uint64(vt)<<56 | speed&(1<<56-1)
}

// UnpackVelocity is the inverse of PackVelocity.
func UnpackVelocity(v uint64) (uint64, VehicleType) {
	return v & (1<<56 - 1), VehicleType(v >> 56)
}
