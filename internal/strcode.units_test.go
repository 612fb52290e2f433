package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitConversion(t *testing.T) {
	metric := UnitConversion{1.609344}
	assert.Equal(t, int64(161), metric.ToDisplay(100, true))
	assert.Equal(t, int64(160), metric.ToDisplay(100, false))
	assert.Equal(t, int64(100), metric.FromDisplay(161, true, 1))
	assert.Equal(t, int64(10), metric.FromDisplay(161, true, 10))
}

func TestUnitSettings_Selection(t *testing.T) {
	t.Run("land vehicles use the velocity setting", func(t *testing.T) {
		s := UnitSettings{Velocity: 1, VelocityNautical: 4}
		assert.Equal(t, SysUnitsVelocityMetric, s.VelocityUnits(VehicleTrain, false).Template)
		assert.Equal(t, SysUnitsVelocityMetric, s.VelocityUnits(VehicleRoad, false).Template)
	})

	t.Run("ships and aircraft use the nautical setting", func(t *testing.T) {
		s := UnitSettings{Velocity: 1, VelocityNautical: 4}
		assert.Equal(t, SysUnitsVelocityKnots, s.VelocityUnits(VehicleShip, false).Template)
		assert.Equal(t, SysUnitsVelocityKnots, s.VelocityUnits(VehicleAircraft, false).Template)
	})

	t.Run("game units depend on the clock", func(t *testing.T) {
		s := UnitSettings{Velocity: 3}
		assert.Equal(t, SysUnitsVelocityGameUnitsDay, s.VelocityUnits(VehicleTrain, false).Template)
		assert.Equal(t, SysUnitsVelocityGameUnitsSec, s.VelocityUnits(VehicleTrain, true).Template)
	})

	t.Run("out of range selects the first entry", func(t *testing.T) {
		s := UnitSettings{Velocity: 200, Power: 9, Weight: 9, Volume: 9, Force: 9, Height: 9}
		assert.Equal(t, SysUnitsVelocityImperial, s.VelocityUnits(VehicleTrain, false).Template)
		assert.Equal(t, SysUnitsPowerImperial, s.PowerUnits().Template)
		assert.Equal(t, SysUnitsPowerImperialToWeightImperial, s.PowerToWeightUnits().Template)
		assert.Equal(t, SysUnitsWeightShortImperial, s.WeightUnits().Short)
		assert.Equal(t, SysUnitsVolumeLongImperial, s.VolumeUnits().Long)
		assert.Equal(t, SysUnitsForceImperial, s.ForceUnits().Template)
		assert.Equal(t, SysUnitsHeightImperial, s.HeightUnits().Template)
	})

	t.Run("power to weight pairs both settings", func(t *testing.T) {
		s := UnitSettings{Power: 2, Weight: 1}
		assert.Equal(t, SysUnitsPowerSIToWeightMetric, s.PowerToWeightUnits().Template)
		assert.Equal(t, 1, s.PowerToWeightUnits().DecimalPlaces)
	})
}

func TestTimeUnits(t *testing.T) {
	tests := []struct {
		name      string
		code      rune
		wallclock bool
		template  uint16
		factor    float64
	}{
		{"days", SCCUnitsDaysOrSeconds, false, SysUnitsDays, 1},
		{"seconds", SCCUnitsDaysOrSeconds, true, SysUnitsSeconds, 2},
		{"months", SCCUnitsMonthsOrMinutes, false, SysUnitsMonths, 1},
		{"minutes", SCCUnitsMonthsOrMinutes, true, SysUnitsMinutes, 1},
		{"years", SCCUnitsYearsOrPeriods, false, SysUnitsYears, 1},
		{"periods", SCCUnitsYearsOrPeriods, true, SysUnitsPeriods, 1},
		{"years or minutes", SCCUnitsYearsOrMinutes, true, SysUnitsMinutes, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := TimeUnits(tt.code, tt.wallclock)
			assert.True(t, ok)
			assert.Equal(t, tt.template, u.Template)
			assert.Equal(t, tt.factor, u.Conversion.Factor)
		})
	}

	_, ok := TimeUnits(SCCComma, false)
	assert.False(t, ok)
}

func TestVelocityConversions(t *testing.T) {
	s := UnitSettings{Velocity: 1}
	// 160 km-ish/h is 100 mph, shown as 160 km/h.
	assert.Equal(t, int64(160), s.KmhishToDisplay(160, VehicleTrain, false))
	assert.Equal(t, int64(159), s.DisplayToKmhish(160, VehicleTrain, false))
	assert.Equal(t, int64(160), s.SpeedToDisplay(100, VehicleTrain, false))
	assert.Equal(t, int64(100), s.DisplayToSpeed(161, VehicleTrain, false))
}

func TestPackVelocity(t *testing.T) {
	packed := PackVelocity(123, VehicleShip)
	speed, vt := UnpackVelocity(packed)
	assert.Equal(t, uint64(123), speed)
	assert.Equal(t, VehicleShip, vt)

	speed, vt = UnpackVelocity(42)
	assert.Equal(t, uint64(42), speed)
	assert.Equal(t, VehicleTrain, vt)
}
