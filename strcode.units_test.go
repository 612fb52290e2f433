package strcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertSpeed(t *testing.T) {
	metric := &Snapshot{Settings: LocaleSettings{Units: UnitSettings{Velocity: 1}}}
	imperial := &Snapshot{}

	assert.Equal(t, int64(160), ConvertSpeedToDisplay(metric, 100, VehicleTrain))
	assert.Equal(t, int64(100), ConvertDisplaySpeedToSpeed(metric, 161, VehicleTrain))
	assert.Equal(t, int64(160), ConvertKmhishSpeedToDisplay(metric, 160, VehicleTrain))
	assert.Equal(t, int64(159), ConvertDisplaySpeedToKmhish(metric, 160, VehicleTrain))

	assert.Equal(t, int64(100), ConvertSpeedToDisplay(imperial, 100, VehicleTrain))
	assert.Equal(t, int64(100), ConvertKmhishSpeedToDisplay(imperial, 160, VehicleTrain))
}

func TestMaxDigits(t *testing.T) {
	assert.Equal(t, uint64(8999), MaxDigitsValue(4, 8, 9))
	assert.Equal(t, uint64(899), MaxValueDigits(123, 1, 8, 9))
	assert.Equal(t, uint64(8999), MaxValueDigits(5, 4, 8, 9))
}
