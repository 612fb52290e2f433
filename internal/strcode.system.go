package internal

import "fmt"

// Indices of the well-known templates in TableSystem. A language pack
// supplies their text under the keys in systemStringNames.
const (
	sysNull uint16 = iota
	SysUndefined
	SysJustRawString

	SysFormatDateLong
	SysFormatDateShort
	SysFormatDateTiny
	SysFormatDateISO

	SysCurrencyShortKilo
	SysCurrencyShortMega
	SysCurrencyShortGiga
	SysCurrencyShortTera

	SysUnitsVelocityImperial
	SysUnitsVelocityMetric
	SysUnitsVelocitySI
	SysUnitsVelocityGameUnitsDay
	SysUnitsVelocityKnots
	SysUnitsVelocityGameUnitsSec

	SysUnitsPowerImperial
	SysUnitsPowerMetric
	SysUnitsPowerSI

	SysUnitsPowerImperialToWeightImperial
	SysUnitsPowerImperialToWeightMetric
	SysUnitsPowerImperialToWeightSI
	SysUnitsPowerMetricToWeightImperial
	SysUnitsPowerMetricToWeightMetric
	SysUnitsPowerMetricToWeightSI
	SysUnitsPowerSIToWeightImperial
	SysUnitsPowerSIToWeightMetric
	SysUnitsPowerSIToWeightSI

	SysUnitsWeightShortImperial
	SysUnitsWeightShortMetric
	SysUnitsWeightShortSI
	SysUnitsWeightLongImperial
	SysUnitsWeightLongMetric
	SysUnitsWeightLongSI

	SysUnitsVolumeShortImperial
	SysUnitsVolumeShortMetric
	SysUnitsVolumeShortSI
	SysUnitsVolumeLongImperial
	SysUnitsVolumeLongMetric
	SysUnitsVolumeLongSI

	SysUnitsForceImperial
	SysUnitsForceMetric
	SysUnitsForceSI

	SysUnitsHeightImperial
	SysUnitsHeightMetric
	SysUnitsHeightSI

	SysUnitsDays
	SysUnitsSeconds
	SysUnitsMonths
	SysUnitsMinutes
	SysUnitsYears
	SysUnitsPeriods

	// One entry per EntityKind, in EntityKind order.
	SysUnknownCompany
	SysUnknownPresident
	SysUnknownTown
	SysUnknownVehicle
	SysUnknownStation
	SysUnknownIndustry
	SysUnknownEngine
	SysUnknownGroup
	SysUnknownSign
	SysUnknownDepot
	SysUnknownWaypoint

	SysFormatCompanyName
	SysFormatPresidentName
	SysFormatTownName
	SysFormatVehicleName
	SysFormatStationName
	SysFormatIndustryName
	SysFormatEngineName
	SysFormatGroupName
	SysFormatSignName
	SysFormatDepotName
	SysFormatWaypointName

	sysFixedCount
)

// Ranges at the end of the system table.
const (
	SysDayNumber1st   = sysFixedCount
	SysMonthAbbrevJan = SysDayNumber1st + 31
	SysMonthJan       = SysMonthAbbrevJan + 12
	SysStringCount    = SysMonthJan + 12
)

// SysID returns the identifier of a system template.
func SysID(index uint16) StringID {
	return MakeStringID(TableSystem, index)
}

var monthKeys = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

var entityKeys = [entityKindCount]string{
	"COMPANY", "PRESIDENT", "TOWN", "VEHICLE", "STATION", "INDUSTRY",
	"ENGINE", "GROUP", "SIGN", "DEPOT", "WAYPOINT",
}

var systemStringNames = buildSystemStringNames()

func buildSystemStringNames() map[string]uint16 {
	names := map[string]uint16{
		"STR_UNDEFINED":       SysUndefined,
		"STR_JUST_RAW_STRING": SysJustRawString,

		"STR_FORMAT_DATE_LONG":  SysFormatDateLong,
		"STR_FORMAT_DATE_SHORT": SysFormatDateShort,
		"STR_FORMAT_DATE_TINY":  SysFormatDateTiny,
		"STR_FORMAT_DATE_ISO":   SysFormatDateISO,

		"STR_CURRENCY_SHORT_KILO": SysCurrencyShortKilo,
		"STR_CURRENCY_SHORT_MEGA": SysCurrencyShortMega,
		"STR_CURRENCY_SHORT_GIGA": SysCurrencyShortGiga,
		"STR_CURRENCY_SHORT_TERA": SysCurrencyShortTera,

		"STR_UNITS_VELOCITY_IMPERIAL":       SysUnitsVelocityImperial,
		"STR_UNITS_VELOCITY_METRIC":         SysUnitsVelocityMetric,
		"STR_UNITS_VELOCITY_SI":             SysUnitsVelocitySI,
		"STR_UNITS_VELOCITY_GAMEUNITS_DAY":  SysUnitsVelocityGameUnitsDay,
		"STR_UNITS_VELOCITY_KNOTS":          SysUnitsVelocityKnots,
		"STR_UNITS_VELOCITY_GAMEUNITS_SEC":  SysUnitsVelocityGameUnitsSec,
		"STR_UNITS_POWER_IMPERIAL":          SysUnitsPowerImperial,
		"STR_UNITS_POWER_METRIC":            SysUnitsPowerMetric,
		"STR_UNITS_POWER_SI":                SysUnitsPowerSI,
		"STR_UNITS_WEIGHT_SHORT_IMPERIAL":   SysUnitsWeightShortImperial,
		"STR_UNITS_WEIGHT_SHORT_METRIC":     SysUnitsWeightShortMetric,
		"STR_UNITS_WEIGHT_SHORT_SI":         SysUnitsWeightShortSI,
		"STR_UNITS_WEIGHT_LONG_IMPERIAL":    SysUnitsWeightLongImperial,
		"STR_UNITS_WEIGHT_LONG_METRIC":      SysUnitsWeightLongMetric,
		"STR_UNITS_WEIGHT_LONG_SI":          SysUnitsWeightLongSI,
		"STR_UNITS_VOLUME_SHORT_IMPERIAL":   SysUnitsVolumeShortImperial,
		"STR_UNITS_VOLUME_SHORT_METRIC":     SysUnitsVolumeShortMetric,
		"STR_UNITS_VOLUME_SHORT_SI":         SysUnitsVolumeShortSI,
		"STR_UNITS_VOLUME_LONG_IMPERIAL":    SysUnitsVolumeLongImperial,
		"STR_UNITS_VOLUME_LONG_METRIC":      SysUnitsVolumeLongMetric,
		"STR_UNITS_VOLUME_LONG_SI":          SysUnitsVolumeLongSI,
		"STR_UNITS_FORCE_IMPERIAL":          SysUnitsForceImperial,
		"STR_UNITS_FORCE_METRIC":            SysUnitsForceMetric,
		"STR_UNITS_FORCE_SI":                SysUnitsForceSI,
		"STR_UNITS_HEIGHT_IMPERIAL":         SysUnitsHeightImperial,
		"STR_UNITS_HEIGHT_METRIC":           SysUnitsHeightMetric,
		"STR_UNITS_HEIGHT_SI":               SysUnitsHeightSI,
		"STR_UNITS_DAYS":                    SysUnitsDays,
		"STR_UNITS_SECONDS":                 SysUnitsSeconds,
		"STR_UNITS_MONTHS":                  SysUnitsMonths,
		"STR_UNITS_MINUTES":                 SysUnitsMinutes,
		"STR_UNITS_YEARS":                   SysUnitsYears,
		"STR_UNITS_PERIODS":                 SysUnitsPeriods,
	}

	systems := [3]string{"IMPERIAL", "METRIC", "SI"}
	for p, power := range systems {
		for w, weight := range systems {
			key := fmt.Sprintf("STR_UNITS_POWER_%s_TO_WEIGHT_%s", power, weight)
			names[key] = SysUnitsPowerImperialToWeightImperial + uint16(p*3+w)
		}
	}
	for i, kind := range entityKeys {
		names["STR_UNKNOWN_"+kind] = SysUnknownCompany + uint16(i)
		names["STR_FORMAT_"+kind+"_NAME"] = SysFormatCompanyName + uint16(i)
	}
	for day := 1; day <= 31; day++ {
		names[fmt.Sprintf("STR_DAY_NUMBER_%d%s", day, ordinalSuffix(day))] = SysDayNumber1st + uint16(day-1)
	}
	for i, month := range monthKeys {
		names["STR_MONTH_ABBREV_"+month] = SysMonthAbbrevJan + uint16(i)
		names["STR_MONTH_"+month] = SysMonthJan + uint16(i)
	}
	return names
}

// SystemStringIndex looks up the system table index for a well-known key.
func SystemStringIndex(key string) (uint16, bool) {
	idx, ok := systemStringNames[key]
	return idx, ok
}

// SystemStringKeys returns every well-known key.
func SystemStringKeys() []string {
	keys := make([]string, 0, len(systemStringNames))
	for k := range systemStringNames {
		keys = append(keys, k)
	}
	return keys
}

func ordinalSuffix(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return "TH"
	case n%10 == 1:
		return "ST"
	case n%10 == 2:
		return "ND"
	case n%10 == 3:
		return "RD"
	default:
		return "TH"
	}
}
