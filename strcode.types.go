package strcode

import "github.com/itsatony/go-strcode/internal"

// Core types shared with the interpreter.
type (
	// StringID identifies a template: table in the high 16 bits, index in
	// the low 16 bits.
	StringID = internal.StringID
	// StringTable is the table half of a StringID.
	StringTable = internal.StringTable
	// Parameter is one formatting argument.
	Parameter = internal.Parameter
	// ParamKind is the kind of value a Parameter holds.
	ParamKind = internal.ParamKind
	// TemplateSource looks up compiled template text for an identifier.
	TemplateSource = internal.TemplateSource
	// MapSource is a TemplateSource backed by a map.
	MapSource = internal.MapSource
	// Snapshot is the immutable language state a format call runs against.
	Snapshot = internal.Snapshot
	// Locale is the metadata of a compiled language pack.
	Locale = internal.Locale
	// LocaleSettings holds user separator overrides and unit selections.
	LocaleSettings = internal.LocaleSettings
	// UnitSettings selects the unit system per measured quantity.
	UnitSettings = internal.UnitSettings
	// Currency describes how money is rendered.
	Currency = internal.Currency
	// TextDirection of a language.
	TextDirection = internal.TextDirection
	// VehicleType selects land or nautical velocity units.
	VehicleType = internal.VehicleType
	// EntityKind names the kind of entity a name code refers to.
	EntityKind = internal.EntityKind
	// EntityName describes how to render one entity.
	EntityName = internal.EntityName
	// NameProvider resolves entity identifiers to names.
	NameProvider = internal.NameProvider
	// TownNameGenerator produces town names from a style and a seed.
	TownNameGenerator = internal.TownNameGenerator
)

// Well-known tables.
const (
	TableSystem  = internal.TableSystem
	TableDefault = internal.TableDefault
	TableSpecial = internal.TableSpecial
	TableScript  = internal.TableScript
	TableMod     = internal.TableMod
)

// InvalidStringID formats as the undefined string.
const InvalidStringID = internal.InvalidStringID

// Parameter kinds.
const (
	ParamEmpty  = internal.ParamEmpty
	ParamNum    = internal.ParamNum
	ParamString = internal.ParamString
)

// Vehicle types.
const (
	VehicleTrain    = internal.VehicleTrain
	VehicleRoad     = internal.VehicleRoad
	VehicleShip     = internal.VehicleShip
	VehicleAircraft = internal.VehicleAircraft
)

// Entity kinds.
const (
	EntityCompany   = internal.EntityCompany
	EntityPresident = internal.EntityPresident
	EntityTown      = internal.EntityTown
	EntityVehicle   = internal.EntityVehicle
	EntityStation   = internal.EntityStation
	EntityIndustry  = internal.EntityIndustry
	EntityEngine    = internal.EntityEngine
	EntityGroup     = internal.EntityGroup
	EntitySign      = internal.EntitySign
	EntityDepot     = internal.EntityDepot
	EntityWaypoint  = internal.EntityWaypoint
)

// Text directions.
const (
	TextDirectionLTR = internal.TextDirectionLTR
	TextDirectionRTL = internal.TextDirectionRTL
)

// DefaultCurrency is pounds sterling at rate 1.
var DefaultCurrency = internal.DefaultCurrency

// MakeStringID builds an identifier from its table and index.
func MakeStringID(table StringTable, index uint16) StringID {
	return internal.MakeStringID(table, index)
}

// Int returns a numeric parameter holding a signed value.
func Int(v int64) Parameter { return internal.IntParam(v) }

// Uint returns a numeric parameter holding an unsigned value.
func Uint(v uint64) Parameter { return internal.UintParam(v) }

// Str returns a text parameter.
func Str(s string) Parameter { return internal.StringParam(s) }

// ID returns a numeric parameter holding a string identifier, for
// STRING-style codes.
func ID(id StringID) Parameter { return internal.UintParam(uint64(id)) }

// Velocity returns a parameter for the VELOCITY code: a km-ish/h speed
// with the vehicle type packed in the top byte.
func Velocity(speed uint64, vt VehicleType) Parameter {
	return internal.UintParam(internal.PackVelocity(speed, vt))
}

// SystemStringID returns the fixed id of a well-known system key such as
// STR_UNITS_VELOCITY_METRIC.
func SystemStringID(key string) (StringID, bool) {
	idx, ok := internal.SystemStringIndex(key)
	if !ok {
		return 0, false
	}
	return internal.SysID(idx), true
}
