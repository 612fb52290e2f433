package internal

import "strings"

// Station facility bits understood by the station-features code.
const (
	StationFacilityTrain     uint64 = 1 << 0
	StationFacilityTruckStop uint64 = 1 << 1
	StationFacilityBusStop   uint64 = 1 << 2
	StationFacilityAirport   uint64 = 1 << 3
	StationFacilityDock      uint64 = 1 << 4
)

// ColourCount is the number of colours selectable with the colour code.
const ColourCount = int(SCCBlack-SCCBlue) + 1

// formatValue handles the codes that render a single value. It reports
// false for codes it does not know.
func (r *run) formatValue(b *strings.Builder, code rune, args *Cursor, nextCase *int, dry bool) (bool, error) {
	switch code {
	case SCCComma:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		FormatNumber(b, v, r.snap.GroupSeparator())

	case SCCDecimal:
		number, err := args.NextInt()
		if err != nil {
			return true, err
		}
		digits, err := args.NextInt()
		if err != nil {
			return true, err
		}
		FormatDecimal(b, number, int(digits), r.snap.GroupSeparator(), r.snap.DecimalSeparator())

	case SCCNum:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		FormatPlainNumber(b, v)

	case SCCZerofillNum:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		count, err := args.NextInt()
		if err != nil {
			return true, err
		}
		FormatZerofillNumber(b, v, int(count))

	case SCCHex:
		v, err := args.NextUint()
		if err != nil {
			return true, err
		}
		FormatHexNumber(b, v)

	case SCCBytes:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		FormatBytes(b, v, r.snap.DecimalSeparator())

	case SCCCurrencyShort, SCCCurrencyLong:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		r.formatCurrency(b, v, code == SCCCurrencyShort, dry)

	case SCCDateTiny, SCCDateISO:
		date, err := args.NextInt()
		if err != nil {
			return true, err
		}
		tmpl := SysFormatDateTiny
		if code == SCCDateISO {
			tmpl = SysFormatDateISO
		}
		ymd := DateToYMD(date)
		// Day and month are zero-padded to two digits.
		params := []Parameter{IntParam(int64(ymd.Day)), IntParam(2), IntParam(int64(ymd.Month + 1)), IntParam(2), IntParam(ymd.Year)}
		r.formatString(b, r.sysTemplate(tmpl), NewCursor(params), 0, false, dry)

	case SCCDateShort:
		date, err := args.NextInt()
		if err != nil {
			return true, err
		}
		ymd := DateToYMD(date)
		params := []Parameter{
			UintParam(uint64(SysID(SysMonthJan + uint16(ymd.Month)))),
			IntParam(ymd.Year),
		}
		r.formatString(b, r.sysTemplate(SysFormatDateShort), NewCursor(params), *nextCase, false, dry)
		*nextCase = 0

	case SCCDateLong:
		date, err := args.NextInt()
		if err != nil {
			return true, err
		}
		ymd := DateToYMD(date)
		params := []Parameter{
			UintParam(uint64(SysID(SysDayNumber1st + uint16(ymd.Day-1)))),
			UintParam(uint64(SysID(SysMonthAbbrevJan + uint16(ymd.Month)))),
			IntParam(ymd.Year),
		}
		r.formatString(b, r.sysTemplate(SysFormatDateLong), NewCursor(params), *nextCase, false, dry)
		*nextCase = 0

	case SCCForce, SCCHeight, SCCPower, SCCPowerToWeight:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		units := r.simpleUnits(code)
		r.formatUnits(b, units.Template, units.Conversion.ToDisplay(v, true), units.DecimalPlaces, dry)

	case SCCVelocity:
		arg, err := args.NextUint()
		if err != nil {
			return true, err
		}
		speed, vt := UnpackVelocity(arg)
		settings := r.snap.Settings.Units
		units := settings.VelocityUnits(vt, r.snap.Wallclock)
		display := settings.KmhishToDisplay(int64(speed), vt, r.snap.Wallclock)
		r.formatUnits(b, units.Template, display, units.DecimalPlaces, dry)

	case SCCVolumeShort, SCCVolumeLong, SCCWeightShort, SCCWeightLong:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		units := r.snap.Settings.Units.WeightUnits()
		if code == SCCVolumeShort || code == SCCVolumeLong {
			units = r.snap.Settings.Units.VolumeUnits()
		}
		tmpl := units.Short
		if code == SCCVolumeLong || code == SCCWeightLong {
			tmpl = units.Long
		}
		r.formatUnits(b, tmpl, units.Conversion.ToDisplay(v, true), units.DecimalPlaces, dry)

	case SCCUnitsDaysOrSeconds, SCCUnitsMonthsOrMinutes, SCCUnitsYearsOrPeriods, SCCUnitsYearsOrMinutes:
		v, err := args.NextInt()
		if err != nil {
			return true, err
		}
		units, _ := TimeUnits(code, r.snap.Wallclock)
		r.formatUnits(b, units.Template, units.Conversion.ToDisplay(v, true), units.DecimalPlaces, dry)

	case SCCStationFeatures:
		v, err := args.NextUint()
		if err != nil {
			return true, err
		}
		stationFeatures(b, v)

	case SCCColour:
		v, err := args.NextUint()
		if err != nil {
			return true, err
		}
		if v < uint64(ColourCount) {
			b.WriteRune(SCCBlue + rune(v))
		}

	default:
		kind, ok := entityCodes[code]
		if !ok {
			return false, nil
		}
		return true, r.formatEntity(b, kind, args, nextCase, dry)
	}
	return true, nil
}

func (r *run) simpleUnits(code rune) Units {
	settings := r.snap.Settings.Units
	switch code {
	case SCCForce:
		return settings.ForceUnits()
	case SCCHeight:
		return settings.HeightUnits()
	case SCCPower:
		return settings.PowerUnits()
	default:
		return settings.PowerToWeightUnits()
	}
}

// formatUnits renders a converted value through its unit template, which
// receives the value and its embedded decimal places.
func (r *run) formatUnits(b *strings.Builder, tmpl uint16, value int64, decimals int, dry bool) {
	params := []Parameter{IntParam(value), IntParam(int64(decimals))}
	r.formatString(b, r.sysTemplate(tmpl), NewCursor(params), 0, false, dry)
}

// formatCurrency renders money in the snapshot currency. Negative amounts
// are wrapped in red.
func (r *run) formatCurrency(b *strings.Builder, number int64, compact, dry bool) {
	cur := r.snap.Currency
	negative := number < 0

	rate := cur.Rate
	if rate == 0 {
		rate = 1
	}
	number *= rate

	if number < 0 {
		b.WriteRune(SCCPushColour)
		b.WriteRune(SCCRed)
		b.WriteByte('-')
		number = -number
	}

	if cur.SymbolPos != 1 {
		b.WriteString(cur.Prefix)
	}

	var suffix uint16
	if compact {
		number, suffix = CompactMoney(number)
	}
	FormatNumber(b, number, r.snap.MoneySeparator())
	if suffix != 0 {
		r.formatString(b, r.sysTemplate(suffix), NewCursor(nil), 0, false, dry)
	}

	if cur.SymbolPos != 0 {
		b.WriteString(cur.Suffix)
	}

	if negative {
		b.WriteRune(SCCPopColour)
	}
}

func stationFeatures(b *strings.Builder, facilities uint64) {
	if facilities&StationFacilityTrain != 0 {
		b.WriteRune(SCCTrain)
	}
	if facilities&StationFacilityTruckStop != 0 {
		b.WriteRune(SCCLorry)
	}
	if facilities&StationFacilityBusStop != 0 {
		b.WriteRune(SCCBus)
	}
	if facilities&StationFacilityDock != 0 {
		b.WriteRune(SCCShip)
	}
	if facilities&StationFacilityAirport != 0 {
		b.WriteRune(SCCPlane)
	}
}

// formatEntity renders the name of a game object. Name lookups are
// skipped during the dry pass; only the parameter is consumed.
func (r *run) formatEntity(b *strings.Builder, kind EntityKind, args *Cursor, nextCase *int, dry bool) error {
	id, err := args.NextUint()
	if err != nil {
		return err
	}
	caseIndex := *nextCase
	*nextCase = 0
	if dry {
		return nil
	}

	var name EntityName
	found := false
	if r.in.config.Names != nil {
		name, found = r.in.config.Names.EntityName(kind, id)
	}
	if !found {
		if tmpl := r.sysTemplate(SysUnknownCompany + uint16(kind)); tmpl != "" {
			r.formatString(b, tmpl, NewCursor(nil), caseIndex, false, false)
		}
		return nil
	}

	if r.scanGender && name.GenderTemplate != InvalidStringID {
		r.getString(b, name.GenderTemplate, NewCursor(nil), caseIndex, false, false)
		return nil
	}
	if name.Custom != "" {
		r.formatString(b, name.Custom, NewCursor(nil), 0, false, false)
		return nil
	}
	tmpl := name.Template
	if tmpl == InvalidStringID {
		tmpl = SysID(SysFormatCompanyName + uint16(kind))
	}
	r.getString(b, tmpl, NewCursor(copyParams(name.Args)), caseIndex, false, false)
	return nil
}
