package internal

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type commandKind uint8

const (
	cmdValue   commandKind = iota // consumes parameters
	cmdLiteral                    // emits a fixed code or text
	cmdPlural
	cmdGender
	cmdInline
)

type commandDef struct {
	code     rune
	consumes int
	kind     commandKind
	text     string // for literal commands without a code
	// pluralFirst makes a following {P} refer to the first parameter
	// rather than the last.
	pluralFirst bool
}

var commands = map[string]commandDef{
	"RAW_STRING": {code: SCCRawString, consumes: 1},
	"STRING":     {code: SCCString, consumes: 1},
	"STRING1":    {code: SCCString1, consumes: 2},
	"STRING2":    {code: SCCString2, consumes: 3},
	"STRING3":    {code: SCCString3, consumes: 4},
	"STRING4":    {code: SCCString4, consumes: 5},
	"STRING5":    {code: SCCString5, consumes: 6},
	"STRING6":    {code: SCCString6, consumes: 7},
	"STRING7":    {code: SCCString7, consumes: 8},
	"STRING_ID":  {code: SCCStringID, consumes: 1},

	"COMMA":          {code: SCCComma, consumes: 1},
	"DECIMAL":        {code: SCCDecimal, consumes: 2, pluralFirst: true},
	"NUM":            {code: SCCNum, consumes: 1},
	"ZEROFILL_NUM":   {code: SCCZerofillNum, consumes: 2, pluralFirst: true},
	"HEX":            {code: SCCHex, consumes: 1},
	"BYTES":          {code: SCCBytes, consumes: 1},
	"CURRENCY_SHORT": {code: SCCCurrencyShort, consumes: 1},
	"CURRENCY_LONG":  {code: SCCCurrencyLong, consumes: 1},

	"DATE_TINY":  {code: SCCDateTiny, consumes: 1},
	"DATE_SHORT": {code: SCCDateShort, consumes: 1},
	"DATE_LONG":  {code: SCCDateLong, consumes: 1},
	"DATE_ISO":   {code: SCCDateISO, consumes: 1},

	"FORCE":                   {code: SCCForce, consumes: 1},
	"HEIGHT":                  {code: SCCHeight, consumes: 1},
	"POWER":                   {code: SCCPower, consumes: 1},
	"POWER_TO_WEIGHT":         {code: SCCPowerToWeight, consumes: 1},
	"VELOCITY":                {code: SCCVelocity, consumes: 1},
	"VOLUME_SHORT":            {code: SCCVolumeShort, consumes: 1},
	"VOLUME_LONG":             {code: SCCVolumeLong, consumes: 1},
	"WEIGHT_SHORT":            {code: SCCWeightShort, consumes: 1},
	"WEIGHT_LONG":             {code: SCCWeightLong, consumes: 1},
	"UNITS_DAYS_OR_SECONDS":   {code: SCCUnitsDaysOrSeconds, consumes: 1},
	"UNITS_MONTHS_OR_MINUTES": {code: SCCUnitsMonthsOrMinutes, consumes: 1},
	"UNITS_YEARS_OR_PERIODS":  {code: SCCUnitsYearsOrPeriods, consumes: 1},
	"UNITS_YEARS_OR_MINUTES":  {code: SCCUnitsYearsOrMinutes, consumes: 1},

	"COMPANY":        {code: SCCCompanyName, consumes: 1},
	"PRESIDENT_NAME": {code: SCCPresidentName, consumes: 1},
	"TOWN":           {code: SCCTownName, consumes: 1},
	"VEHICLE":        {code: SCCVehicleName, consumes: 1},
	"STATION":        {code: SCCStationName, consumes: 1},
	"INDUSTRY":       {code: SCCIndustryName, consumes: 1},
	"ENGINE":         {code: SCCEngineName, consumes: 1},
	"GROUP":          {code: SCCGroupName, consumes: 1},
	"SIGN":           {code: SCCSignName, consumes: 1},
	"DEPOT":          {code: SCCDepotName, consumes: 1},
	"WAYPOINT":       {code: SCCWaypointName, consumes: 1},

	"STATION_FEATURES": {code: SCCStationFeatures, consumes: 1},
	"COLOUR":           {code: SCCColour, consumes: 1},

	"P":      {code: SCCPluralList, kind: cmdPlural},
	"G":      {code: SCCGenderList, kind: cmdGender},
	"STRINL": {code: SCCStringInline, kind: cmdInline},

	"REV":         {code: SCCRevision, kind: cmdLiteral},
	"NBSP":        {kind: cmdLiteral, text: NBSP},
	"BLUE":        {code: SCCBlue, kind: cmdLiteral},
	"SILVER":      {code: SCCSilver, kind: cmdLiteral},
	"GOLD":        {code: SCCGold, kind: cmdLiteral},
	"RED":         {code: SCCRed, kind: cmdLiteral},
	"PURPLE":      {code: SCCPurple, kind: cmdLiteral},
	"LTBROWN":     {code: SCCLightBrown, kind: cmdLiteral},
	"ORANGE":      {code: SCCOrange, kind: cmdLiteral},
	"GREEN":       {code: SCCGreen, kind: cmdLiteral},
	"YELLOW":      {code: SCCYellow, kind: cmdLiteral},
	"DKGREEN":     {code: SCCDarkGreen, kind: cmdLiteral},
	"CREAM":       {code: SCCCream, kind: cmdLiteral},
	"BROWN":       {code: SCCBrown, kind: cmdLiteral},
	"WHITE":       {code: SCCWhite, kind: cmdLiteral},
	"LTBLUE":      {code: SCCLightBlue, kind: cmdLiteral},
	"GRAY":        {code: SCCGray, kind: cmdLiteral},
	"DKBLUE":      {code: SCCDarkBlue, kind: cmdLiteral},
	"BLACK":       {code: SCCBlack, kind: cmdLiteral},
	"PUSH_COLOUR": {code: SCCPushColour, kind: cmdLiteral},
	"POP_COLOUR":  {code: SCCPopColour, kind: cmdLiteral},
	"TRAIN":       {code: SCCTrain, kind: cmdLiteral},
	"LORRY":       {code: SCCLorry, kind: cmdLiteral},
	"BUS":         {code: SCCBus, kind: cmdLiteral},
	"PLANE":       {code: SCCPlane, kind: cmdLiteral},
	"SHIP":        {code: SCCShip, kind: cmdLiteral},
}

// CommandNames returns the names of every known command, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompileContext is the language metadata a template compiles against.
type CompileContext struct {
	PluralForm int
	Genders    []string
	Cases      []string
	// Resolve maps a string key to its identifier for {STRINL}.
	Resolve func(key string) (StringID, bool)
}

// Compiler turns template source into the control-code form the
// interpreter walks.
type Compiler struct {
	ctx    CompileContext
	logger *zap.Logger
}

// NewCompiler creates a compiler
func NewCompiler(ctx CompileContext, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{ctx: ctx, logger: logger}
}

// Compile compiles one template.
func (c *Compiler) Compile(source string) (string, error) {
	c.logger.Debug(LogMsgCompileStart, zap.Int(LogFieldLength, len(source)))
	tokens, err := NewLexer(source, c.logger).Tokenize()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	args := argState{plural: -1}
	for _, tok := range tokens {
		switch tok.Type {
		case TokenText:
			if containsControlCode(tok.Value) {
				return "", NewCompileError(ErrMsgCompileReservedText, tok.Position, "")
			}
			b.WriteString(tok.Value)
		case TokenCommand:
			if err := c.emitCommand(&b, tok, &args); err != nil {
				return "", err
			}
		}
	}

	c.logger.Debug(LogMsgCompileDone, zap.Int(LogFieldLength, b.Len()))
	return b.String(), nil
}

// CompileCases compiles a template with case variants into a switch-case
// table. Without variants it is the same as Compile.
func (c *Compiler) CompileCases(def string, cases map[string]string) (string, error) {
	compiledDefault, err := c.Compile(def)
	if err != nil {
		return "", err
	}
	if len(cases) == 0 {
		return compiledDefault, nil
	}

	names := make([]string, 0, len(cases))
	for name := range cases {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 255 {
		return "", NewCompileError(ErrMsgCompileTooManyChoices, Position{Line: 1, Column: 1}, "")
	}

	var b strings.Builder
	b.WriteRune(SCCSwitchCase)
	b.WriteByte(byte(len(names)))
	for _, name := range names {
		idx, ok := c.caseIndex(name)
		if !ok {
			return "", NewCompileError(ErrMsgCompileUnknownCase, Position{Line: 1, Column: 1}, name)
		}
		compiled, err := c.Compile(cases[name])
		if err != nil {
			return "", err
		}
		if len(compiled) > 0xFFFF {
			return "", NewCompileError(ErrMsgCompileCaseTooLong, Position{Line: 1, Column: 1}, name)
		}
		b.WriteByte(byte(idx))
		writeUint16(&b, uint16(len(compiled)))
		b.WriteString(compiled)
	}
	if len(compiledDefault) > 0xFFFF {
		return "", NewCompileError(ErrMsgCompileCaseTooLong, Position{Line: 1, Column: 1}, "")
	}
	writeUint16(&b, uint16(len(compiledDefault)))
	b.WriteString(compiledDefault)
	return b.String(), nil
}

// argState tracks the implicit parameter position while compiling.
type argState struct {
	next int
	// plural is the parameter a bare {P} refers to.
	plural int
}

func (c *Compiler) emitCommand(b *strings.Builder, tok Token, args *argState) error {
	def, ok := commands[tok.Value]
	if !ok {
		return NewCompileError(ErrMsgCompileUnknownCommand, tok.Position, tok.Value)
	}

	switch def.kind {
	case cmdLiteral:
		if def.text != "" {
			b.WriteString(def.text)
		} else {
			b.WriteRune(def.code)
		}
		return nil

	case cmdPlural:
		return c.emitChoice(b, tok, def.code, args.plural)

	case cmdGender:
		if tok.Assign != "" {
			idx, ok := indexOf(c.ctx.Genders, tok.Assign)
			if !ok {
				return NewCompileError(ErrMsgCompileUnknownGender, tok.Position, tok.Assign)
			}
			b.WriteRune(SCCGenderIndex)
			b.WriteByte(byte(idx))
			return nil
		}
		return c.emitChoice(b, tok, def.code, args.next)

	case cmdInline:
		if len(tok.Words) != 1 {
			return NewCompileError(ErrMsgCompileMissingWord, tok.Position, tok.Value)
		}
		id, ok := c.resolve(tok.Words[0])
		if !ok {
			return NewCompileError(ErrMsgCompileUnknownString, tok.Position, tok.Words[0])
		}
		if err := c.emitCase(b, tok); err != nil {
			return err
		}
		b.WriteRune(def.code)
		writeUint32(b, uint32(id))
		return nil
	}

	if tok.ArgIndex >= 0 {
		b.WriteRune(SCCArgIndex)
		b.WriteByte(byte(tok.ArgIndex))
		args.next = tok.ArgIndex
	}
	if err := c.emitCase(b, tok); err != nil {
		return err
	}
	b.WriteRune(def.code)
	if def.pluralFirst {
		args.plural = args.next
	} else {
		args.plural = args.next + def.consumes - 1
	}
	args.next += def.consumes
	return nil
}

// emitCase writes a set-case prefix for {CMD.case}.
func (c *Compiler) emitCase(b *strings.Builder, tok Token) error {
	if tok.Case == "" {
		return nil
	}
	idx, ok := c.caseIndex(tok.Case)
	if !ok {
		return NewCompileError(ErrMsgCompileUnknownCase, tok.Position, tok.Case)
	}
	b.WriteRune(SCCSetCase)
	b.WriteByte(byte(idx))
	return nil
}

// emitChoice writes a plural or gender list. A leading numeric word
// overrides the default parameter offset.
func (c *Compiler) emitChoice(b *strings.Builder, tok Token, code rune, offset int) error {
	words := tok.Words
	if len(words) > 0 {
		if n, err := strconv.Atoi(words[0]); err == nil {
			offset = n
			words = words[1:]
		}
	}
	if len(words) == 0 {
		return NewCompileError(ErrMsgCompileMissingWord, tok.Position, tok.Value)
	}
	if offset < 0 || offset > 255 {
		return NewCompileError(ErrMsgCompileBadOffset, tok.Position, strconv.Itoa(offset))
	}
	if len(words) > 255 {
		return NewCompileError(ErrMsgCompileTooManyChoices, tok.Position, tok.Value)
	}

	b.WriteRune(code)
	if code == SCCPluralList {
		b.WriteByte(byte(c.ctx.PluralForm))
	}
	b.WriteByte(byte(offset))
	b.WriteByte(byte(len(words)))
	for _, w := range words {
		if len(w) > 255 {
			return NewCompileError(ErrMsgCompileChoiceTooLong, tok.Position, w)
		}
		b.WriteByte(byte(len(w)))
	}
	for _, w := range words {
		b.WriteString(w)
	}
	return nil
}

func (c *Compiler) caseIndex(name string) (int, bool) {
	idx, ok := indexOf(c.ctx.Cases, name)
	if !ok {
		return 0, false
	}
	// Index 0 is the default case.
	return idx + 1, true
}

func (c *Compiler) resolve(key string) (StringID, bool) {
	if strings.HasPrefix(key, "0x") {
		v, err := strconv.ParseUint(key[2:], 16, 32)
		if err != nil {
			return 0, false
		}
		return StringID(v), true
	}
	if c.ctx.Resolve == nil {
		return 0, false
	}
	return c.ctx.Resolve(key)
}

func indexOf(list []string, name string) (int, bool) {
	for i, v := range list {
		if v == name {
			return i, true
		}
	}
	return 0, false
}

func containsControlCode(s string) bool {
	for _, r := range s {
		if r >= SCCControlStart && r <= SCCControlEnd {
			return true
		}
	}
	return false
}

func writeUint16(b *strings.Builder, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	b.Write(buf[:])
}

func writeUint32(b *strings.Builder, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	b.Write(buf[:])
}
