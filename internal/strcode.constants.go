package internal

// Control code codepoints. Every code lives inside a private-use range so
// it can travel through ordinary UTF-8 text unchanged.
const (
	SCCControlStart rune = 0xE000
	SCCControlEnd   rune = 0xE1FF
)

const (
	SCCRecordSeparator rune = SCCControlStart + iota
	SCCEncoded
	SCCEncodedInternal
	SCCEncodedNumeric
	SCCEncodedString

	SCCStringInline
	SCCStringID
	SCCGenderList
	SCCGenderIndex
	SCCPluralList
	SCCArgIndex
	SCCSetCase
	SCCSwitchCase
	SCCRevision
	SCCRawString
	SCCString
	SCCString1
	SCCString2
	SCCString3
	SCCString4
	SCCString5
	SCCString6
	SCCString7

	SCCComma
	SCCDecimal
	SCCNum
	SCCZerofillNum
	SCCHex
	SCCBytes
	SCCCurrencyShort
	SCCCurrencyLong

	SCCDateTiny
	SCCDateShort
	SCCDateLong
	SCCDateISO

	SCCForce
	SCCHeight
	SCCPower
	SCCPowerToWeight
	SCCVelocity
	SCCVolumeShort
	SCCVolumeLong
	SCCWeightShort
	SCCWeightLong
	SCCUnitsDaysOrSeconds
	SCCUnitsMonthsOrMinutes
	SCCUnitsYearsOrPeriods
	SCCUnitsYearsOrMinutes

	SCCCompanyName
	SCCPresidentName
	SCCTownName
	SCCVehicleName
	SCCStationName
	SCCIndustryName
	SCCEngineName
	SCCGroupName
	SCCSignName
	SCCDepotName
	SCCWaypointName

	SCCStationFeatures
	SCCColour

	SCCBlue
	SCCSilver
	SCCGold
	SCCRed
	SCCPurple
	SCCLightBrown
	SCCOrange
	SCCGreen
	SCCYellow
	SCCDarkGreen
	SCCCream
	SCCBrown
	SCCWhite
	SCCLightBlue
	SCCGray
	SCCDarkBlue
	SCCBlack
	SCCPushColour
	SCCPopColour

	SCCTrain
	SCCLorry
	SCCBus
	SCCPlane
	SCCShip
)

// NBSP is the non-breaking space used between numbers and their unit suffix.
const NBSP = "\u00a0"

// Inline diagnostics written into the output instead of failing the call.
const (
	DiagInvalidParameter   = "(invalid parameter)"
	DiagInvalidPlural      = "(invalid PLURAL parameter)"
	DiagInvalidGender      = "(invalid GENDER parameter)"
	DiagTooManyParameters  = "(consumed too many parameters)"
	DiagInvalidEncoded     = "(invalid SCC_ENCODED)"
	DiagInvalidStringID    = "(invalid StringID)"
	DiagInvalidSubStringID = "(invalid sub-StringID)"
	DiagInvalidString      = "(invalid string parameter)"
	DiagRecursionLimit     = "(recursion limit exceeded)"
	DiagUndefinedString    = "(undefined string)"
)

// Defaults
const (
	DefaultMaxDepth  = 100
	MaxDecimalDigits = 18
)

// Codec error messages
const (
	ErrMsgCodecMissingMarker   = "encoded string does not start with an encoded marker"
	ErrMsgCodecBadIdentifier   = "encoded string identifier is not valid hexadecimal"
	ErrMsgCodecBadNumeric      = "numeric record is not valid hexadecimal"
	ErrMsgCodecUnknownTag      = "unknown record tag"
	ErrMsgCodecNestedMarker    = "string record embeds an encoded-string marker"
	ErrMsgCodecReservedText    = "string parameter contains a reserved control code"
	ErrMsgCodecIdentifierRange = "identifier exceeds table range"
)

// Parameter error messages
const (
	ErrMsgParamUnderrun      = "parameter read past end of list"
	ErrMsgParamTypeMismatch  = "parameter read with conflicting type tag"
	ErrMsgParamKindMismatch  = "parameter holds a different kind of value"
	ErrMsgParamBackReference = "back reference outside the parameter list"
)

// Compile error messages
const (
	ErrMsgCompileUnclosedCommand = "unclosed command"
	ErrMsgCompileUnknownCommand  = "unknown command"
	ErrMsgCompileEmptyCommand    = "empty command"
	ErrMsgCompileBadArgIndex     = "invalid argument index"
	ErrMsgCompileBadOffset       = "offset does not fit in one byte"
	ErrMsgCompileChoiceTooLong   = "choice text longer than 255 bytes"
	ErrMsgCompileTooManyChoices  = "more than 255 choices"
	ErrMsgCompileUnknownGender   = "unknown gender"
	ErrMsgCompileUnknownCase     = "unknown case"
	ErrMsgCompileUnknownString   = "unknown string reference"
	ErrMsgCompileCaseTooLong     = "case text longer than 65535 bytes"
	ErrMsgCompileUnterminated    = "unterminated quoted word"
	ErrMsgCompileMissingWord     = "command expects an argument"
	ErrMsgCompileReservedText    = "literal text contains a reserved control code"
)

// Logging messages
const (
	LogMsgFormatStart       = "formatting string"
	LogMsgFormatDone        = "formatted string"
	LogMsgParameterFailure  = "parameter failure replaced with diagnostic"
	LogMsgRecursionLimit    = "recursion limit reached"
	LogMsgUndefinedString   = "string identifier not defined, using fallback"
	LogMsgGenderProbe       = "probing gender of parameter"
	LogMsgEncodedDecodeFail = "encoded string could not be decoded"
	LogMsgTownNameFailure   = "town name generator failed"
	LogMsgBadReference      = "plural or gender list refers to an unusable parameter"
	LogMsgCompileStart      = "compiling template"
	LogMsgCompileDone       = "compiled template"
	LogMsgLexerCreated      = "lexer created"
	LogMsgTokenizerStart    = "tokenizer started"
	LogMsgTokenizerComplete = "tokenizer complete"
)

// Logging fields
const (
	LogFieldStringID = "string_id"
	LogFieldError    = "error"
	LogFieldOffset   = "offset"
	LogFieldDepth    = "depth"
	LogFieldLength   = "length"
	LogFieldCode     = "code"
	LogFieldTokens   = "tokens"
	LogFieldSource   = "source"
	LogFieldDryRun   = "dry_run"
)
