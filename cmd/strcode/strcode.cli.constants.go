package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameEncode   = "encode"
	CmdNameDecode   = "decode"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagPack      = "pack"
	FlagStorage   = "storage"
	FlagLang      = "lang"
	FlagKey       = "key"
	FlagParams    = "params"
	FlagSource    = "source"
	FlagEncoded   = "encoded"
	FlagOutput    = "output"
	FlagFormat    = "format"
	FlagColor     = "color"
	FlagWallclock = "wallclock"
)

// Flag names - short form
const (
	FlagPackShort    = "p"
	FlagLangShort    = "l"
	FlagKeyShort     = "k"
	FlagParamsShort  = "d"
	FlagSourceShort  = "s"
	FlagEncodedShort = "e"
	FlagOutputShort  = "o"
	FlagFormatShort  = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables
const (
	EnvPack     = "STRCODE_PACK"
	EnvStorage  = "STRCODE_STORAGE"
	EnvLang     = "STRCODE_LANG"
	EnvLogLevel = "STRCODE_LOG_LEVEL"
	EnvColor    = "STRCODE_COLOR"
	EnvFile     = ".env"
)

// Log levels accepted in STRCODE_LOG_LEVEL
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Storage flag separator: <driver>:<dsn>
const StorageSeparator = ":"

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand     = "unknown command"
	ErrMsgMissingKey         = "either a string key or a template source is required"
	ErrMsgMissingPack        = "pack file required"
	ErrMsgMissingEncoded     = "encoded string required"
	ErrMsgBadStorageFlag     = "storage must be <driver>:<dsn>"
	ErrMsgMissingLang        = "language isocode required with storage"
	ErrMsgInvalidParams      = "invalid JSON parameters"
	ErrMsgInvalidParam       = "unsupported parameter value"
	ErrMsgReadFileFailed     = "failed to read file"
	ErrMsgLoadPackFailed     = "failed to load language pack"
	ErrMsgWriteOutputFailed  = "failed to write output"
	ErrMsgRenderFailed       = "rendering failed"
	ErrMsgEncodeFailed       = "encoding failed"
	ErrMsgDecodeFailed       = "decoding failed"
	ErrMsgInvalidFormat      = "invalid output format"
	ErrMsgInvalidColor       = "color must be auto, always or never"
	ErrMsgInvalidLogLevel    = "invalid log level"
	ErrMsgLoggerFailed       = "failed to create logger"
	ErrMsgUnknownStringKey   = "unknown string key"
	ErrMsgPackFormatFromPath = "cannot tell pack format from file name"
)

// Log messages and fields
const (
	LogMsgPackLoaded    = "language pack loaded"
	LogMsgRendered      = "string rendered"
	LogMsgValidatedPack = "language pack validated"

	LogFieldPack       = "pack"
	LogFieldKey        = "key"
	LogFieldStorage    = "storage"
	LogFieldParamCount = "params"
	LogFieldErrorCount = "errors"
)

// Help text templates
const (
	HelpMainUsage = `go-strcode - language pack string renderer

Usage:
    strcode <command> [options]

Commands:
    render      Render a string from a language pack
    encode      Encode a string key and parameters into an encoded string
    decode      Decode an encoded string
    validate    Compile a language pack and report errors
    version     Show version information
    help        Show help for a command

Environment:
    STRCODE_PACK        Default pack file (bundled English when unset)
    STRCODE_STORAGE     Default pack storage, <driver>:<dsn>
    STRCODE_LANG        Default isocode to load from storage
    STRCODE_LOG_LEVEL   debug, info, warn or error (default: no logging)
    STRCODE_COLOR       auto, always or never (default: auto)

Use "strcode help <command>" for more information about a command.`

	HelpRenderUsage = `Render a string from a language pack

Usage:
    strcode render [options]

Options:
    -p, --pack <file>        Pack file, yaml or toml, optionally .zst (use "-" for yaml on stdin)
    --storage <driver:dsn>   Load the pack from a pack storage instead
    -l, --lang <isocode>     Pack isocode to load from storage
    -k, --key <key>          String key to render
    -s, --source <template>  Render an ad-hoc template instead of a key
    -e, --encoded <text>     Render an encoded string instead of a key
    -d, --params <json>      JSON array of parameters
    --wallclock              Use wallclock time units
    --color <mode>           auto, always or never
    -o, --output <file>      Output file (default: stdout)

Parameters:
    numbers are numeric parameters, strings are text parameters,
    {"key": "STR_X"} is the id of another string, null is empty.

Examples:
    strcode render -k STR_VEHICLE_COUNT -d '[3]'
    strcode render -p de_DE.toml -k STR_TOWN_POPULATION -d '[1, 1200]'
    strcode render --storage sqlite3:packs.db -l de_DE -k STR_REVISION
    strcode render -s '{COMMA} train{P "" s}' -d '[2]'`

	HelpEncodeUsage = `Encode a string key and parameters

Usage:
    strcode encode [options]

Options:
    -p, --pack <file>        Pack file resolving the key
    --storage <driver:dsn>   Load the pack from a pack storage instead
    -l, --lang <isocode>     Pack isocode to load from storage
    -k, --key <key>          String key
    -d, --params <json>      JSON array of parameters

Examples:
    strcode encode -k STR_VEHICLE_COUNT -d '[3]' > saved.txt
    strcode render -e "$(cat saved.txt)"`

	HelpDecodeUsage = `Decode an encoded string

Usage:
    strcode decode [options]

Options:
    -e, --encoded <text>     Encoded string (use "-" for stdin)
    -F, --format <format>    Output format: text, json (default: text)`

	HelpValidateUsage = `Compile a language pack and report errors

Usage:
    strcode validate [options]

Options:
    -p, --pack <file>        Pack file (use "-" for yaml on stdin)
    --storage <driver:dsn>   Validate a pack held in a pack storage instead
    -l, --lang <isocode>     Pack isocode to load from storage
    -F, --format <format>    Output format: text, json (default: text)

Exit codes:
    0 valid, 3 compile errors, 4 unreadable pack`

	HelpVersionUsage = `Show version information

Usage:
    strcode version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    strcode help [command]`
)

// Version output format templates
const (
	VersionTextTemplate = "go-strcode version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s\nStorage drivers: %s"
	VersionUnknown      = "unknown"
	VersionsFile        = "versions.yaml"
)

// Validation output format templates
const (
	ValidationTextSuccess      = "Language pack %s is valid: %d strings"
	ValidationTextIssueHeader  = "Validation issues:"
	ValidationTextIssueFormat  = "  [%s] %s at line %s, column %s"
	ValidationTextPackIssue    = "  %s"
	ValidationTextErrorSummary = "%d error(s)"
)

// Decode output format templates
const (
	DecodeTextID    = "id: %s"
	DecodeTextParam = "  %d: %s"
	ParamKindNumber = "number"
	ParamKindText   = "text"
	ParamKindEmpty  = "empty"
)

// JSON parameter object keys
const (
	ParamObjectKey = "key"
)

// CLI metadata
const (
	CLIName        = "strcode"
	CLIDescription = "language pack string renderer"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
	FmtParamAtIndex    = "%s at index %d"
	FmtKeyDetail       = "%s: %s"
	JSONIndent         = "  "
)
