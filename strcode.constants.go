package strcode

import "time"

// Engine defaults
const (
	DefaultMaxDepth = 100
	// DefaultRevision is rendered by the REV control code.
	DefaultRevision = "dev"
)

// Error code constants for categorization
const (
	ErrCodeParam   = "STRCODE_PARAM"
	ErrCodeCodec   = "STRCODE_CODEC"
	ErrCodePack    = "STRCODE_PACK"
	ErrCodeStorage = "STRCODE_STORAGE"
)

// Metadata keys attached to errors
const (
	MetaKeyOffset   = "offset"
	MetaKeyLength   = "length"
	MetaKeyTag      = "tag"
	MetaKeyReason   = "reason"
	MetaKeyKey      = "key"
	MetaKeyIsoCode  = "isocode"
	MetaKeyRecord   = "record"
	MetaKeyLine     = "line"
	MetaKeyColumn   = "column"
	MetaKeyDriver   = "driver"
	MetaKeyPath     = "path"
	MetaKeyStringID = "string_id"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	ErrMsgParamFailure    = "parameter read failed"
	ErrMsgEncodeFailed    = "encoding string failed"
	ErrMsgDecodeFailed    = "decoding string failed"
	ErrMsgUnknownKey      = "unknown string key"
	ErrMsgNoPack          = "snapshot has no language pack"
	ErrMsgCompileFailed   = "template compilation failed"
	ErrMsgReplaceFailed   = "parameter replacement failed"
	ErrMsgInvalidMaxDepth = "max depth must not be negative"

	// Language pack errors
	ErrMsgPackParseFailed      = "language pack parsing failed"
	ErrMsgPackUnknownFormat    = "unknown language pack format"
	ErrMsgPackBadPluralForm    = "plural form out of range"
	ErrMsgPackTooManyGenders   = "too many genders"
	ErrMsgPackTooManyCases     = "too many cases"
	ErrMsgPackBadTextDir       = "text direction must be ltr or rtl"
	ErrMsgPackBadIsoCode       = "invalid language isocode"
	ErrMsgPackMissingIsoCode   = "language isocode is required"
	ErrMsgPackDuplicateKey     = "duplicate string key"
	ErrMsgPackDuplicateID      = "duplicate string id"
	ErrMsgPackBadID            = "invalid string id"
	ErrMsgPackEmptyKey         = "string key is empty"
	ErrMsgPackTableFull        = "string table is full"
	ErrMsgPackSystemIDMismatch = "system string has a fixed id"

	// Storage errors
	ErrMsgStorageNotFound      = "language pack not found"
	ErrMsgStorageClosed        = "storage is closed"
	ErrMsgStorageUnknownDriver = "unknown storage driver"
	ErrMsgStorageOpenFailed    = "opening storage failed"
	ErrMsgStorageReadFailed    = "reading language pack failed"
	ErrMsgStorageWriteFailed   = "writing language pack failed"
	ErrMsgStorageDeleteFailed  = "deleting language pack failed"
	ErrMsgStorageQueryFailed   = "storage query failed"
	ErrMsgStorageMigrateFailed = "storage migration failed"
	ErrMsgStorageEmptyDSN      = "storage connection string is empty"
	ErrMsgStorageNilDriver     = "storage driver is nil"
	ErrMsgStorageDuplicateDrv  = "storage driver already registered"
	ErrMsgStorageBadIsoCode    = "isocode is not a valid file name"
)

// Log messages
const (
	LogMsgEngineCreated     = "strcode engine created"
	LogMsgFormatKey         = "formatting string by key"
	LogMsgUnknownKey        = "string key not found, rendering undefined string"
	LogMsgCompileSource     = "compiling ad-hoc template"
	LogMsgPackCompiled      = "language pack compiled"
	LogMsgPackStringFailed  = "language pack string failed to compile"
	LogMsgStorageOpened     = "pack storage opened"
	LogMsgStorageLoaded     = "language pack loaded"
	LogMsgStorageSaved      = "language pack saved"
	LogMsgStorageDeleted    = "language pack deleted"
	LogMsgStorageMigrated   = "pack storage schema migrated"
	LogMsgCacheHit          = "pack cache hit"
	LogMsgCacheMiss         = "pack cache miss"
	LogMsgCacheEvicted      = "pack cache entry evicted"
	LogMsgStorageLoadedDir  = "language packs loaded from directory"
	LogMsgStorageCloseError = "closing storage after error failed"
)

// Log field names
const (
	LogFieldKey      = "key"
	LogFieldIsoCode  = "isocode"
	LogFieldStrings  = "strings"
	LogFieldError    = "error"
	LogFieldDriver   = "driver"
	LogFieldPath     = "path"
	LogFieldCount    = "count"
	LogFieldMaxDepth = "max_depth"
)

// Language pack formats and file extensions
const (
	PackFormatYAML = "yaml"
	PackFormatTOML = "toml"

	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtTOML = ".toml"
	ExtZstd = ".zst"

	TextDirLTR = "ltr"
	TextDirRTL = "rtl"
)

// Language pack limits
const (
	MaxPluralForm = 14
	MaxGenders    = 8
	MaxCases      = 16
)

// Storage driver names
const (
	DriverMemory     = "memory"
	DriverFilesystem = "filesystem"
	DriverPostgres   = "postgres"
	DriverSQLite     = "sqlite3"

	// DriverCache labels errors from CachedPackStorage; it is not a
	// registered driver.
	DriverCache = "cache"
)

// Storage defaults
const (
	DefaultPacksTable      = "strcode_packs"
	DefaultQueryTimeout    = 30 * time.Second
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 30 * time.Minute
	DefaultConnMaxIdleTime = 5 * time.Minute
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheMaxEntries = 64
	DefaultNegativeTTL     = 30 * time.Second
	DefaultDirPerm         = 0o755
	DefaultFilePerm        = 0o644
)
