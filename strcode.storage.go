package strcode

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// PackStorage persists language pack sources by isocode.
//
// Implementations must be safe for concurrent use and return copies, so
// callers may modify what they get without affecting the store.
type PackStorage interface {
	// Get returns the pack source stored under isocode.
	Get(ctx context.Context, isocode string) (*LanguagePackSource, error)

	// List returns the stored isocodes, sorted.
	List(ctx context.Context) ([]string, error)

	// Save stores src under its header isocode, replacing any previous
	// version.
	Save(ctx context.Context, src *LanguagePackSource) error

	// Delete removes the pack stored under isocode.
	Delete(ctx context.Context, isocode string) error

	// Close releases resources. Further calls fail.
	Close() error
}

// PackStorageDriver opens PackStorage instances from a connection string.
type PackStorageDriver interface {
	Open(dsn string) (PackStorage, error)
}

var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]PackStorageDriver)
)

// RegisterPackStorageDriver makes a storage driver available by name.
// It panics if driver is nil or the name is taken.
func RegisterPackStorageDriver(name string, driver PackStorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgStorageNilDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgStorageDuplicateDrv + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenPackStorage opens a storage using a registered driver.
func OpenPackStorage(driverName, dsn string) (PackStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageError(ErrMsgStorageUnknownDriver, driverName, "", nil)
	}
	return driver.Open(dsn)
}

// ListPackStorageDrivers returns the registered driver names, sorted.
func ListPackStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadLanguagePack fetches a pack source from storage and compiles it.
func LoadLanguagePack(ctx context.Context, storage PackStorage, isocode string, logger *zap.Logger) (*LanguagePack, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src, err := storage.Get(ctx, isocode)
	if err != nil {
		return nil, err
	}
	pack, err := CompileLanguagePack(src, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug(LogMsgStorageLoaded, zap.String(LogFieldIsoCode, isocode), zap.Int(LogFieldStrings, pack.Len()))
	return pack, nil
}

func newStorageClosedError(driver string) error {
	return NewStorageError(ErrMsgStorageClosed, driver, "", nil)
}

// copyPackSource returns a deep copy of src.
func copyPackSource(src *LanguagePackSource) *LanguagePackSource {
	if src == nil {
		return nil
	}
	out := &LanguagePackSource{Header: src.Header}
	out.Header.Genders = append([]string(nil), src.Header.Genders...)
	out.Header.Cases = append([]string(nil), src.Header.Cases...)
	out.Strings = make([]PackString, len(src.Strings))
	for i, s := range src.Strings {
		out.Strings[i] = s
		if s.Cases != nil {
			out.Strings[i].Cases = make(map[string]string, len(s.Cases))
			for k, v := range s.Cases {
				out.Strings[i].Cases[k] = v
			}
		}
	}
	return out
}

func validateSaveSource(src *LanguagePackSource, driver string) error {
	if src == nil || src.Header.IsoCode == "" {
		return NewStorageError(ErrMsgPackMissingIsoCode, driver, "", nil)
	}
	return nil
}
