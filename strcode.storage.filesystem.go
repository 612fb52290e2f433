package strcode

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FilesystemConfig configures a FilesystemPackStorage.
type FilesystemConfig struct {
	// Root is the directory holding one file per pack.
	Root string

	// Format is the file format used by Save.
	// Default: yaml
	Format string

	// Compress makes Save write zstd compressed files (<isocode>.yaml.zst).
	// Default: false
	Compress bool

	// LoadConcurrency bounds the packs compiled in parallel by LoadAll.
	// Default: 4
	LoadConcurrency int

	Logger *zap.Logger
}

// DefaultLoadConcurrency is the default LoadAll parallelism.
const DefaultLoadConcurrency = 4

// Filesystem DSN query parameters
const (
	FilesystemParamFormat   = "format"
	FilesystemParamCompress = "compress"
	FilesystemCompressZstd  = "zstd"
)

// FilesystemPackStorage stores pack sources as files named after their
// isocode:
//
//	<root>/
//	  en_GB.yaml
//	  de_DE.toml
//	  fr_FR.yaml.zst
//
// Any of the supported extensions is read; Save writes the configured
// format and removes other variants of the same pack.
type FilesystemPackStorage struct {
	mu      sync.RWMutex
	config  FilesystemConfig
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	closed  bool
}

// FilesystemPackStorageDriver creates FilesystemPackStorage instances.
type FilesystemPackStorageDriver struct{}

func init() {
	RegisterPackStorageDriver(DriverFilesystem, &FilesystemPackStorageDriver{})
}

// Open creates a FilesystemPackStorage. The connection string is the root
// directory, optionally followed by ?format=toml and &compress=zstd.
func (d *FilesystemPackStorageDriver) Open(dsn string) (PackStorage, error) {
	root, query, _ := strings.Cut(dsn, "?")
	config := FilesystemConfig{Root: root}
	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return nil, NewStorageError(ErrMsgStorageOpenFailed, DriverFilesystem, "", err)
		}
		config.Format = values.Get(FilesystemParamFormat)
		config.Compress = values.Get(FilesystemParamCompress) == FilesystemCompressZstd
	}
	return NewFilesystemPackStorage(config)
}

// NewFilesystemPackStorage creates a filesystem storage. The root
// directory is created if it does not exist.
func NewFilesystemPackStorage(config FilesystemConfig) (*FilesystemPackStorage, error) {
	if config.Root == "" {
		return nil, NewStorageError(ErrMsgStorageEmptyDSN, DriverFilesystem, "", nil)
	}
	if config.Format == "" {
		config.Format = PackFormatYAML
	}
	if config.Format != PackFormatYAML && config.Format != PackFormatTOML {
		return nil, NewStorageError(ErrMsgPackUnknownFormat, DriverFilesystem, "", nil)
	}
	if config.LoadConcurrency <= 0 {
		config.LoadConcurrency = DefaultLoadConcurrency
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	if err := os.MkdirAll(config.Root, DefaultDirPerm); err != nil {
		return nil, NewStorageError(ErrMsgStorageOpenFailed, DriverFilesystem, "", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, NewStorageError(ErrMsgStorageOpenFailed, DriverFilesystem, "", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, NewStorageError(ErrMsgStorageOpenFailed, DriverFilesystem, "", err)
	}

	config.Logger.Debug(LogMsgStorageOpened,
		zap.String(LogFieldDriver, DriverFilesystem),
		zap.String(LogFieldPath, config.Root))
	return &FilesystemPackStorage{config: config, encoder: encoder, decoder: decoder}, nil
}

// validateIsoCodeForFilesystem rejects isocodes that are not plain file
// names.
func validateIsoCodeForFilesystem(isocode string) error {
	if isocode == "" || isocode == "." || strings.Contains(isocode, "..") ||
		strings.ContainsAny(isocode, "/\\:*?\"<>|") {
		return NewStorageError(ErrMsgStorageBadIsoCode, DriverFilesystem, isocode, nil)
	}
	return nil
}

// packFileNames lists every file name a pack may be stored under.
func packFileNames(isocode string) []string {
	var names []string
	for _, ext := range []string{ExtYAML, ExtYML, ExtTOML} {
		names = append(names, isocode+ext, isocode+ext+ExtZstd)
	}
	return names
}

func (s *FilesystemPackStorage) fileName(isocode string) string {
	ext := ExtYAML
	if s.config.Format == PackFormatTOML {
		ext = ExtTOML
	}
	if s.config.Compress {
		ext += ExtZstd
	}
	return isocode + ext
}

// Get implements PackStorage
func (s *FilesystemPackStorage) Get(ctx context.Context, isocode string) (*LanguagePackSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateIsoCodeForFilesystem(isocode); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(DriverFilesystem)
	}
	for _, name := range packFileNames(isocode) {
		src, err := s.readFile(filepath.Join(s.config.Root, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, NewStorageError(ErrMsgStorageReadFailed, DriverFilesystem, isocode, err)
		}
		return src, nil
	}
	return nil, NewPackNotFoundError(isocode)
}

// readFile reads and decodes one pack file.
func (s *FilesystemPackStorage) readFile(path string) (*LanguagePackSource, error) {
	format, compressed, ok := PackFormatForPath(path)
	if !ok {
		return nil, NewPackError(ErrMsgPackUnknownFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if compressed {
		data, err = s.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
	}
	return ParseLanguagePack(data, format)
}

// List implements PackStorage
func (s *FilesystemPackStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(DriverFilesystem)
	}
	files, err := s.listFiles()
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(files))
	for code := range files {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// listFiles maps each stored isocode to the file holding it. When a pack
// exists in several variants the first in packFileNames order wins.
func (s *FilesystemPackStorage) listFiles() (map[string]string, error) {
	entries, err := os.ReadDir(s.config.Root)
	if err != nil {
		return nil, NewStorageError(ErrMsgStorageReadFailed, DriverFilesystem, "", err)
	}
	present := make(map[string]bool, len(entries))
	codes := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, _, ok := PackFormatForPath(name); ok {
			present[name] = true
			code := strings.TrimSuffix(name, ExtZstd)
			codes[strings.TrimSuffix(code, filepath.Ext(code))] = true
		}
	}

	files := make(map[string]string, len(codes))
	for code := range codes {
		for _, name := range packFileNames(code) {
			if present[name] {
				files[code] = name
				break
			}
		}
	}
	return files, nil
}

// Save implements PackStorage
func (s *FilesystemPackStorage) Save(ctx context.Context, src *LanguagePackSource) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSaveSource(src, DriverFilesystem); err != nil {
		return err
	}
	isocode := src.Header.IsoCode
	if err := validateIsoCodeForFilesystem(isocode); err != nil {
		return err
	}

	data, err := MarshalLanguagePack(src, s.config.Format)
	if err != nil {
		return NewStorageError(ErrMsgStorageWriteFailed, DriverFilesystem, isocode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newStorageClosedError(DriverFilesystem)
	}
	if s.config.Compress {
		data = s.encoder.EncodeAll(data, nil)
	}

	target := s.fileName(isocode)
	if err := writeFileAtomic(filepath.Join(s.config.Root, target), data); err != nil {
		return NewStorageError(ErrMsgStorageWriteFailed, DriverFilesystem, isocode, err)
	}
	for _, name := range packFileNames(isocode) {
		if name == target {
			continue
		}
		if err := os.Remove(filepath.Join(s.config.Root, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return NewStorageError(ErrMsgStorageWriteFailed, DriverFilesystem, isocode, err)
		}
	}
	s.config.Logger.Debug(LogMsgStorageSaved, zap.String(LogFieldIsoCode, isocode), zap.String(LogFieldPath, target))
	return nil
}

// writeFileAtomic writes data to a temporary file and renames it over
// path, so readers never observe a partial pack.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), DefaultFilePerm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete implements PackStorage
func (s *FilesystemPackStorage) Delete(ctx context.Context, isocode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateIsoCodeForFilesystem(isocode); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newStorageClosedError(DriverFilesystem)
	}
	removed := false
	for _, name := range packFileNames(isocode) {
		err := os.Remove(filepath.Join(s.config.Root, name))
		if err == nil {
			removed = true
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return NewStorageError(ErrMsgStorageDeleteFailed, DriverFilesystem, isocode, err)
		}
	}
	if !removed {
		return NewPackNotFoundError(isocode)
	}
	s.config.Logger.Debug(LogMsgStorageDeleted, zap.String(LogFieldIsoCode, isocode))
	return nil
}

// LoadAll reads and compiles every pack in the directory concurrently.
// The first failure cancels the rest and is returned.
func (s *FilesystemPackStorage) LoadAll(ctx context.Context) (map[string]*LanguagePack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(DriverFilesystem)
	}
	files, err := s.listFiles()
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		packs = make(map[string]*LanguagePack, len(files))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.LoadConcurrency)
	for code, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := s.readFile(filepath.Join(s.config.Root, name))
			if err != nil {
				return NewStorageError(ErrMsgStorageReadFailed, DriverFilesystem, code, err)
			}
			pack, err := CompileLanguagePack(src, s.config.Logger)
			if err != nil {
				return NewStorageError(ErrMsgStorageReadFailed, DriverFilesystem, code, err)
			}
			mu.Lock()
			packs[code] = pack
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.config.Logger.Debug(LogMsgStorageLoadedDir,
		zap.String(LogFieldPath, s.config.Root),
		zap.Int(LogFieldCount, len(packs)))
	return packs, nil
}

// Close implements PackStorage
func (s *FilesystemPackStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newStorageClosedError(DriverFilesystem)
	}
	s.closed = true
	s.decoder.Close()
	return s.encoder.Close()
}
