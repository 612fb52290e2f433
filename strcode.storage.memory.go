package strcode

import (
	"context"
	"sort"
	"sync"
)

// MemoryPackStorage keeps pack sources in memory. It is intended for
// tests and for packs built at runtime.
type MemoryPackStorage struct {
	mu     sync.RWMutex
	packs  map[string]*LanguagePackSource
	closed bool
}

// MemoryPackStorageDriver creates MemoryPackStorage instances.
type MemoryPackStorageDriver struct{}

func init() {
	RegisterPackStorageDriver(DriverMemory, &MemoryPackStorageDriver{})
}

// Open creates a new MemoryPackStorage. The connection string is ignored.
func (d *MemoryPackStorageDriver) Open(dsn string) (PackStorage, error) {
	return NewMemoryPackStorage(), nil
}

// NewMemoryPackStorage creates an empty in-memory storage.
func NewMemoryPackStorage() *MemoryPackStorage {
	return &MemoryPackStorage{packs: make(map[string]*LanguagePackSource)}
}

// Get implements PackStorage
func (s *MemoryPackStorage) Get(ctx context.Context, isocode string) (*LanguagePackSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(DriverMemory)
	}
	src, ok := s.packs[isocode]
	if !ok {
		return nil, NewPackNotFoundError(isocode)
	}
	return copyPackSource(src), nil
}

// List implements PackStorage
func (s *MemoryPackStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(DriverMemory)
	}
	codes := make([]string, 0, len(s.packs))
	for code := range s.packs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// Save implements PackStorage
func (s *MemoryPackStorage) Save(ctx context.Context, src *LanguagePackSource) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSaveSource(src, DriverMemory); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newStorageClosedError(DriverMemory)
	}
	s.packs[src.Header.IsoCode] = copyPackSource(src)
	return nil
}

// Delete implements PackStorage
func (s *MemoryPackStorage) Delete(ctx context.Context, isocode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return newStorageClosedError(DriverMemory)
	}
	if _, ok := s.packs[isocode]; !ok {
		return NewPackNotFoundError(isocode)
	}
	delete(s.packs, isocode)
	return nil
}

// Close implements PackStorage
func (s *MemoryPackStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.packs = nil
	return nil
}
