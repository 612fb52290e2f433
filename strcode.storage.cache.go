package strcode

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// CachedPackStorage wraps any PackStorage with an in-memory cache of
// sources and their compiled packs.
type CachedPackStorage struct {
	storage PackStorage
	config  CacheConfig
	now     func() time.Time

	mu     sync.RWMutex
	cache  map[string]*cacheEntry
	closed bool
}

// CacheConfig configures the caching behavior.
type CacheConfig struct {
	// TTL is how long cached entries remain valid.
	// Default: 5 minutes.
	TTL time.Duration

	// MaxEntries is the maximum number of cached packs. When exceeded,
	// the least recently used entry is evicted.
	// Default: 64.
	MaxEntries int

	// NegativeCacheTTL is how long to cache "not found" results.
	// Set to 0 to disable negative caching.
	// Default: 30 seconds.
	NegativeCacheTTL time.Duration

	Logger *zap.Logger
}

// DefaultCacheConfig returns the default caching configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:              DefaultCacheTTL,
		MaxEntries:       DefaultCacheMaxEntries,
		NegativeCacheTTL: DefaultNegativeTTL,
	}
}

// cacheEntry is one cached pack. pack is compiled on first use.
type cacheEntry struct {
	source     *LanguagePackSource
	pack       *LanguagePack
	notFound   bool
	cachedAt   time.Time
	accessedAt atomic.Int64
}

// NewCachedPackStorage wraps a storage with caching.
func NewCachedPackStorage(storage PackStorage, config CacheConfig) *CachedPackStorage {
	if config.TTL == 0 {
		config.TTL = DefaultCacheTTL
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = DefaultCacheMaxEntries
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &CachedPackStorage{
		storage: storage,
		config:  config,
		now:     time.Now,
		cache:   make(map[string]*cacheEntry),
	}
}

// lookup returns a valid cache entry for isocode, if any.
func (s *CachedPackStorage) lookup(isocode string) (*cacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, newStorageClosedError(DriverCache)
	}
	entry, ok := s.cache[isocode]
	if !ok || !s.isValid(entry) {
		return nil, nil
	}
	entry.accessedAt.Store(s.now().UnixNano())
	return entry, nil
}

// fetch loads isocode from the wrapped storage and caches the outcome.
func (s *CachedPackStorage) fetch(ctx context.Context, isocode string) (*cacheEntry, error) {
	s.config.Logger.Debug(LogMsgCacheMiss, zap.String(LogFieldIsoCode, isocode))
	src, err := s.storage.Get(ctx, isocode)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, newStorageClosedError(DriverCache)
	}
	// A concurrent miss may have filled the entry already; share it.
	if entry, ok := s.cache[isocode]; ok && s.isValid(entry) {
		return entry, nil
	}
	if err != nil {
		if IsNotFound(err) && s.config.NegativeCacheTTL > 0 {
			s.addEntry(isocode, nil, true)
		}
		return nil, err
	}
	return s.addEntry(isocode, src, false), nil
}

// Get implements PackStorage
func (s *CachedPackStorage) Get(ctx context.Context, isocode string) (*LanguagePackSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, err := s.lookup(isocode)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		if entry, err = s.fetch(ctx, isocode); err != nil {
			return nil, err
		}
	} else {
		s.config.Logger.Debug(LogMsgCacheHit, zap.String(LogFieldIsoCode, isocode))
	}
	if entry.notFound {
		return nil, NewPackNotFoundError(isocode)
	}
	return copyPackSource(entry.source), nil
}

// GetPack returns the compiled pack for isocode, compiling it at most
// once per cache entry.
func (s *CachedPackStorage) GetPack(ctx context.Context, isocode string) (*LanguagePack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, err := s.lookup(isocode)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		if entry, err = s.fetch(ctx, isocode); err != nil {
			return nil, err
		}
	}
	if entry.notFound {
		return nil, NewPackNotFoundError(isocode)
	}

	s.mu.RLock()
	pack := entry.pack
	s.mu.RUnlock()
	if pack != nil {
		return pack, nil
	}

	pack, err = CompileLanguagePack(entry.source, s.config.Logger)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	// A concurrent caller may have compiled it first; keep one.
	if entry.pack == nil {
		entry.pack = pack
	}
	pack = entry.pack
	s.mu.Unlock()
	return pack, nil
}

// List returns stored isocodes (bypasses cache).
func (s *CachedPackStorage) List(ctx context.Context) ([]string, error) {
	return s.storage.List(ctx)
}

// Save stores a pack and invalidates its cache entry.
func (s *CachedPackStorage) Save(ctx context.Context, src *LanguagePackSource) error {
	if err := s.storage.Save(ctx, src); err != nil {
		return err
	}
	s.Invalidate(src.Header.IsoCode)
	return nil
}

// Delete removes a pack and invalidates its cache entry.
func (s *CachedPackStorage) Delete(ctx context.Context, isocode string) error {
	if err := s.storage.Delete(ctx, isocode); err != nil {
		return err
	}
	s.Invalidate(isocode)
	return nil
}

// Close closes the cache and the underlying storage.
func (s *CachedPackStorage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.cache = nil
	s.mu.Unlock()

	return s.storage.Close()
}

// Invalidate removes one pack from the cache.
func (s *CachedPackStorage) Invalidate(isocode string) {
	s.mu.Lock()
	delete(s.cache, isocode)
	s.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (s *CachedPackStorage) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]*cacheEntry)
	s.mu.Unlock()
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Entries         int
	ValidEntries    int
	NegativeEntries int
	CompiledEntries int
}

// Stats returns cache statistics.
func (s *CachedPackStorage) Stats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := CacheStats{Entries: len(s.cache)}
	for _, entry := range s.cache {
		if !s.isValid(entry) {
			continue
		}
		switch {
		case entry.notFound:
			stats.NegativeEntries++
		default:
			stats.ValidEntries++
		}
		if entry.pack != nil {
			stats.CompiledEntries++
		}
	}
	return stats
}

// isValid checks if a cache entry is still valid.
func (s *CachedPackStorage) isValid(entry *cacheEntry) bool {
	ttl := s.config.TTL
	if entry.notFound {
		ttl = s.config.NegativeCacheTTL
	}
	return s.now().Sub(entry.cachedAt) < ttl
}

// addEntry adds an entry, evicting the least recently used one when full.
// Caller must hold write lock.
func (s *CachedPackStorage) addEntry(isocode string, src *LanguagePackSource, notFound bool) *cacheEntry {
	if _, exists := s.cache[isocode]; !exists && len(s.cache) >= s.config.MaxEntries {
		s.evictOldest()
	}
	now := s.now()
	entry := &cacheEntry{source: src, notFound: notFound, cachedAt: now}
	entry.accessedAt.Store(now.UnixNano())
	s.cache[isocode] = entry
	return entry
}

// evictOldest removes the least recently accessed entry.
// Caller must hold write lock.
func (s *CachedPackStorage) evictOldest() {
	var oldestKey string
	var oldest int64
	for key, entry := range s.cache {
		at := entry.accessedAt.Load()
		if oldestKey == "" || at < oldest {
			oldestKey, oldest = key, at
		}
	}
	if oldestKey != "" {
		delete(s.cache, oldestKey)
		s.config.Logger.Debug(LogMsgCacheEvicted, zap.String(LogFieldIsoCode, oldestKey))
	}
}
