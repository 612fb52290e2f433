package strcode

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDriver struct{}

func (stubDriver) Open(string) (PackStorage, error) { return NewMemoryPackStorage(), nil }

func TestRegisterPackStorageDriver(t *testing.T) {
	RegisterPackStorageDriver("stub-register", stubDriver{})
	assert.Contains(t, ListPackStorageDrivers(), "stub-register")

	storage, err := OpenPackStorage("stub-register", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryPackStorage{}, storage)
}

func TestRegisterPackStorageDriver_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { RegisterPackStorageDriver("stub-nil", nil) })
}

func TestRegisterPackStorageDriver_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() { RegisterPackStorageDriver(DriverMemory, stubDriver{}) })
}

func TestOpenPackStorage_DriverNotFound(t *testing.T) {
	_, err := OpenPackStorage("nope", "")
	require.Error(t, err)
	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, ErrMsgStorageUnknownDriver, storageErr.Message)
}

func TestListPackStorageDrivers(t *testing.T) {
	drivers := ListPackStorageDrivers()
	for _, name := range []string{DriverMemory, DriverFilesystem, DriverPostgres, DriverSQLite} {
		assert.Contains(t, drivers, name)
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk on fire")

	tests := []struct {
		name     string
		err      *StorageError
		expected string
	}{
		{"message only", NewStorageError("failed", "", "", nil), "failed"},
		{"with driver", NewStorageError("failed", DriverMemory, "", nil), "memory: failed"},
		{"with isocode", NewStorageError("failed", "", "en_GB", nil), `failed (isocode "en_GB")`},
		{"with cause", NewStorageError("failed", DriverFilesystem, "", cause), "filesystem: failed: disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	assert.True(t, errors.Is(NewStorageError("failed", "", "", cause), cause))
}

func TestMemoryPackStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryPackStorage()
	defer storage.Close()

	src := minimalSource("en_US", PackString{Key: "STR_A", Text: "a", Cases: map[string]string{"x": "y"}})
	require.NoError(t, storage.Save(ctx, src))

	t.Run("get returns a copy", func(t *testing.T) {
		got, err := storage.Get(ctx, "en_US")
		require.NoError(t, err)
		assert.Equal(t, src, got)

		got.Strings[0].Text = "changed"
		got.Strings[0].Cases["x"] = "changed"
		again, err := storage.Get(ctx, "en_US")
		require.NoError(t, err)
		assert.Equal(t, "a", again.Strings[0].Text)
		assert.Equal(t, "y", again.Strings[0].Cases["x"])
	})

	t.Run("save stores a copy", func(t *testing.T) {
		src.Strings[0].Text = "mutated after save"
		got, err := storage.Get(ctx, "en_US")
		require.NoError(t, err)
		assert.Equal(t, "a", got.Strings[0].Text)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := storage.Get(ctx, "xx_XX")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.True(t, errors.Is(err, ErrPackNotFound))
	})

	t.Run("list is sorted", func(t *testing.T) {
		require.NoError(t, storage.Save(ctx, minimalSource("de_DE")))
		codes, err := storage.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"de_DE", "en_US"}, codes)
	})

	t.Run("save needs an isocode", func(t *testing.T) {
		assert.Error(t, storage.Save(ctx, minimalSource("")))
		assert.Error(t, storage.Save(ctx, nil))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, "de_DE"))
		err := storage.Delete(ctx, "de_DE")
		assert.True(t, IsNotFound(err))
	})
}

func TestMemoryPackStorage_Close(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryPackStorage()
	require.NoError(t, storage.Close())

	_, err := storage.Get(ctx, "en_GB")
	require.Error(t, err)
	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, ErrMsgStorageClosed, storageErr.Message)

	assert.Error(t, storage.Save(ctx, minimalSource("en_GB")))
	_, err = storage.List(ctx)
	assert.Error(t, err)
	assert.NoError(t, storage.Close())
}

func TestMemoryPackStorage_ContextCancellation(t *testing.T) {
	storage := NewMemoryPackStorage()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.Get(ctx, "en_GB")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, storage.Save(ctx, minimalSource("en_GB")), context.Canceled)
}

func TestMemoryPackStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryPackStorage()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			iso := fmt.Sprintf("x%02d", i)
			_ = storage.Save(ctx, minimalSource(iso))
			_, _ = storage.Get(ctx, iso)
			_, _ = storage.List(ctx)
		}(i)
	}
	wg.Wait()

	codes, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Len(t, codes, 20)
}

func TestLoadLanguagePack(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryPackStorage()

	src, err := EnglishPackSource()
	require.NoError(t, err)
	require.NoError(t, storage.Save(ctx, src))

	pack, err := LoadLanguagePack(ctx, storage, "en_GB", nil)
	require.NoError(t, err)
	got, err := MustNew().FormatKey(NewSnapshot(pack), "STR_VEHICLE_COUNT", Int(2))
	require.NoError(t, err)
	assert.Equal(t, "2 vehicles", got)

	_, err = LoadLanguagePack(ctx, storage, "nl_NL", nil)
	assert.True(t, IsNotFound(err))

	require.NoError(t, storage.Save(ctx, minimalSource("fr_FR", PackString{Key: "STR_BAD", Text: "{NOPE}"})))
	_, err = LoadLanguagePack(ctx, storage, "fr_FR", nil)
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
}
