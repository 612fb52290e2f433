package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	strcode "github.com/itsatony/go-strcode"
)

// packOptions selects where a command reads its language pack from.
type packOptions struct {
	path    string
	storage string
	lang    string
}

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput || path == "" {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// withEnv fills unset options from the environment.
func (o packOptions) withEnv(env cliEnv) packOptions {
	if o.path == "" && o.storage == "" {
		o.path = env.pack
		o.storage = env.storage
	}
	if o.lang == "" {
		o.lang = env.lang
	}
	return o
}

// loadPackSource reads the pack source named by opts. It returns nil
// without error when no pack was selected.
func loadPackSource(ctx context.Context, opts packOptions, stdin io.Reader) (*strcode.LanguagePackSource, error) {
	switch {
	case opts.path == "":
		return nil, nil
	case opts.path == InputSourceStdin:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return strcode.ParseLanguagePack(data, strcode.PackFormatYAML)
	}

	if _, _, ok := strcode.PackFormatForPath(opts.path); !ok {
		return nil, errors.New(ErrMsgPackFormatFromPath)
	}
	dir, file := filepath.Split(opts.path)
	if dir == "" {
		dir = "."
	}
	storage, err := strcode.NewFilesystemPackStorage(strcode.FilesystemConfig{Root: dir})
	if err != nil {
		return nil, err
	}
	defer func() { _ = storage.Close() }()

	isocode := strings.TrimSuffix(file, strcode.ExtZstd)
	isocode = strings.TrimSuffix(isocode, filepath.Ext(isocode))
	return storage.Get(ctx, isocode)
}

// loadPack compiles the selected pack. Storage wins over a file; with
// neither the bundled English pack is used.
func loadPack(ctx context.Context, opts packOptions, stdin io.Reader, logger *zap.Logger) (*strcode.LanguagePack, error) {
	if opts.storage != "" {
		driver, dsn, ok := strings.Cut(opts.storage, StorageSeparator)
		if !ok || driver == "" || dsn == "" {
			return nil, errors.New(ErrMsgBadStorageFlag)
		}
		if opts.lang == "" {
			return nil, errors.New(ErrMsgMissingLang)
		}
		storage, err := strcode.OpenPackStorage(driver, dsn)
		if err != nil {
			return nil, err
		}
		defer func() { _ = storage.Close() }()

		pack, err := strcode.LoadLanguagePack(ctx, storage, opts.lang, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug(LogMsgPackLoaded,
			zap.String(LogFieldStorage, driver),
			zap.String(LogFieldPack, opts.lang))
		return pack, nil
	}

	src, err := loadPackSource(ctx, opts, stdin)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return strcode.EnglishPack()
	}
	pack, err := strcode.CompileLanguagePack(src, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug(LogMsgPackLoaded, zap.String(LogFieldPack, pack.Locale().IsoCode))
	return pack, nil
}
