package strcode

import (
	_ "embed"
	"sync"

	"go.uber.org/zap"
)

//go:embed packs/english.yaml
var englishPackYAML []byte

var (
	englishOnce sync.Once
	englishPack *LanguagePack
	englishErr  error
)

// EnglishPackSource returns a fresh copy of the bundled English pack
// source, for use as a template when writing new languages.
func EnglishPackSource() (*LanguagePackSource, error) {
	return ParseLanguagePack(englishPackYAML, PackFormatYAML)
}

// EnglishPack returns the bundled English pack, compiled once.
func EnglishPack() (*LanguagePack, error) {
	englishOnce.Do(func() {
		var src *LanguagePackSource
		src, englishErr = EnglishPackSource()
		if englishErr != nil {
			return
		}
		englishPack, englishErr = CompileLanguagePack(src, zap.NewNop())
	})
	return englishPack, englishErr
}
