package strcode

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-strcode/internal"
)

// PackHeader is the language metadata of a pack source.
type PackHeader struct {
	Name                     string   `yaml:"name" toml:"name"`
	OwnName                  string   `yaml:"ownname,omitempty" toml:"ownname,omitempty"`
	IsoCode                  string   `yaml:"isocode" toml:"isocode"`
	PluralForm               int      `yaml:"plural_form" toml:"plural_form"`
	TextDir                  string   `yaml:"text_dir,omitempty" toml:"text_dir,omitempty"`
	DigitGroupSeparator      string   `yaml:"digit_group_separator,omitempty" toml:"digit_group_separator,omitempty"`
	DigitGroupSeparatorMoney string   `yaml:"digit_group_separator_money,omitempty" toml:"digit_group_separator_money,omitempty"`
	DigitDecimalSeparator    string   `yaml:"digit_decimal_separator,omitempty" toml:"digit_decimal_separator,omitempty"`
	Genders                  []string `yaml:"genders,omitempty" toml:"genders,omitempty"`
	Cases                    []string `yaml:"cases,omitempty" toml:"cases,omitempty"`
}

// PackString is one string entry of a pack source.
type PackString struct {
	Key string `yaml:"key" toml:"key"`
	// ID pins the string to a hex identifier such as 0x10005. Well-known
	// system keys have fixed ids and need none.
	ID    string            `yaml:"id,omitempty" toml:"id,omitempty"`
	Text  string            `yaml:"text" toml:"text"`
	Cases map[string]string `yaml:"cases,omitempty" toml:"cases,omitempty"`
}

// LanguagePackSource is the readable form of a language pack.
type LanguagePackSource struct {
	Header  PackHeader   `yaml:"header" toml:"header"`
	Strings []PackString `yaml:"strings" toml:"strings"`
}

// ParseLanguagePack decodes a pack source in the given format.
func ParseLanguagePack(data []byte, format string) (*LanguagePackSource, error) {
	var src LanguagePackSource
	var err error
	switch format {
	case PackFormatYAML:
		err = yaml.Unmarshal(data, &src)
	case PackFormatTOML:
		err = toml.Unmarshal(data, &src)
	default:
		return nil, NewPackError(ErrMsgPackUnknownFormat, format)
	}
	if err != nil {
		return nil, wrapPackError(err, ErrMsgPackParseFailed)
	}
	return &src, nil
}

// MarshalLanguagePack encodes a pack source in the given format.
func MarshalLanguagePack(src *LanguagePackSource, format string) ([]byte, error) {
	switch format {
	case PackFormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(src); err != nil {
			return nil, wrapPackError(err, ErrMsgPackParseFailed)
		}
		if err := enc.Close(); err != nil {
			return nil, wrapPackError(err, ErrMsgPackParseFailed)
		}
		return buf.Bytes(), nil
	case PackFormatTOML:
		data, err := toml.Marshal(src)
		if err != nil {
			return nil, wrapPackError(err, ErrMsgPackParseFailed)
		}
		return data, nil
	}
	return nil, NewPackError(ErrMsgPackUnknownFormat, format)
}

// PackFormatForPath derives the pack format from a file name, ignoring a
// trailing .zst. It reports whether the file is compressed and whether
// the extension is known at all.
func PackFormatForPath(path string) (format string, compressed, ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ExtZstd {
		compressed = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ExtYAML, ExtYML:
		return PackFormatYAML, compressed, true
	case ExtTOML:
		return PackFormatTOML, compressed, true
	}
	return "", compressed, false
}

// LanguagePack is a compiled language: its locale and every template in
// control-code form. It is immutable and safe for concurrent use.
type LanguagePack struct {
	locale    Locale
	templates internal.MapSource
	keys      map[string]StringID
}

// Template implements TemplateSource
func (p *LanguagePack) Template(id StringID) (string, bool) {
	return p.templates.Template(id)
}

// Lookup implements KeyResolver
func (p *LanguagePack) Lookup(key string) (StringID, bool) {
	id, ok := p.keys[key]
	return id, ok
}

// Keys returns every string key of the pack, sorted.
func (p *LanguagePack) Keys() []string {
	keys := make([]string, 0, len(p.keys))
	for k := range p.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Locale returns the language metadata.
func (p *LanguagePack) Locale() Locale {
	return p.locale
}

// Len returns the number of strings in the pack.
func (p *LanguagePack) Len() int {
	return len(p.templates)
}

// NewSnapshot returns a snapshot formatting against pack with the pack's
// own separators and the default currency.
func NewSnapshot(pack *LanguagePack) *Snapshot {
	return &Snapshot{
		Strings:  pack,
		Locale:   pack.Locale(),
		Currency: DefaultCurrency,
	}
}

// CompileLanguagePack validates src and compiles every string. All string
// compile errors are reported together.
func CompileLanguagePack(src *LanguagePackSource, logger *zap.Logger) (*LanguagePack, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	locale, err := validateHeader(src.Header)
	if err != nil {
		return nil, err
	}
	ids, err := assignIDs(src.Strings)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]StringID, len(ids))
	for i, s := range src.Strings {
		keys[s.Key] = ids[i]
	}
	compiler := internal.NewCompiler(internal.CompileContext{
		PluralForm: locale.PluralForm,
		Genders:    locale.Genders,
		Cases:      locale.Cases,
		Resolve: func(key string) (StringID, bool) {
			id, ok := keys[key]
			return id, ok
		},
	}, logger)

	templates := make(internal.MapSource, len(src.Strings))
	var errs []error
	for i, s := range src.Strings {
		compiled, err := compiler.CompileCases(s.Text, s.Cases)
		if err != nil {
			logger.Warn(LogMsgPackStringFailed, zap.String(LogFieldKey, s.Key), zap.Error(err))
			errs = append(errs, NewCompileError(err, s.Key))
			continue
		}
		templates[ids[i]] = compiled
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	logger.Debug(LogMsgPackCompiled,
		zap.String(LogFieldIsoCode, locale.IsoCode),
		zap.Int(LogFieldStrings, len(templates)))
	return &LanguagePack{locale: locale, templates: templates, keys: keys}, nil
}

func validateHeader(h PackHeader) (Locale, error) {
	if h.IsoCode == "" {
		return Locale{}, NewPackError(ErrMsgPackMissingIsoCode, "")
	}
	if _, err := language.Parse(h.IsoCode); err != nil {
		return Locale{}, wrapPackError(err, ErrMsgPackBadIsoCode).WithMetadata(MetaKeyIsoCode, h.IsoCode)
	}
	if h.PluralForm < 0 || h.PluralForm > MaxPluralForm {
		return Locale{}, NewPackError(ErrMsgPackBadPluralForm, strconv.Itoa(h.PluralForm))
	}
	if len(h.Genders) > MaxGenders {
		return Locale{}, NewPackError(ErrMsgPackTooManyGenders, strconv.Itoa(len(h.Genders)))
	}
	if len(h.Cases) > MaxCases {
		return Locale{}, NewPackError(ErrMsgPackTooManyCases, strconv.Itoa(len(h.Cases)))
	}

	dir := internal.TextDirectionLTR
	switch strings.ToLower(h.TextDir) {
	case "", TextDirLTR:
	case TextDirRTL:
		dir = internal.TextDirectionRTL
	default:
		return Locale{}, NewPackError(ErrMsgPackBadTextDir, h.TextDir)
	}

	return Locale{
		Name:                     h.Name,
		OwnName:                  h.OwnName,
		IsoCode:                  h.IsoCode,
		PluralForm:               h.PluralForm,
		TextDirection:            dir,
		DigitGroupSeparator:      h.DigitGroupSeparator,
		DigitGroupSeparatorMoney: h.DigitGroupSeparatorMoney,
		DigitDecimalSeparator:    h.DigitDecimalSeparator,
		Genders:                  h.Genders,
		Cases:                    h.Cases,
	}, nil
}

// assignIDs gives every string its identifier: system keys their fixed
// slot, explicit ids as written, everything else the next free index of
// the default table.
func assignIDs(strs []PackString) ([]StringID, error) {
	ids := make([]StringID, len(strs))
	used := make(map[StringID]string, len(strs))
	seen := make(map[string]bool, len(strs))
	pending := make([]int, 0, len(strs))

	for i, s := range strs {
		if s.Key == "" {
			return nil, NewPackError(ErrMsgPackEmptyKey, strconv.Itoa(i))
		}
		if seen[s.Key] {
			return nil, NewPackError(ErrMsgPackDuplicateKey, s.Key)
		}
		seen[s.Key] = true

		id, fixed, err := fixedID(s)
		if err != nil {
			return nil, err
		}
		if !fixed {
			pending = append(pending, i)
			continue
		}
		if other, dup := used[id]; dup {
			return nil, NewPackError(ErrMsgPackDuplicateID, fmt.Sprintf("%s and %s share %s", other, s.Key, id))
		}
		used[id] = s.Key
		ids[i] = id
	}

	next := 0
	for _, i := range pending {
		for next < internal.TableSize && used[MakeStringID(TableDefault, uint16(next))] != "" {
			next++
		}
		if next >= internal.TableSize {
			return nil, NewPackError(ErrMsgPackTableFull, strs[i].Key)
		}
		id := MakeStringID(TableDefault, uint16(next))
		used[id] = strs[i].Key
		ids[i] = id
		next++
	}
	return ids, nil
}

func fixedID(s PackString) (StringID, bool, error) {
	if idx, ok := internal.SystemStringIndex(s.Key); ok {
		id := internal.SysID(idx)
		if s.ID != "" {
			explicit, err := parseHexID(s.ID)
			if err != nil || explicit != id {
				return 0, false, NewPackError(ErrMsgPackSystemIDMismatch, s.Key)
			}
		}
		return id, true, nil
	}
	if s.ID == "" {
		return 0, false, nil
	}
	id, err := parseHexID(s.ID)
	if err != nil || id == InvalidStringID {
		return 0, false, NewPackError(ErrMsgPackBadID, s.ID)
	}
	return id, true, nil
}

func parseHexID(s string) (StringID, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, err
	}
	return StringID(v), nil
}
