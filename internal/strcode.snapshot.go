package internal

// TemplateSource looks up the raw template text for an identifier.
type TemplateSource interface {
	Template(id StringID) (string, bool)
}

// MapSource is a TemplateSource backed by a map.
type MapSource map[StringID]string

// Template implements TemplateSource
func (m MapSource) Template(id StringID) (string, bool) {
	s, ok := m[id]
	return s, ok
}

// TextDirection of a language.
type TextDirection uint8

const (
	TextDirectionLTR TextDirection = iota
	TextDirectionRTL
)

// Locale is the metadata of a language pack.
type Locale struct {
	Name                     string
	OwnName                  string
	IsoCode                  string
	PluralForm               int
	TextDirection            TextDirection
	DigitGroupSeparator      string
	DigitGroupSeparatorMoney string
	DigitDecimalSeparator    string
	Genders                  []string
	Cases                    []string
}

// LocaleSettings are user overrides of the pack separators plus the unit
// selections. Empty separators defer to the pack.
type LocaleSettings struct {
	DigitGroupSeparator      string
	DigitGroupSeparatorMoney string
	DigitDecimalSeparator    string
	Units                    UnitSettings
}

// Currency describes how money is rendered.
type Currency struct {
	Code      string
	Rate      int64
	Separator string
	// SymbolPos is 0 for prefix only, 1 for suffix only, 2 for both.
	SymbolPos uint8
	Prefix    string
	Suffix    string
}

// DefaultCurrency is pounds sterling at rate 1.
var DefaultCurrency = Currency{Code: "GBP", Rate: 1, Prefix: "£"}

// Snapshot is the read-only language state a format call runs against.
// It is never mutated while a call is in flight; switching language means
// installing a new Snapshot.
type Snapshot struct {
	Strings   TemplateSource
	Script    TemplateSource
	Mods      TemplateSource
	Locale    Locale
	Settings  LocaleSettings
	Currency  Currency
	Wallclock bool
	Toyland   bool
}

// GroupSeparator is the digit group separator in effect.
func (s *Snapshot) GroupSeparator() string {
	if s.Settings.DigitGroupSeparator != "" {
		return s.Settings.DigitGroupSeparator
	}
	return s.Locale.DigitGroupSeparator
}

// MoneySeparator is the digit group separator used for currency.
func (s *Snapshot) MoneySeparator() string {
	if s.Settings.DigitGroupSeparatorMoney != "" {
		return s.Settings.DigitGroupSeparatorMoney
	}
	if s.Currency.Separator != "" {
		return s.Currency.Separator
	}
	return s.Locale.DigitGroupSeparatorMoney
}

// DecimalSeparator is the decimal separator in effect.
func (s *Snapshot) DecimalSeparator() string {
	if s.Settings.DigitDecimalSeparator != "" {
		return s.Settings.DigitDecimalSeparator
	}
	return s.Locale.DigitDecimalSeparator
}

func lookup(src TemplateSource, id StringID) (string, bool) {
	if src == nil {
		return "", false
	}
	return src.Template(id)
}

// WithSettings returns a copy of the snapshot using the given overrides.
func (s Snapshot) WithSettings(settings LocaleSettings) *Snapshot {
	s.Settings = settings
	return &s
}

// WithCurrency returns a copy of the snapshot rendering money in c.
func (s Snapshot) WithCurrency(c Currency) *Snapshot {
	s.Currency = c
	return &s
}

// WithWallclock returns a copy with the wallclock time units toggled.
func (s Snapshot) WithWallclock(on bool) *Snapshot {
	s.Wallclock = on
	return &s
}

// WithToyland returns a copy with the toyland climate toggled.
func (s Snapshot) WithToyland(on bool) *Snapshot {
	s.Toyland = on
	return &s
}

// WithScript returns a copy resolving script table ids through src.
func (s Snapshot) WithScript(src TemplateSource) *Snapshot {
	s.Script = src
	return &s
}

// WithMods returns a copy resolving mod table ids through src.
func (s Snapshot) WithMods(src TemplateSource) *Snapshot {
	s.Mods = src
	return &s
}
