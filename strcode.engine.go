package strcode

import (
	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"

	"github.com/itsatony/go-strcode/internal"
)

// Engine formats strings against language snapshots. It holds no
// per-call state; one Engine is safe for concurrent use as long as its
// NameProvider and TownNameGenerator are.
type Engine struct {
	interp *internal.Interpreter
	config *engineConfig
	logger *zap.Logger
}

// KeyResolver is implemented by template sources that can map string
// keys to identifiers, such as *LanguagePack.
type KeyResolver interface {
	Lookup(key string) (StringID, bool)
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.maxDepth < 0 {
		return nil, cuserr.NewValidationError(ErrCodeParam, ErrMsgInvalidMaxDepth)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	interp := internal.NewInterpreter(internal.InterpreterConfig{
		MaxDepth: config.maxDepth,
		Names:    config.names,
		Towns:    config.towns,
		Revision: config.revision,
	}, logger)

	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldMaxDepth, config.maxDepth))
	return &Engine{interp: interp, config: config, logger: logger}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// prepare fills in the engine-level script and mod tables. A nil snapshot
// formats against an empty pack.
func (e *Engine) prepare(snap *Snapshot) *Snapshot {
	if snap == nil {
		snap = &Snapshot{Currency: DefaultCurrency}
	}
	if snap.Script == nil && e.config.script != nil {
		snap = snap.WithScript(e.config.script)
	}
	if snap.Mods == nil && e.config.mods != nil {
		snap = snap.WithMods(e.config.mods)
	}
	return snap
}

// Format resolves id with params. Parameter failures never abort the
// call; they render as inline diagnostics.
func (e *Engine) Format(snap *Snapshot, id StringID, params ...Parameter) string {
	return e.interp.Format(e.prepare(snap), id, params)
}

// FormatKey resolves a string key through the snapshot's pack and formats
// it.
func (e *Engine) FormatKey(snap *Snapshot, key string, params ...Parameter) (string, error) {
	snap = e.prepare(snap)
	resolver, ok := snap.Strings.(KeyResolver)
	if !ok {
		return "", NewPackError(ErrMsgNoPack, key)
	}
	id, ok := resolver.Lookup(key)
	if !ok {
		e.logger.Debug(LogMsgUnknownKey, zap.String(LogFieldKey, key))
		return "", NewUnknownKeyError(key)
	}
	e.logger.Debug(LogMsgFormatKey, zap.String(LogFieldKey, key))
	return e.interp.Format(snap, id, params), nil
}

// FormatTemplate formats an already compiled template that is not part
// of any table.
func (e *Engine) FormatTemplate(snap *Snapshot, compiled string, params ...Parameter) string {
	return e.interp.FormatTemplate(e.prepare(snap), compiled, params)
}

// FormatSource compiles source against the snapshot's language and
// formats it.
func (e *Engine) FormatSource(snap *Snapshot, source string, params ...Parameter) (string, error) {
	snap = e.prepare(snap)
	compiled, err := e.Compile(snap, source)
	if err != nil {
		return "", err
	}
	return e.interp.FormatTemplate(snap, compiled, params), nil
}

// Compile compiles template source using the plural rule, genders, cases
// and keys of the snapshot's language.
func (e *Engine) Compile(snap *Snapshot, source string) (string, error) {
	snap = e.prepare(snap)
	e.logger.Debug(LogMsgCompileSource)
	compiled, err := internal.NewCompiler(compileContext(snap), e.logger).Compile(source)
	if err != nil {
		return "", NewCompileError(err, "")
	}
	return compiled, nil
}

// FormatEncoded decodes an encoded string and formats it. Malformed input
// is an error; parameter failures inside the string are not.
func (e *Engine) FormatEncoded(snap *Snapshot, enc EncodedString) (string, error) {
	out, err := e.interp.FormatEncoded(e.prepare(snap), string(enc))
	if err != nil {
		return "", wrapCoreError(err, ErrMsgDecodeFailed)
	}
	return out, nil
}

func compileContext(snap *Snapshot) internal.CompileContext {
	ctx := internal.CompileContext{
		PluralForm: snap.Locale.PluralForm,
		Genders:    snap.Locale.Genders,
		Cases:      snap.Locale.Cases,
	}
	if resolver, ok := snap.Strings.(KeyResolver); ok {
		ctx.Resolve = resolver.Lookup
	}
	return ctx
}
