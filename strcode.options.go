package strcode

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	maxDepth int
	names    NameProvider
	towns    TownNameGenerator
	script   TemplateSource
	mods     TemplateSource
	revision string
	logger   *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		maxDepth: DefaultMaxDepth,
		revision: DefaultRevision,
		logger:   nil,
	}
}

// WithMaxDepth sets the maximum number of nested templates one call may
// walk. Zero selects the default.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithNameProvider sets the collaborator that resolves entity names.
// Without one, entity codes render the pack's unknown-entity template.
func WithNameProvider(names NameProvider) Option {
	return func(c *engineConfig) {
		c.names = names
	}
}

// WithTownNameGenerator sets the generator used for special town and
// company names.
// Default: a deterministic syllable generator
func WithTownNameGenerator(towns TownNameGenerator) Option {
	return func(c *engineConfig) {
		c.towns = towns
	}
}

// WithScriptStrings sets the script table used when a snapshot has none.
func WithScriptStrings(src TemplateSource) Option {
	return func(c *engineConfig) {
		c.script = src
	}
}

// WithModStrings sets the mod table used when a snapshot has none.
func WithModStrings(src TemplateSource) Option {
	return func(c *engineConfig) {
		c.mods = src
	}
}

// WithRevision sets the text rendered by the REV code.
func WithRevision(rev string) Option {
	return func(c *engineConfig) {
		c.revision = rev
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
