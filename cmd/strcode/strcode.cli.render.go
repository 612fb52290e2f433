package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	strcode "github.com/itsatony/go-strcode"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	pack      packOptions
	key       string
	source    string
	encoded   string
	params    string
	output    string
	color     string
	wallclock bool
}

func (c *cli) runRender(args []string) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgMissingKey, err)
		return ExitCodeUsageError
	}
	colorMode, err := c.colorMode(cfg.color)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return ExitCodeUsageError
	}

	pack, err := loadPack(context.Background(), cfg.pack.withEnv(c.env), c.stdin, c.logger)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgLoadPackFailed, err)
		return ExitCodeInputError
	}

	params, err := parseParams(cfg.params, pack)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgInvalidParams, err)
		return ExitCodeInputError
	}

	engine, err := strcode.New(
		strcode.WithLogger(c.logger),
		strcode.WithRevision(getVersionInfo().Version),
	)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	snap := strcode.NewSnapshot(pack).WithWallclock(cfg.wallclock)

	var result string
	switch {
	case cfg.encoded != "":
		result, err = engine.FormatEncoded(snap, strcode.EncodedString(cfg.encoded))
	case cfg.source != "":
		result, err = engine.FormatSource(snap, cfg.source, params...)
	default:
		result, err = engine.FormatKey(snap, cfg.key, params...)
	}
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}
	c.logger.Debug(LogMsgRendered,
		zap.String(LogFieldKey, cfg.key),
		zap.Int(LogFieldParamCount, len(params)))

	ansi := useANSI(colorMode, c.stdout)
	if colorMode == ColorAuto && cfg.output != FlagDefaultOutput {
		ansi = false
	}
	out := renderTerminal(result, ansi)
	if err := writeOutput(cfg.output, []byte(out+FmtNewline), c.stdout); err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &renderConfig{}
	bindPackFlags(fs, &cfg.pack)
	fs.StringVar(&cfg.key, FlagKey, "", "")
	fs.StringVar(&cfg.key, FlagKeyShort, "", "")
	fs.StringVar(&cfg.source, FlagSource, "", "")
	fs.StringVar(&cfg.source, FlagSourceShort, "", "")
	fs.StringVar(&cfg.encoded, FlagEncoded, "", "")
	fs.StringVar(&cfg.encoded, FlagEncodedShort, "", "")
	fs.StringVar(&cfg.params, FlagParams, "", "")
	fs.StringVar(&cfg.params, FlagParamsShort, "", "")
	fs.StringVar(&cfg.output, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.output, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.color, FlagColor, "", "")
	fs.BoolVar(&cfg.wallclock, FlagWallclock, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.key == "" && cfg.source == "" && cfg.encoded == "" {
		return nil, errors.New(ErrMsgMissingKey)
	}

	return cfg, nil
}

// bindPackFlags registers the pack selection flags shared by commands.
func bindPackFlags(fs *flag.FlagSet, opts *packOptions) {
	fs.StringVar(&opts.path, FlagPack, "", "")
	fs.StringVar(&opts.path, FlagPackShort, "", "")
	fs.StringVar(&opts.storage, FlagStorage, "", "")
	fs.StringVar(&opts.lang, FlagLang, "", "")
	fs.StringVar(&opts.lang, FlagLangShort, "", "")
}
