package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	strcode "github.com/itsatony/go-strcode"
)

// encodeConfig holds parsed encode command configuration
type encodeConfig struct {
	pack   packOptions
	key    string
	params string
}

func (c *cli) runEncode(args []string) int {
	cfg, err := parseEncodeFlags(args)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgMissingKey, err)
		return ExitCodeUsageError
	}

	pack, err := loadPack(context.Background(), cfg.pack.withEnv(c.env), c.stdin, c.logger)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgLoadPackFailed, err)
		return ExitCodeInputError
	}

	id, ok := pack.Lookup(cfg.key)
	if !ok {
		fmt.Fprintf(c.stderr, FmtErrorWithDetail, ErrMsgUnknownStringKey, cfg.key)
		return ExitCodeInputError
	}

	params, err := parseParams(cfg.params, pack)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgInvalidParams, err)
		return ExitCodeInputError
	}

	enc, err := strcode.Encode(id, params...)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgEncodeFailed, err)
		return ExitCodeError
	}

	fmt.Fprintln(c.stdout, string(enc))
	return ExitCodeSuccess
}

func parseEncodeFlags(args []string) (*encodeConfig, error) {
	fs := flag.NewFlagSet(CmdNameEncode, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &encodeConfig{}
	bindPackFlags(fs, &cfg.pack)
	fs.StringVar(&cfg.key, FlagKey, "", "")
	fs.StringVar(&cfg.key, FlagKeyShort, "", "")
	fs.StringVar(&cfg.params, FlagParams, "", "")
	fs.StringVar(&cfg.params, FlagParamsShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.key) == "" {
		return nil, errors.New(ErrMsgMissingKey)
	}

	return cfg, nil
}
