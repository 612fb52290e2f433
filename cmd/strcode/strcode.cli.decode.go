package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	strcode "github.com/itsatony/go-strcode"
)

// decodeConfig holds parsed decode command configuration
type decodeConfig struct {
	encoded string
	format  string
}

// decodeOutput represents JSON output for decode
type decodeOutput struct {
	ID     string        `json:"id"`
	Params []decodeParam `json:"params"`
}

type decodeParam struct {
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

func (c *cli) runDecode(args []string) int {
	cfg, err := parseDecodeFlags(args)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgMissingEncoded, err)
		return ExitCodeUsageError
	}

	encoded := cfg.encoded
	if encoded == InputSourceStdin {
		data, err := readInput(InputSourceStdin, c.stdin)
		if err != nil {
			fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return ExitCodeInputError
		}
		encoded = strings.TrimRight(string(data), "\r\n")
	}

	id, params, err := strcode.Decode(strcode.EncodedString(encoded))
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgDecodeFailed, err)
		return ExitCodeInputError
	}

	out := decodeOutput{ID: id.String(), Params: make([]decodeParam, 0, len(params))}
	for _, p := range params {
		kind, value := describeParam(p)
		out.Params = append(out.Params, decodeParam{Kind: kind, Value: value})
	}

	if cfg.format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(out, "", JSONIndent)
		fmt.Fprintln(c.stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	fmt.Fprintf(c.stdout, DecodeTextID+FmtNewline, out.ID)
	for i, p := range out.Params {
		fmt.Fprintf(c.stdout, DecodeTextParam+FmtNewline, i, p.Kind+" "+p.Value)
	}
	return ExitCodeSuccess
}

func parseDecodeFlags(args []string) (*decodeConfig, error) {
	fs := flag.NewFlagSet(CmdNameDecode, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &decodeConfig{}
	fs.StringVar(&cfg.encoded, FlagEncoded, "", "")
	fs.StringVar(&cfg.encoded, FlagEncodedShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.encoded == "" {
		return nil, errors.New(ErrMsgMissingEncoded)
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}
