package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"

	strcode "github.com/itsatony/go-strcode"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	pack   packOptions
	format string
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid   bool                    `json:"valid"`
	IsoCode string                  `json:"isocode,omitempty"`
	Strings int                     `json:"strings"`
	Issues  []validationIssueOutput `json:"issues,omitempty"`
}

type validationIssueOutput struct {
	Key     string `json:"key,omitempty"`
	Message string `json:"message"`
	Line    string `json:"line,omitempty"`
	Column  string `json:"column,omitempty"`
}

func (c *cli) runValidate(args []string) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgMissingPack, err)
		return ExitCodeUsageError
	}

	src, err := c.validateSource(context.Background(), cfg.pack)
	if err != nil {
		fmt.Fprintf(c.stderr, FmtErrorWithCause, ErrMsgLoadPackFailed, err)
		return ExitCodeInputError
	}

	output := validationOutput{IsoCode: src.Header.IsoCode}
	pack, err := strcode.CompileLanguagePack(src, c.logger)
	if err == nil {
		output.Valid = true
		output.Strings = pack.Len()
	} else {
		output.Issues = collectIssues(err)
	}
	c.logger.Info(LogMsgValidatedPack,
		zap.String(LogFieldPack, output.IsoCode),
		zap.Int(LogFieldErrorCount, len(output.Issues)))

	if cfg.format == OutputFormatJSON {
		return outputValidationJSON(output, c.stdout)
	}
	return outputValidationText(output, c.stdout)
}

// validateSource reads the pack source without compiling it.
func (c *cli) validateSource(ctx context.Context, opts packOptions) (*strcode.LanguagePackSource, error) {
	if opts.storage == "" {
		return loadPackSource(ctx, opts, c.stdin)
	}
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
	return storage.Get(ctx, opts.lang)
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}
	bindPackFlags(fs, &cfg.pack)
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.pack.path == "" && cfg.pack.storage == "" {
		return nil, errors.New(ErrMsgMissingPack)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// collectIssues splits a pack compile failure into one issue per error.
func collectIssues(err error) []validationIssueOutput {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	issues := make([]validationIssueOutput, 0, len(errs))
	for _, e := range errs {
		issue := validationIssueOutput{Message: e.Error()}
		var cerr *cuserr.CustomError
		if errors.As(e, &cerr) {
			issue.Key, _ = cerr.GetMetadata(strcode.MetaKeyKey)
			issue.Line, _ = cerr.GetMetadata(strcode.MetaKeyLine)
			issue.Column, _ = cerr.GetMetadata(strcode.MetaKeyColumn)
			if reason, ok := cerr.GetMetadata(strcode.MetaKeyReason); ok {
				issue.Message = reason
			}
		}
		issues = append(issues, issue)
	}
	return issues
}

func outputValidationText(output validationOutput, stdout io.Writer) int {
	if output.Valid {
		fmt.Fprintf(stdout, ValidationTextSuccess+FmtNewline, output.IsoCode, output.Strings)
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, ValidationTextIssueHeader)
	for _, issue := range output.Issues {
		if issue.Line == "" {
			fmt.Fprintf(stdout, ValidationTextPackIssue+FmtNewline, issue.Message)
			continue
		}
		fmt.Fprintf(stdout, ValidationTextIssueFormat+FmtNewline,
			issue.Key, issue.Message, issue.Line, issue.Column)
	}
	fmt.Fprintf(stdout, ValidationTextErrorSummary+FmtNewline, len(output.Issues))
	return ExitCodeValidationError
}

func outputValidationJSON(output validationOutput, stdout io.Writer) int {
	jsonBytes, _ := json.MarshalIndent(output, "", JSONIndent)
	fmt.Fprintln(stdout, string(jsonBytes))

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}
