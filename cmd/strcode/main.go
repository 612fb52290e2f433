package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runHelp(nil, stdout)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case CmdNameVersion:
		return runVersion(cmdArgs, stdout, stderr)
	case CmdNameHelp:
		return runHelp(cmdArgs, stdout)
	case CmdNameRender, CmdNameEncode, CmdNameDecode, CmdNameValidate:
	default:
		// Unknown command - show error and help
		return runHelp([]string{cmd}, stdout)
	}

	env := loadEnv()
	logger, err := newLogger(env.logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoggerFailed, err)
		return ExitCodeUsageError
	}
	defer func() { _ = logger.Sync() }()

	c := &cli{env: env, logger: logger, stdin: stdin, stdout: stdout, stderr: stderr}
	switch cmd {
	case CmdNameRender:
		return c.runRender(cmdArgs)
	case CmdNameEncode:
		return c.runEncode(cmdArgs)
	case CmdNameDecode:
		return c.runDecode(cmdArgs)
	default:
		return c.runValidate(cmdArgs)
	}
}
