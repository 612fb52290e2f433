package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cliEnv is the configuration read from the environment.
type cliEnv struct {
	pack     string
	storage  string
	lang     string
	logLevel string
	color    string
}

// cli carries what every pack command needs.
type cli struct {
	env    cliEnv
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// loadEnv reads .env when present. Variables already set in the process
// environment win.
func loadEnv() cliEnv {
	_ = godotenv.Load(EnvFile)
	return cliEnv{
		pack:     os.Getenv(EnvPack),
		storage:  os.Getenv(EnvStorage),
		lang:     os.Getenv(EnvLang),
		logLevel: os.Getenv(EnvLogLevel),
		color:    os.Getenv(EnvColor),
	}
}

// newLogger builds the CLI logger. Debug uses the human readable
// development encoder, other levels the JSON production encoder. An empty
// level disables logging.
func newLogger(level string, out io.Writer) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.New(ErrMsgInvalidLogLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if lvl == zapcore.DebugLevel {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(out), lvl)
	return zap.New(core), nil
}

// colorMode picks the flag value over the environment, defaulting to auto.
func (c *cli) colorMode(flagValue string) (string, error) {
	mode := flagValue
	if mode == "" {
		mode = c.env.color
	}
	switch mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	}
	return "", errors.New(ErrMsgInvalidColor)
}
