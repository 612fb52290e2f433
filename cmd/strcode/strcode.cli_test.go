package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	strcode "github.com/itsatony/go-strcode"
)

// Test data constants
const (
	testPackTOML = `
[header]
name = "German"
isocode = "de_DE"
plural_form = 0
digit_group_separator = "."

[[strings]]
key = "STR_HOUSES"
text = "{COMMA} Haus{P \"\" er}"

[[strings]]
key = "STR_WARNING"
text = "{RED}Achtung"
`
	testBrokenPackYAML = `
header:
  name: Broken
  isocode: fr_FR
  plural_form: 2
strings:
  - key: STR_OK
    text: 'bien'
  - key: STR_BAD
    text: '{NOPE}'
`
)

// setupTestPack writes the test pack to a temp directory
func setupTestPack(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "de_DE.toml"), []byte(testPackTOML), FilePermissions))
	return tmpDir
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := run(args, strings.NewReader(stdin), stdout, stderr)
	return exitCode, stdout.String(), stderr.String()
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	exitCode, stdout, _ := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameRender)
}

func TestRun_UnknownCommand(t *testing.T) {
	exitCode, stdout, _ := runCLI(t, "", "unknown")

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stdout, ErrMsgUnknownCommand)
}

func TestRun_BadLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "loud")

	exitCode, _, stderr := runCLI(t, "", CmdNameRender, "-k", "STR_VEHICLE_COUNT")

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr, ErrMsgInvalidLogLevel)
}

// ==================== Help command tests ====================

func TestHelp(t *testing.T) {
	tests := []struct {
		command  string
		expected string
	}{
		{CmdNameRender, HelpRenderUsage},
		{CmdNameEncode, HelpEncodeUsage},
		{CmdNameDecode, HelpDecodeUsage},
		{CmdNameValidate, HelpValidateUsage},
		{CmdNameVersion, HelpVersionUsage},
		{CmdNameHelp, HelpHelpUsage},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			exitCode := runHelp([]string{tt.command}, stdout)
			assert.Equal(t, ExitCodeSuccess, exitCode)
			assert.Contains(t, stdout.String(), tt.expected)
		})
	}

	t.Run("unknown command", func(t *testing.T) {
		stdout := &bytes.Buffer{}
		exitCode := runHelp([]string{"unknown"}, stdout)
		assert.Equal(t, ExitCodeUsageError, exitCode)
		assert.Contains(t, stdout.String(), ErrMsgUnknownCommand)
	})
}

// ==================== Version command tests ====================

func TestVersion_TextFormat(t *testing.T) {
	exitCode, stdout, _ := runCLI(t, "", CmdNameVersion)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, strcode.DriverFilesystem)
}

func TestVersion_JSONFormat(t *testing.T) {
	exitCode, stdout, _ := runCLI(t, "", CmdNameVersion, "-F", OutputFormatJSON)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	var v versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &v))
	assert.NotEmpty(t, v.GoVersion)
	assert.Contains(t, v.Drivers, strcode.DriverMemory)
}

func TestVersion_InvalidFormat(t *testing.T) {
	exitCode, _, stderr := runCLI(t, "", CmdNameVersion, "-F", "xml")

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr, ErrMsgInvalidFormat)
}

// ==================== Render command tests ====================

func TestRender_BundledPack(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"plural", []string{"-k", "STR_VEHICLE_COUNT", "-d", "[3]"}, "3 vehicles\n"},
		{"singular", []string{"--key", "STR_VEHICLE_COUNT", "--params", "[1]"}, "1 vehicle\n"},
		{"template source", []string{"-s", `{COMMA} train{P "" s}`, "-d", "[2]"}, "2 trains\n"},
		{"string reference", []string{"-k", "STR_JUST_RAW_STRING", "-d", `["hi"]`}, "hi\n"},
		{"colour dropped without a terminal", []string{"-k", "STR_CASH_LOSS", "-d", "[5]"}, "Loss: £5\n"},
		{"colour forced", []string{"-k", "STR_CASH_LOSS", "-d", "[5]", "--color", ColorAlways}, "\x1b[31mLoss: £5\x1b[0m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode, stdout, stderr := runCLI(t, "", append([]string{CmdNameRender}, tt.args...)...)
			require.Equal(t, ExitCodeSuccess, exitCode, stderr)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestRender_PackFile(t *testing.T) {
	dir := setupTestPack(t)
	packPath := filepath.Join(dir, "de_DE.toml")

	exitCode, stdout, stderr := runCLI(t, "", CmdNameRender, "-p", packPath, "-k", "STR_HOUSES", "-d", "[1200]")

	require.Equal(t, ExitCodeSuccess, exitCode, stderr)
	assert.Equal(t, "1.200 Hauser\n", stdout)
}

func TestRender_PackFromEnvironment(t *testing.T) {
	dir := setupTestPack(t)
	t.Setenv(EnvPack, filepath.Join(dir, "de_DE.toml"))

	exitCode, stdout, stderr := runCLI(t, "", CmdNameRender, "-k", "STR_HOUSES", "-d", "[1]")

	require.Equal(t, ExitCodeSuccess, exitCode, stderr)
	assert.Equal(t, "1 Haus\n", stdout)
}

func TestRender_Storage(t *testing.T) {
	dir := setupTestPack(t)

	exitCode, stdout, stderr := runCLI(t, "", CmdNameRender,
		"--storage", strcode.DriverFilesystem+StorageSeparator+dir,
		"-l", "de_DE",
		"-k", "STR_HOUSES", "-d", "[2]")

	require.Equal(t, ExitCodeSuccess, exitCode, stderr)
	assert.Equal(t, "2 Hauser\n", stdout)
}

func TestRender_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	exitCode, stdout, _ := runCLI(t, "", CmdNameRender, "-k", "STR_VEHICLE_COUNT", "-d", "[2]", "-o", out)

	require.Equal(t, ExitCodeSuccess, exitCode)
	assert.Empty(t, stdout)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "2 vehicles\n", string(data))
}

func TestRender_Errors(t *testing.T) {
	dir := setupTestPack(t)

	tests := []struct {
		name     string
		args     []string
		exitCode int
		message  string
	}{
		{"no key", nil, ExitCodeUsageError, ErrMsgMissingKey},
		{"bad colour", []string{"-k", "STR_X", "--color", "rainbow"}, ExitCodeUsageError, ErrMsgInvalidColor},
		{"bad params", []string{"-k", "STR_VEHICLE_COUNT", "-d", "[1"}, ExitCodeInputError, ErrMsgInvalidParams},
		{"unknown key", []string{"-k", "STR_NOPE"}, ExitCodeError, ErrMsgRenderFailed},
		{"missing pack file", []string{"-p", filepath.Join(dir, "nl_NL.yaml"), "-k", "STR_X"}, ExitCodeInputError, ErrMsgLoadPackFailed},
		{"unknown pack extension", []string{"-p", filepath.Join(dir, "pack.txt"), "-k", "STR_X"}, ExitCodeInputError, ErrMsgPackFormatFromPath},
		{"storage without driver", []string{"--storage", dir, "-l", "de_DE", "-k", "STR_X"}, ExitCodeInputError, ErrMsgBadStorageFlag},
		{"storage without lang", []string{"--storage", "memory:x", "-k", "STR_X"}, ExitCodeInputError, ErrMsgMissingLang},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode, _, stderr := runCLI(t, "", append([]string{CmdNameRender}, tt.args...)...)
			assert.Equal(t, tt.exitCode, exitCode)
			assert.Contains(t, stderr, tt.message)
		})
	}
}

// ==================== Encode / decode tests ====================

func TestEncode_RenderRoundTrip(t *testing.T) {
	exitCode, encoded, stderr := runCLI(t, "", CmdNameEncode, "-k", "STR_VEHICLE_COUNT", "-d", "[4]")
	require.Equal(t, ExitCodeSuccess, exitCode, stderr)
	encoded = strings.TrimSuffix(encoded, FmtNewline)
	assert.True(t, strcode.EncodedString(encoded).IsEncoded())

	exitCode, stdout, stderr := runCLI(t, "", CmdNameRender, "-e", encoded)
	require.Equal(t, ExitCodeSuccess, exitCode, stderr)
	assert.Equal(t, "4 vehicles\n", stdout)
}

func TestEncode_Errors(t *testing.T) {
	exitCode, _, stderr := runCLI(t, "", CmdNameEncode)
	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr, ErrMsgMissingKey)

	exitCode, _, stderr = runCLI(t, "", CmdNameEncode, "-k", "STR_NOPE")
	assert.Equal(t, ExitCodeInputError, exitCode)
	assert.Contains(t, stderr, ErrMsgUnknownStringKey)
}

func TestDecode(t *testing.T) {
	pack, err := strcode.EnglishPack()
	require.NoError(t, err)
	id, ok := pack.Lookup("STR_VEHICLE_COUNT")
	require.True(t, ok)
	enc := strcode.MustEncode(id, strcode.Int(-7), strcode.Str("depot"), strcode.Parameter{})

	t.Run("text", func(t *testing.T) {
		exitCode, stdout, stderr := runCLI(t, "", CmdNameDecode, "-e", string(enc))
		require.Equal(t, ExitCodeSuccess, exitCode, stderr)
		assert.Contains(t, stdout, "id: "+id.String())
		assert.Contains(t, stdout, "  0: number -7")
		assert.Contains(t, stdout, "  1: text depot")
		assert.Contains(t, stdout, "  2: empty")
	})

	t.Run("json from stdin", func(t *testing.T) {
		exitCode, stdout, stderr := runCLI(t, string(enc)+"\n", CmdNameDecode, "-e", InputSourceStdin, "-F", OutputFormatJSON)
		require.Equal(t, ExitCodeSuccess, exitCode, stderr)

		var out decodeOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		assert.Equal(t, id.String(), out.ID)
		require.Len(t, out.Params, 3)
		assert.Equal(t, decodeParam{Kind: ParamKindText, Value: "depot"}, out.Params[1])
	})

	t.Run("malformed", func(t *testing.T) {
		exitCode, _, stderr := runCLI(t, "", CmdNameDecode, "-e", "plain text")
		assert.Equal(t, ExitCodeInputError, exitCode)
		assert.Contains(t, stderr, ErrMsgDecodeFailed)
	})

	t.Run("missing input", func(t *testing.T) {
		exitCode, _, stderr := runCLI(t, "", CmdNameDecode)
		assert.Equal(t, ExitCodeUsageError, exitCode)
		assert.Contains(t, stderr, ErrMsgMissingEncoded)
	})
}

// ==================== Validate command tests ====================

func TestValidate_ValidPack(t *testing.T) {
	dir := setupTestPack(t)

	exitCode, stdout, stderr := runCLI(t, "", CmdNameValidate, "-p", filepath.Join(dir, "de_DE.toml"))

	require.Equal(t, ExitCodeSuccess, exitCode, stderr)
	assert.Contains(t, stdout, "Language pack de_DE is valid: 2 strings")
}

func TestValidate_BrokenPack(t *testing.T) {
	t.Run("text from stdin", func(t *testing.T) {
		exitCode, stdout, _ := runCLI(t, testBrokenPackYAML, CmdNameValidate, "-p", InputSourceStdin)

		assert.Equal(t, ExitCodeValidationError, exitCode)
		assert.Contains(t, stdout, ValidationTextIssueHeader)
		assert.Contains(t, stdout, "[STR_BAD]")
		assert.Contains(t, stdout, "1 error(s)")
	})

	t.Run("json", func(t *testing.T) {
		exitCode, stdout, _ := runCLI(t, testBrokenPackYAML, CmdNameValidate, "-p", InputSourceStdin, "-F", OutputFormatJSON)

		assert.Equal(t, ExitCodeValidationError, exitCode)
		var out validationOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		assert.False(t, out.Valid)
		assert.Equal(t, "fr_FR", out.IsoCode)
		require.Len(t, out.Issues, 1)
		assert.Equal(t, "STR_BAD", out.Issues[0].Key)
		assert.Equal(t, "1", out.Issues[0].Line)
	})
}

func TestValidate_Errors(t *testing.T) {
	exitCode, _, stderr := runCLI(t, "", CmdNameValidate)
	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr, ErrMsgMissingPack)

	exitCode, _, stderr = runCLI(t, "header: [", CmdNameValidate, "-p", InputSourceStdin)
	assert.Equal(t, ExitCodeInputError, exitCode)
	assert.Contains(t, stderr, ErrMsgLoadPackFailed)
}
