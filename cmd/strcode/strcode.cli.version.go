package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"gopkg.in/yaml.v3"

	strcode "github.com/itsatony/go-strcode"
)

// versionsFileSearch lists where a versions.yaml overriding the build
// information is looked for.
var versionsFileSearch = []string{VersionsFile, "../" + VersionsFile, "../../" + VersionsFile}

// Build setting keys reported by the go toolchain
const (
	buildSettingRevision = "vcs.revision"
	buildSettingTime     = "vcs.time"
	buildVersionDevel    = "(devel)"
)

// versionConfig holds parsed version command configuration
type versionConfig struct {
	format string
}

// versionInfo is printed by the version command.
type versionInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Branch    string   `json:"branch"`
	BuildTime string   `json:"build_time"`
	GoVersion string   `json:"go_version"`
	Drivers   []string `json:"storage_drivers"`
}

// versionsYAML is the layout of versions.yaml.
type versionsYAML struct {
	Project struct {
		Version string `yaml:"version"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
		Branch string `yaml:"branch"`
	} `yaml:"git"`
	Build struct {
		Time string `yaml:"time"`
	} `yaml:"build"`
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseVersionFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	v := getVersionInfo()
	if cfg.format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(v, "", JSONIndent)
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		v.Version, v.Commit, v.Branch, v.BuildTime, v.GoVersion, strings.Join(v.Drivers, ", "))
	return ExitCodeSuccess
}

func parseVersionFlags(args []string) (*versionConfig, error) {
	fs := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &versionConfig{}
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// getVersionInfo collects build information from the binary, then lets
// versions.yaml override it.
func getVersionInfo() *versionInfo {
	v := &versionInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
		Drivers:   strcode.ListPackStorageDrivers(),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != buildVersionDevel {
			v.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case buildSettingRevision:
				v.Commit = s.Value
			case buildSettingTime:
				v.BuildTime = s.Value
			}
		}
	}

	for _, path := range versionsFileSearch {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var vy versionsYAML
		if err := yaml.Unmarshal(data, &vy); err != nil {
			continue
		}
		setIfPresent(&v.Version, vy.Project.Version)
		setIfPresent(&v.Commit, vy.Git.Commit)
		setIfPresent(&v.Branch, vy.Git.Branch)
		setIfPresent(&v.BuildTime, vy.Build.Time)
		break
	}

	return v
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
