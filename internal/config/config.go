package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MikeBiancalana/pepys/internal/logger"
	"github.com/mitchellh/go-homedir"
)

const (
	AppName        = "pepys"
	ConfigFileName = "pepys.conf"

	// DefaultDiaryDir is the folder under the home directory used when no
	// diary_path is configured.
	DefaultDiaryDir = "pepys"

	KeyDiaryPath = "diary_path"
	KeyEditor    = "editor"

	separator = " = "
)

// ConfigurationError reports that a required platform directory could not
// be located or the config file could not be read.
type ConfigurationError struct {
	What string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return "configuration: " + e.What
	}
	return fmt.Sprintf("configuration: %s: %v", e.What, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Settings is the read-only key/value view of pepys.conf.
type Settings struct {
	values map[string]string
}

// NewSettings copies values into a Settings.
func NewSettings(values map[string]string) Settings {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Settings{values: copied}
}

// Get returns the value for key and whether it was set.
func (s Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Map returns a copy of all key/value pairs.
func (s Settings) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// FilePath returns the location of pepys.conf.
// Can be overridden with PEPYS_CONFIG_FILE environment variable (primarily for testing)
func FilePath() (string, error) {
	if override := os.Getenv("PEPYS_CONFIG_FILE"); override != "" {
		return override, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", &ConfigurationError{What: "failed to find user configuration directory", Err: err}
	}

	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the settings file at path. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no config file", "path", path)
		return NewSettings(nil), nil
	}
	if err != nil {
		return Settings{}, &ConfigurationError{What: "failed to read config file " + path, Err: err}
	}
	defer f.Close()

	values, err := Parse(f)
	if err != nil {
		return Settings{}, &ConfigurationError{What: "failed to read config file " + path, Err: err}
	}

	logger.Debug("loaded config file", "path", path, "keys", len(values))
	return Settings{values: values}, nil
}

// Parse reads "key = value" lines. Lines without the separator are skipped and
// later keys override earlier ones.
func Parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		key, value, found := strings.Cut(line, separator)
		if !found {
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

// HomeFunc returns the user's home directory.
type HomeFunc func() (string, error)

// DiaryRoot returns the directory holding all entries: diary_path when
// configured, otherwise <home>/pepys. A leading ~ in diary_path is expanded.
func DiaryRoot(settings Settings, home HomeFunc) (string, error) {
	if home == nil {
		home = homedir.Dir
	}

	if override, ok := settings.Get(KeyDiaryPath); ok {
		if isHomeRelative(override) {
			dir, err := home()
			if err != nil {
				return "", &ConfigurationError{What: "failed to expand " + KeyDiaryPath, Err: err}
			}
			return filepath.Join(dir, override[1:]), nil
		}
		return override, nil
	}

	dir, err := home()
	if err != nil {
		return "", &ConfigurationError{What: "failed to locate home directory", Err: err}
	}
	if dir == "" {
		return "", &ConfigurationError{What: "failed to locate home directory"}
	}

	return filepath.Join(dir, DefaultDiaryDir), nil
}

// isHomeRelative reports whether p starts with ~ followed by nothing or a
// path separator. ~\ only counts on Windows; elsewhere \ is a filename character.
func isHomeRelative(p string) bool {
	if p == "~" || strings.HasPrefix(p, "~/") {
		return true
	}
	return filepath.Separator == '\\' && strings.HasPrefix(p, `~\`)
}
