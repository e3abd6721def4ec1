package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedHome(dir string) HomeFunc {
	return func() (string, error) { return dir, nil }
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "empty",
			input:    "",
			expected: map[string]string{},
		},
		{
			name:     "single key",
			input:    "diary_path = /custom/dir\n",
			expected: map[string]string{"diary_path": "/custom/dir"},
		},
		{
			name:     "lines without separator are ignored",
			input:    "# comment\ndiary_path=/nope\n\ndiary_path = /yes\n",
			expected: map[string]string{"diary_path": "/yes"},
		},
		{
			name:     "splits on first separator only",
			input:    "editor = code = --wait\n",
			expected: map[string]string{"editor": "code = --wait"},
		},
		{
			name:     "later keys override earlier ones",
			input:    "diary_path = /a\ndiary_path = /b\n",
			expected: map[string]string{"diary_path": "/b"},
		},
		{
			name:     "unknown keys are kept",
			input:    "colour = blue\r\n",
			expected: map[string]string{"colour": "blue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "pepys.conf"))
	require.NoError(t, err)
	assert.Empty(t, settings.Map())
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepys.conf")
	require.NoError(t, os.WriteFile(path, []byte("diary_path = /custom/dir\neditor = nano\n"), 0644))

	settings, err := Load(path)
	require.NoError(t, err)

	v, ok := settings.Get(KeyDiaryPath)
	assert.True(t, ok)
	assert.Equal(t, "/custom/dir", v)

	v, ok = settings.Get(KeyEditor)
	assert.True(t, ok)
	assert.Equal(t, "nano", v)
}

func TestLoad_UnreadableIsConfigurationError(t *testing.T) {
	// a directory in place of the file cannot be read as lines
	path := t.TempDir()

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestFilePath_EnvOverride(t *testing.T) {
	t.Setenv("PEPYS_CONFIG_FILE", "/etc/pepys-test.conf")

	path, err := FilePath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/pepys-test.conf", path)
}

func TestSettings_IsACopy(t *testing.T) {
	src := map[string]string{KeyDiaryPath: "/a"}
	settings := NewSettings(src)
	src[KeyDiaryPath] = "/b"

	v, _ := settings.Get(KeyDiaryPath)
	assert.Equal(t, "/a", v)

	m := settings.Map()
	m[KeyDiaryPath] = "/c"
	v, _ = settings.Get(KeyDiaryPath)
	assert.Equal(t, "/a", v)
}

func TestDiaryRoot(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "u")

	tests := []struct {
		name     string
		settings Settings
		expected string
	}{
		{
			name:     "default under home",
			settings: NewSettings(nil),
			expected: filepath.Join(home, "pepys"),
		},
		{
			name:     "diary_path takes precedence",
			settings: NewSettings(map[string]string{KeyDiaryPath: "/custom/dir"}),
			expected: "/custom/dir",
		},
		{
			name:     "tilde expands to home",
			settings: NewSettings(map[string]string{KeyDiaryPath: "~/notes/diary"}),
			expected: filepath.Join(home, "notes", "diary"),
		},
		{
			name:     "bare tilde",
			settings: NewSettings(map[string]string{KeyDiaryPath: "~"}),
			expected: home,
		},
		{
			name:     "relative value is returned unchanged",
			settings: NewSettings(map[string]string{KeyDiaryPath: "diary"}),
			expected: "diary",
		},
		{
			name:     "unknown keys are ignored",
			settings: NewSettings(map[string]string{"diary": "/nope"}),
			expected: filepath.Join(home, "pepys"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := DiaryRoot(tt.settings, fixedHome(home))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, root)
		})
	}
}

func TestDiaryRoot_BackslashAfterTilde(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "u")
	settings := NewSettings(map[string]string{KeyDiaryPath: `~\diary`})

	root, err := DiaryRoot(settings, fixedHome(home))
	require.NoError(t, err)

	if filepath.Separator == '\\' {
		assert.Equal(t, filepath.Join(home, "diary"), root)
	} else {
		// a literal directory named ~\diary
		assert.Equal(t, `~\diary`, root)
	}
}

func TestIsHomeRelative(t *testing.T) {
	assert.True(t, isHomeRelative("~"))
	assert.True(t, isHomeRelative("~/diary"))
	assert.False(t, isHomeRelative("~other/diary"))
	assert.False(t, isHomeRelative("/custom/~/dir"))
	assert.Equal(t, filepath.Separator == '\\', isHomeRelative(`~\diary`))
}

func TestDiaryRoot_NoHome(t *testing.T) {
	noHome := func() (string, error) { return "", errors.New("no home") }

	t.Run("fails without override", func(t *testing.T) {
		_, err := DiaryRoot(NewSettings(nil), noHome)
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, err.Error(), "home directory")
	})

	t.Run("absolute override does not need home", func(t *testing.T) {
		root, err := DiaryRoot(NewSettings(map[string]string{KeyDiaryPath: "/custom/dir"}), noHome)
		require.NoError(t, err)
		assert.Equal(t, "/custom/dir", root)
	})

	t.Run("empty home is an error", func(t *testing.T) {
		_, err := DiaryRoot(NewSettings(nil), fixedHome(""))
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})
}
