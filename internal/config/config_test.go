package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("ValidFullConfig", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/valid_full.yaml")
		require.NoError(t, err)

		assert.Equal(t, []string{"Template", "User*"}, cfg.Namespaces)

		assert.Len(t, cfg.Ignore.Values, 3)
		assert.Contains(t, cfg.Ignore.Values, "mailto:")
		assert.Contains(t, cfg.Ignore.Values, "gallery")

		assert.Len(t, cfg.Ignore.Patterns, 2)
		assert.Contains(t, cfg.Ignore.Patterns, "irc*")

		assert.Len(t, cfg.Ignore.Regex, 2)
		assert.Contains(t, cfg.Ignore.Regex, "^(sip|sips):$")

		assert.Equal(t, "yaml", cfg.Output.Format)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("ValidPartialConfig", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/valid_partial.yaml")
		require.NoError(t, err)

		assert.Equal(t, []string{"mailto:"}, cfg.Ignore.Values)
		assert.Empty(t, cfg.Ignore.Patterns)
		assert.Empty(t, cfg.Ignore.Regex)
		assert.Empty(t, cfg.Namespaces)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/empty.yaml")
		require.NoError(t, err)
		assert.True(t, cfg.IsEmpty())
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/invalid.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("FileNotExists", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/nonexistent.yaml")
		require.NoError(t, err) // Not an error, returns empty config
		assert.NotNil(t, cfg)
		assert.True(t, cfg.IsEmpty())
	})

	t.Run("ExtraFields", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/extra_fields.yaml")
		require.NoError(t, err)
		assert.Equal(t, []string{"mailto:"}, cfg.Ignore.Values)
	})
}

func TestLoad(t *testing.T) {
	// Runs in the package directory, where there's no .mwconfrc.yaml
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadFrom_DirectoryInsteadOfFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(t.TempDir())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFindAndLoad(t *testing.T) {
	t.Parallel()

	t.Run("FindsInParentDir", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		childDir := filepath.Join(tmpDir, "child")
		require.NoError(t, os.MkdirAll(childDir, 0o755))

		configPath := filepath.Join(tmpDir, DefaultConfigFileName)
		require.NoError(t, os.WriteFile(configPath, []byte("namespaces:\n  - Template\n"), 0o644))

		cfg, err := FindAndLoad(childDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Template"}, cfg.Namespaces)
	})

	t.Run("CloserConfigTakesPrecedence", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		childDir := filepath.Join(tmpDir, "child")
		require.NoError(t, os.MkdirAll(childDir, 0o755))

		parentConfig := filepath.Join(tmpDir, DefaultConfigFileName)
		require.NoError(t, os.WriteFile(parentConfig, []byte("ignore:\n  values:\n    - parent\n"), 0o644))
		childConfig := filepath.Join(childDir, DefaultConfigFileName)
		require.NoError(t, os.WriteFile(childConfig, []byte("ignore:\n  values:\n    - child\n"), 0o644))

		cfg, err := FindAndLoad(childDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"child"}, cfg.Ignore.Values)
	})

	t.Run("NotFoundReturnsEmpty", func(t *testing.T) {
		t.Parallel()
		cfg, err := FindAndLoad(t.TempDir())
		require.NoError(t, err)
		assert.True(t, cfg.IsEmpty())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"Empty", Config{}, ""},
		{"GlobNamespace", Config{Namespaces: []string{"User*", "Template"}}, ""},
		{"InvalidNamespacePattern", Config{Namespaces: []string{"[User"}}, "invalid namespace pattern"},
		{"ValidFormat", Config{Output: OutputConfig{Format: "toml"}}, ""},
		{"InvalidFormat", Config{Output: OutputConfig{Format: "csv"}}, "invalid output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_IsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{"EmptyConfig", Config{}, true},
		{"WithValues", Config{Ignore: IgnoreConfig{Values: []string{"mailto:"}}}, false},
		{"WithPatterns", Config{Ignore: IgnoreConfig{Patterns: []string{"irc*"}}}, false},
		{"WithRegex", Config{Ignore: IgnoreConfig{Regex: []string{"^sip"}}}, false},
		{"WithNamespaces", Config{Namespaces: []string{"Template"}}, false},
		{"WithFormat", Config{Output: OutputConfig{Format: "json"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.config.IsEmpty())
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	t.Parallel()

	t.Run("MergesBothConfigs", func(t *testing.T) {
		t.Parallel()
		cfg1 := &Config{
			Namespaces: []string{"Template"},
			Ignore: IgnoreConfig{
				Values:   []string{"value1"},
				Patterns: []string{"pattern1"},
				Regex:    []string{"regex1"},
			},
			Output: OutputConfig{Format: "json"},
		}
		cfg2 := &Config{
			Namespaces: []string{"Module"},
			Ignore: IgnoreConfig{
				Values:   []string{"value2"},
				Patterns: []string{"pattern2"},
				Regex:    []string{"regex2"},
			},
			Output: OutputConfig{Format: "yaml"},
		}

		cfg1.Merge(cfg2)

		assert.Equal(t, []string{"Template", "Module"}, cfg1.Namespaces)
		assert.Equal(t, []string{"value1", "value2"}, cfg1.Ignore.Values)
		assert.Len(t, cfg1.Ignore.Patterns, 2)
		assert.Len(t, cfg1.Ignore.Regex, 2)
		assert.Equal(t, "yaml", cfg1.Output.Format)
	})

	t.Run("MergeNilOther", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Ignore: IgnoreConfig{Values: []string{"value"}}}
		cfg.Merge(nil)
		assert.Equal(t, []string{"value"}, cfg.Ignore.Values)
	})

	t.Run("EmptyFormatKeepsOurs", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Output: OutputConfig{Format: "json"}}
		cfg.Merge(&Config{})
		assert.Equal(t, "json", cfg.Output.Format)
	})
}

func TestUserConfigPath(t *testing.T) {
	t.Parallel()

	path := UserConfigPath()

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, UserConfigFileName, filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}
