package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
)

func boolPtr(b bool) *bool { return &b }

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.PreprocessEnabled())
	assert.False(t, cfg.RecoverEncodingEnabled())
	assert.Equal(t, config.DefaultExtensions(), cfg.SourceExtensions())
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.NameFormatName, cfg.NameFormat)
}

func TestConfig_EffectiveSettings(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.True(t, nilCfg.PreprocessEnabled())
	assert.False(t, nilCfg.RecoverEncodingEnabled())
	assert.Equal(t, config.DefaultExtensions(), nilCfg.SourceExtensions())

	cfg := &config.Config{
		Preprocess:      boolPtr(false),
		RecoverEncoding: boolPtr(true),
		Extensions:      []string{".nasm"},
	}
	assert.False(t, cfg.PreprocessEnabled())
	assert.True(t, cfg.RecoverEncodingEnabled())
	assert.Equal(t, []string{".nasm"}, cfg.SourceExtensions())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Preprocess: boolPtr(true),
			Ignore:     []string{"vendor/**"},
			Extensions: []string{".asm"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".s"
		*clone.Preprocess = false

		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, ".asm", original.Extensions[0])
		assert.True(t, *original.Preprocess)
	})

	t.Run("preserves cli-only fields", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Format = config.FormatSARIF
		original.NameFormat = config.NameFormatCombined
		original.Jobs = 4
		original.Strict = true
		original.MemoryLimit = 1 << 20
		original.RequiredVersion = ">= 1.0"

		clone := original.Clone()
		assert.Equal(t, config.FormatSARIF, clone.Format)
		assert.Equal(t, config.NameFormatCombined, clone.NameFormat)
		assert.Equal(t, 4, clone.Jobs)
		assert.True(t, clone.Strict)
		assert.Equal(t, int64(1<<20), clone.MemoryLimit)
		assert.Equal(t, ">= 1.0", clone.RequiredVersion)
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
	}{
		{
			name:  "empty document leaves everything unset",
			input: "",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Nil(t, cfg.Preprocess)
				assert.Nil(t, cfg.Extensions)
			},
		},
		{
			name:  "all keys",
			input: "preprocess: false\nrecover_encoding: true\nextensions: [\".nasm\"]\nignore: [\"build/**\"]\ndetect_language: true\nmemory_limit: 4096\nrequired_version: \"^1.2\"\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				require.NotNil(t, cfg.Preprocess)
				assert.False(t, *cfg.Preprocess)
				assert.True(t, cfg.RecoverEncodingEnabled())
				assert.Equal(t, []string{".nasm"}, cfg.Extensions)
				assert.Equal(t, []string{"build/**"}, cfg.Ignore)
				assert.True(t, cfg.DetectLanguage)
				assert.Equal(t, int64(4096), cfg.MemoryLimit)
				assert.Equal(t, "^1.2", cfg.RequiredVersion)
			},
		},
		{
			name:  "cli-only keys are ignored",
			input: "format: json\njobs: 8\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Empty(t, cfg.Format)
				assert.Zero(t, cfg.Jobs)
			},
		},
		{
			name:    "malformed yaml",
			input:   "preprocess: [",
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.FromYAML([]byte(testCase.input))
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			testCase.check(t, cfg)
		})
	}
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Preprocess: boolPtr(false), Jobs: 3}
	out, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "# header\n\n"))
	assert.Contains(t, text, "preprocess: false")
	assert.NotContains(t, text, "jobs")

	back, err := config.FromYAML(out)
	require.NoError(t, err)
	require.NotNil(t, back.Preprocess)
	assert.False(t, *back.Preprocess)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses", func(t *testing.T) {
		t.Parallel()

		out, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), config.DefaultTemplateHeader()))

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.True(t, cfg.PreprocessEnabled())
	})

	t.Run("full template lists the catalog", func(t *testing.T) {
		t.Parallel()

		out, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)
		for _, info := range diag.Catalog() {
			assert.Contains(t, string(out), info.Code()+" "+info.Name)
		}

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
	})

	t.Run("json template", func(t *testing.T) {
		t.Parallel()

		out, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"preprocess": true`)
	})
}
