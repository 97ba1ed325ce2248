package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/some/path"},
		Auth:   AuthConfig{AccessTokenDuration: 24 * time.Hour},
		RateLimit: RateLimitConfig{
			Enabled:   true,
			PerMinute: 30,
			Burst:     10,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validTestConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validTestConfig()
	cfg.Data.BasePath = ""

	assert.Error(t, cfg.Validate())
}

func TestValidate_TokenDuration(t *testing.T) {
	cfg := validTestConfig()
	cfg.Auth.AccessTokenDuration = 0

	assert.Error(t, cfg.Validate())
}

func TestValidate_RateLimitValues(t *testing.T) {
	cfg := validTestConfig()
	cfg.RateLimit.PerMinute = 0
	assert.Error(t, cfg.Validate())

	cfg = validTestConfig()
	cfg.RateLimit.Burst = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_RateLimitIgnoredWhenDisabled(t *testing.T) {
	// Disabling the throttle and zeroing its knobs is a valid setup.
	cfg := validTestConfig()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.PerMinute = 0
	cfg.RateLimit.Burst = 0
	assert.NoError(t, cfg.Validate())
}

func TestDatabasePath(t *testing.T) {
	cfg := validTestConfig()
	assert.Equal(t, filepath.Join("/some/path", "inkwell.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join("/some/path", "search.bleve"), cfg.SearchIndexPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		deflt string
		want  string
	}{
		{"empty uses default", "", "/default", "/default"},
		{"tilde expands", "~/books", "", filepath.Join(home, "books")},
		{"absolute unchanged", "/var/lib/inkwell", "", "/var/lib/inkwell"},
		{"cleaned", "/var//lib/../lib/inkwell", "", "/var/lib/inkwell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path, tt.deflt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("INKWELL_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "INKWELL_TEST_KEY", "fallback"))
	assert.Equal(t, "from-env", getConfigValue("", "INKWELL_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getConfigValue("", "INKWELL_TEST_MISSING", "fallback"))
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"banana", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, getBoolConfigValue(tt.value, "INKWELL_TEST_MISSING", false))
		})
	}

	// Empty value falls through to the default.
	assert.True(t, getBoolConfigValue("", "INKWELL_TEST_MISSING", true))
}

func TestGetIntConfigValue(t *testing.T) {
	assert.Equal(t, 42, getIntConfigValue("42", "INKWELL_TEST_MISSING", 7))
	assert.Equal(t, 7, getIntConfigValue("", "INKWELL_TEST_MISSING", 7))
	assert.Equal(t, 7, getIntConfigValue("not-a-number", "INKWELL_TEST_MISSING", 7))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\n\nINKWELL_ENVFILE_A=alpha\nINKWELL_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("INKWELL_ENVFILE_A", "")
	t.Setenv("INKWELL_ENVFILE_B", "")
	os.Unsetenv("INKWELL_ENVFILE_A")
	os.Unsetenv("INKWELL_ENVFILE_B")

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "alpha", os.Getenv("INKWELL_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("INKWELL_ENVFILE_B"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("no-equals-sign\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
}
