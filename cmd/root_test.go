package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/deezgrab/internal/config"
	"github.com/velikanov/deezgrab/internal/constants"
)

// testARLToken is a well-formed credential for tests: 120 alphanumeric characters.
const testARLToken = "a1B2c3D4e5F6a1B2c3D4e5F6a1B2c3D4e5F6a1B2c3D4e5F6a1B2c3D4e5F6" +
	"a1B2c3D4e5F6a1B2c3D4e5F6a1B2c3D4e5F6a1B2c3D4e5F6a1B2c3D4e5F6"

const testBaseConfigContent = `
arl_token: "` + testARLToken + `"
quality: 1
output_path: "/config/output"
replace_tracks: false
download_speed_limit: "500KB"
log_level: "info"
`

// newFlagTestCommand builds a command carrying the same local flags as the root command.
func newFlagTestCommand() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	testCmd.Flags().Uint8P("quality", "q", 0, "preferred audio quality")
	testCmd.Flags().StringP("output", "o", "", "output directory")
	testCmd.Flags().BoolP("replace", "r", false, "replace existing files")
	testCmd.Flags().StringP("speed-limit", "s", "", "download speed limit")

	return testCmd
}

// writeTestConfig writes the given YAML content to a temp file and loads it.
func writeTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(content),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:funlen,nolintlint,tparallel // It's a comprehensive integration test. Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(1), cfg.Quality)
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.False(t, cfg.ReplaceTracks)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "quality flag only - override quality",
			flags: map[string]string{
				"quality": "2",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(2), cfg.Quality)
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.False(t, cfg.ReplaceTracks)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "output flag only - override output path",
			flags: map[string]string{
				"output": "/flag/output",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(1), cfg.Quality)
				assert.Equal(t, "/flag/output", cfg.OutputPath)
				assert.False(t, cfg.ReplaceTracks)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "replace flag only - override replace",
			flags: map[string]string{
				"replace": "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(1), cfg.Quality)
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.True(t, cfg.ReplaceTracks)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "speed-limit flag only - override speed limit",
			flags: map[string]string{
				"speed-limit": "1MB",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(1), cfg.Quality)
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.False(t, cfg.ReplaceTracks)
				assert.Equal(t, "1MB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"quality":     "3",
				"output":      "/all/flags/output",
				"replace":     "true",
				"speed-limit": "2MB",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(3), cfg.Quality)
				assert.Equal(t, "/all/flags/output", cfg.OutputPath)
				assert.True(t, cfg.ReplaceTracks)
				assert.Equal(t, "2MB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "quality and output flags - partial override",
			flags: map[string]string{
				"quality": "2",
				"output":  "/partial/output",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(2), cfg.Quality)
				assert.Equal(t, "/partial/output", cfg.OutputPath)
				assert.False(t, cfg.ReplaceTracks)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "replace and speed-limit flags - partial override",
			flags: map[string]string{
				"replace":     "true",
				"speed-limit": "750KB",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, uint8(1), cfg.Quality)
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.True(t, cfg.ReplaceTracks)
				assert.Equal(t, "750KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "replace false flag - explicit false override",
			flags: map[string]string{
				"replace": "false",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.False(t, cfg.ReplaceTracks)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeTestConfig(t, testBaseConfigContent)

			testCmd := newFlagTestCommand()

			for flagName, flagValue := range tt.flags {
				setErr := testCmd.Flags().Set(flagName, flagValue)
				require.NoError(t, setErr, "failed to set flag %s", flagName)
			}

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_AllQualityValues tests all valid quality values (1, 2, 3).
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_AllQualityValues(t *testing.T) {
	qualityTests := []struct {
		name            string
		qualityValue    int
		expectedQuality uint8
	}{
		{"quality 1 - MP3 128 Kbps", 1, 1},
		{"quality 2 - MP3 256 Kbps", 2, 2},
		{"quality 3 - MP3 320 Kbps", 3, 3},
	}

	for _, tt := range qualityTests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeTestConfig(t, testBaseConfigContent)

			testCmd := newFlagTestCommand()

			err := testCmd.Flags().Set("quality", strconv.Itoa(tt.qualityValue))
			require.NoError(t, err)

			err = bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedQuality, cfg.Quality)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are caught during validation.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	invalidTests := []struct {
		name          string
		flagName      string
		flagValue     string
		expectedError string
	}{
		{
			name:          "invalid quality - too low",
			flagName:      "quality",
			flagValue:     "0",
			expectedError: "invalid quality: must be between",
		},
		{
			name:          "invalid quality - too high",
			flagName:      "quality",
			flagValue:     "4",
			expectedError: "invalid quality: must be between",
		},
		{
			name:          "invalid speed limit",
			flagName:      "speed-limit",
			flagValue:     "invalid-speed",
			expectedError: "failed to parse download speed limit",
		},
	}

	for _, tt := range invalidTests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeTestConfig(t, testBaseConfigContent)

			testCmd := newFlagTestCommand()

			err := testCmd.Flags().Set(tt.flagName, tt.flagValue)
			require.NoError(t, err)

			err = bindFlagsToConfig(testCmd.Flags(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

// TestBindFlagsToConfig_MissingToken tests that validation rejects a config without a credential.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestBindFlagsToConfig_MissingToken(t *testing.T) {
	cfg := &config.Config{
		Quality:  2,
		LogLevel: "info",
	}

	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	err := bindFlagsToConfig(emptyFlags, cfg)
	require.ErrorIs(t, err, config.ErrMissingARLToken)
}

// TestBindFlagsToConfig_EmptyFlagSet tests handling of empty flag set.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		ARLToken: testARLToken,
		Quality:  2,
		LogLevel: "info",
	}

	// Calling with empty flag set should just validate the config.
	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	err := bindFlagsToConfig(emptyFlags, cfg)
	require.NoError(t, err)
}
