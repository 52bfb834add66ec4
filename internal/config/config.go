package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/velikanov/deezgrab/internal/constants"
	"github.com/velikanov/deezgrab/internal/logger"
	"github.com/velikanov/deezgrab/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// ARLToken is the long-lived Deezer session credential.
	// It may also be supplied via the DEEZER_ARL_TOKEN environment variable.
	ARLToken string `mapstructure:"arl_token"`
	// Quality specifies the preferred audio quality (1=MP3 128k, 2=MP3 256k, 3=MP3 320k).
	// Lower qualities are tried automatically when the preferred one is unavailable.
	Quality uint8 `mapstructure:"quality"`
	// OutputPath is the directory path where downloaded files will be saved.
	OutputPath string `mapstructure:"output_path"`
	// ReplaceTracks indicates whether to replace existing track files.
	// Defaults to true: a re-run overwrites the same-named prior file.
	ReplaceTracks bool `mapstructure:"replace_tracks"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// DeezerBaseURL is the base URL for the Deezer web pages and gateway API (set automatically).
	DeezerBaseURL string
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes.
	ParsedDownloadSpeedLimit int64
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
}

const (
	// DeezerBaseURL is the base URL for the Deezer service.
	DeezerBaseURL = "https://www.deezer.com"

	// ARLTokenEnvVar is the environment variable that may carry the session credential.
	ARLTokenEnvVar = "DEEZER_ARL_TOKEN"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".deezgrab.yaml"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a dumped HTTP request or response.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// minARLTokenLength is the shortest credential the service issues.
	minARLTokenLength = 100

	// minQuality is the minimum valid quality value.
	minQuality = 1
	// maxQuality is the maximum valid quality value.
	maxQuality = 3
)

// arlTokenPattern matches a well-formed session credential: alphanumeric, long enough.
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var arlTokenPattern = regexp.MustCompile("^[a-zA-Z0-9]+$")

// Static error definitions for better error handling.
var (
	// ErrMissingARLToken indicates that the session credential is missing.
	ErrMissingARLToken = errors.New("ARL token is not set, " +
		"pass it via config file or the " + ARLTokenEnvVar + " environment variable")
	// ErrMalformedARLToken indicates that the session credential has the wrong shape.
	ErrMalformedARLToken = errors.New("ARL token must be at least 100 alphanumeric characters")
	// ErrInvalidQuality indicates that the quality setting is invalid.
	ErrInvalidQuality = errors.New("invalid quality")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// LoadConfig loads configuration settings from a YAML file.
// A missing file is not an error: the credential may come entirely
// from the environment.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	// Defaults applied when the file or a key is absent.
	// Re-running a download replaces the file unless explicitly told not to.
	viper.SetDefault("quality", maxQuality)
	viper.SetDefault("output_path", ".")
	viper.SetDefault("replace_tracks", true)
	viper.SetDefault("log_level", "info")

	if err := viper.BindEnv("arl_token", ARLTokenEnvVar); err != nil {
		return nil, fmt.Errorf("failed to bind environment variable: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
// It runs before any network activity so a bad credential fails fast.
func ValidateConfig(cfg *Config) error {
	var (
		downloadSpeedLimit       = strings.TrimSpace(cfg.DownloadSpeedLimit)
		parsedDownloadSpeedLimit uint64
		err                      error
	)

	cfg.ARLToken = strings.TrimSpace(cfg.ARLToken)
	if cfg.ARLToken == "" {
		return ErrMissingARLToken
	}

	if err = ValidateARLToken(cfg.ARLToken); err != nil {
		return err
	}

	cfg.DeezerBaseURL = DeezerBaseURL

	if cfg.Quality < minQuality || cfg.Quality > maxQuality {
		return fmt.Errorf("%w: must be between %d and %d", ErrInvalidQuality, minQuality, maxQuality)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, err = humanize.ParseBytes(downloadSpeedLimit)
		if err != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", err)
		}
	}

	// io.CopyN accepts only int64 so we transform it safely in order to use it later.
	cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)

	return nil
}

// ValidateARLToken checks that a credential has the shape the service issues:
// at least 100 alphanumeric characters.
func ValidateARLToken(token string) error {
	if len(token) < minARLTokenLength || !arlTokenPattern.MatchString(token) {
		return ErrMalformedARLToken
	}

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.ARLToken, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update the arl_token value in the node tree.
	updateARLTokenInNode(&node, cfg.ARLToken)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, arlToken string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set("arl_token", arlToken)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateARLTokenInNode updates the arl_token value in the YAML node tree.
func updateARLTokenInNode(node *yaml.Node, arlToken string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "arl_token" {
			// Update the value while preserving style.
			valueNode.Value = arlToken

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			break
		}
	}
}
