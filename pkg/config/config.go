/*
Package config manages TOML config for wordhint's client, server and corpus tools.

The file lives at [UserConfigDir]/wordhint/config.toml and is created with defaults on
first use. Malformed files are recovered section by section; anything unreadable falls
back to the built-in defaults.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordhint/internal/utils"
	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Client  ClientConfig  `toml:"client"`
	Display DisplayConfig `toml:"display"`
	Server  ServerConfig  `toml:"server"`
	Corpus  CorpusConfig  `toml:"corpus"`
}

// ClientConfig points the hint assistant at a corpus service.
type ClientConfig struct {
	Endpoint       string `toml:"endpoint"`
	Mode           string `toml:"mode"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DisplayConfig holds how many rows are shown before the overflow toggle.
type DisplayConfig struct {
	WordLimit   int `toml:"word_limit"`
	LetterLimit int `toml:"letter_limit"`
}

// ServerConfig has corpus service options.
type ServerConfig struct {
	Addr              string `toml:"addr"`
	MaxPatternLen     int    `toml:"max_pattern_len"`
	CacheSize         int    `toml:"cache_size"`
	WildcardThreshold int    `toml:"fst_wildcard_threshold"`
}

// CorpusConfig holds where the corpus lives and how it is prepared.
type CorpusConfig struct {
	Path            string `toml:"path"`
	FrequencyCutoff int    `toml:"frequency_cutoff"`
}

// Timeout is the client request timeout.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			Endpoint:       "http://localhost:8080/search_corpus",
			Mode:           string(puzzle.WheelOfFortune),
			TimeoutSeconds: 10,
		},
		Display: DisplayConfig{
			WordLimit:   10,
			LetterLimit: 5,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			MaxPatternLen:     puzzle.DefaultMaxPatternLen,
			CacheSize:         512,
			WildcardThreshold: 6,
		},
		Corpus: CorpusConfig{
			Path:            filepath.Join("data", "processed", "word_frequency.txt"),
			FrequencyCutoff: 10000,
		},
	}
}

// Validate rejects values no component could work with.
func (c *Config) Validate() error {
	if c.Display.WordLimit < 0 {
		return fmt.Errorf("display.word_limit must not be negative, got %d", c.Display.WordLimit)
	}
	if c.Display.LetterLimit < 0 {
		return fmt.Errorf("display.letter_limit must not be negative, got %d", c.Display.LetterLimit)
	}
	if c.Client.TimeoutSeconds <= 0 {
		return fmt.Errorf("client.timeout_seconds must be positive, got %d", c.Client.TimeoutSeconds)
	}
	if c.Client.Mode != "" {
		if _, err := puzzle.ParseMode(c.Client.Mode); err != nil {
			return fmt.Errorf("client.mode: %w", err)
		}
	}
	if c.Server.MaxPatternLen <= 0 {
		return fmt.Errorf("server.max_pattern_len must be positive, got %d", c.Server.MaxPatternLen)
	}
	if c.Server.WildcardThreshold < 0 {
		return fmt.Errorf("server.fst_wildcard_threshold must not be negative, got %d", c.Server.WildcardThreshold)
	}
	if c.Corpus.FrequencyCutoff < 0 {
		return fmt.Errorf("corpus.frequency_cutoff must not be negative, got %d", c.Corpus.FrequencyCutoff)
	}
	return nil
}

// GetConfigDir returns the per-user config directory for wordhint.
func GetConfigDir() string {
	return utils.ConfigDir("wordhint")
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordhint/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath := GetDefaultConfigPath()
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values that fail validation are an error;
// syntax problems fall back to section-by-section recovery.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find and defaults the rest.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "client"); ok {
		extractClientConfig(section, &config.Client)
	}
	if section, ok := utils.ExtractSection(tempConfig, "display"); ok {
		extractDisplayConfig(section, &config.Display)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "corpus"); ok {
		extractCorpusConfig(section, &config.Corpus)
	}
	return config
}

func extractClientConfig(data map[string]any, client *ClientConfig) {
	if val, ok := utils.ExtractString(data, "endpoint"); ok {
		client.Endpoint = val
	}
	if val, ok := utils.ExtractString(data, "mode"); ok {
		client.Mode = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_seconds"); ok {
		client.TimeoutSeconds = val
	}
}

func extractDisplayConfig(data map[string]any, display *DisplayConfig) {
	if val, ok := utils.ExtractInt64(data, "word_limit"); ok {
		display.WordLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "letter_limit"); ok {
		display.LetterLimit = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		server.Addr = val
	}
	if val, ok := utils.ExtractInt64(data, "max_pattern_len"); ok {
		server.MaxPatternLen = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
	if val, ok := utils.ExtractInt64(data, "fst_wildcard_threshold"); ok {
		server.WildcardThreshold = val
	}
}

func extractCorpusConfig(data map[string]any, corpus *CorpusConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		corpus.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "frequency_cutoff"); ok {
		corpus.FrequencyCutoff = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return GetDefaultConfigPath()
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
