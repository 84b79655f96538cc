package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/gatehouse"
	ConfigFileName    = "gatehouse.yml"
)

// Config holds all Gatehouse configuration settings.
type Config struct {
	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address"`

	// Port is the HTTP server port
	Port int `yaml:"port"`

	// SessionCookieName is the name of the session cookie
	SessionCookieName string `yaml:"session_cookie_name"`

	// APITokenTTL is the lifetime of API tokens in seconds
	APITokenTTL int `yaml:"api_token_ttl"`

	// LockoutAttemptLimit is the number of consecutive failed logins
	// that locks a session
	LockoutAttemptLimit int `yaml:"lockout_attempt_limit"`

	// LockoutDurationSeconds is how long a locked session rejects
	// login attempts, in seconds
	LockoutDurationSeconds int `yaml:"lockout_duration_seconds"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values.
func newDefault() *Config {
	return &Config{
		BindAddress:            "0.0.0.0",
		Port:                   8080,
		SessionCookieName:      "gatehouse_session",
		APITokenTTL:            480,
		LockoutAttemptLimit:    3,
		LockoutDurationSeconds: 300,
		sources:                make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("GATEHOUSE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "session_cookie_name",
		"api_token_ttl", "lockout_attempt_limit", "lockout_duration_seconds",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.SessionCookieName != "" {
		c.SessionCookieName = file.SessionCookieName
		c.sources["session_cookie_name"] = "file"
	}
	if file.APITokenTTL != 0 {
		c.APITokenTTL = file.APITokenTTL
		c.sources["api_token_ttl"] = "file"
	}
	if file.LockoutAttemptLimit != 0 {
		c.LockoutAttemptLimit = file.LockoutAttemptLimit
		c.sources["lockout_attempt_limit"] = "file"
	}
	if file.LockoutDurationSeconds != 0 {
		c.LockoutDurationSeconds = file.LockoutDurationSeconds
		c.sources["lockout_duration_seconds"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("GATEHOUSE_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("GATEHOUSE_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("GATEHOUSE_SESSION_COOKIE_NAME"); val != "" {
		c.SessionCookieName = val
		c.sources["session_cookie_name"] = "environment"
	}
	if val := os.Getenv("GATEHOUSE_API_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APITokenTTL = i
			c.sources["api_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("GATEHOUSE_LOCKOUT_ATTEMPT_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.LockoutAttemptLimit = i
			c.sources["lockout_attempt_limit"] = "environment"
		}
	}
	if val := os.Getenv("GATEHOUSE_LOCKOUT_DURATION"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.LockoutDurationSeconds = i
			c.sources["lockout_duration_seconds"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the API token TTL as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.APITokenTTL) * time.Second
}

// LockoutDuration returns the lockout window as a duration.
func (c *Config) LockoutDuration() time.Duration {
	return time.Duration(c.LockoutDurationSeconds) * time.Second
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.LockoutAttemptLimit < 1 {
		return fmt.Errorf("lockout_attempt_limit must be at least 1")
	}
	if c.LockoutDurationSeconds < 1 {
		return fmt.Errorf("lockout_duration_seconds must be at least 1")
	}
	if c.APITokenTTL < 1 {
		return fmt.Errorf("api_token_ttl must be at least 1")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "session_cookie_name", Value: c.SessionCookieName, Source: c.Source("session_cookie_name")},
		{Name: "api_token_ttl", Value: strconv.Itoa(c.APITokenTTL), Source: c.Source("api_token_ttl")},
		{Name: "lockout_attempt_limit", Value: strconv.Itoa(c.LockoutAttemptLimit), Source: c.Source("lockout_attempt_limit")},
		{Name: "lockout_duration_seconds", Value: strconv.Itoa(c.LockoutDurationSeconds), Source: c.Source("lockout_duration_seconds")},
	}
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-25s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// SessionKey reads and decodes the session cookie signing key from the
// GATEHOUSE_SESSION_KEY environment variable.
func SessionKey() ([]byte, error) {
	encoded, ok := os.LookupEnv("GATEHOUSE_SESSION_KEY")
	if !ok {
		return nil, fmt.Errorf("GATEHOUSE_SESSION_KEY environment variable is required")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid GATEHOUSE_SESSION_KEY: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("GATEHOUSE_SESSION_KEY must decode to at least 32 bytes")
	}
	return key, nil
}

// TokenKey reads and decodes the API token signing key from the
// GATEHOUSE_TOKEN_KEY environment variable.
func TokenKey() ([]byte, error) {
	encoded, ok := os.LookupEnv("GATEHOUSE_TOKEN_KEY")
	if !ok {
		return nil, fmt.Errorf("GATEHOUSE_TOKEN_KEY environment variable is required")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid GATEHOUSE_TOKEN_KEY: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("GATEHOUSE_TOKEN_KEY must decode to at least 32 bytes")
	}
	return key, nil
}
