package docx

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// RoundingMode selects how proportionally scaled image dimensions are rounded to whole EMU
type RoundingMode string

const (
	RoundHalfEven RoundingMode = "half-even"
	RoundHalfUp   RoundingMode = "half-up"
	RoundFloor    RoundingMode = "floor"
	RoundCeil     RoundingMode = "ceil"
)

// Config contains all configuration options for package handling
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level"`
	// DefaultDPI is used for images that carry no resolution information
	DefaultDPI int `yaml:"default_dpi"`
	// ScaleRounding is applied when one image dimension is derived from the other
	ScaleRounding RoundingMode `yaml:"scale_rounding"`
	// ImageCacheMaxSize is the maximum number of image descriptors to cache. 0 disables caching.
	ImageCacheMaxSize int `yaml:"image_cache_max_size"`
	// ImageCacheTTL is the time-to-live for cached descriptors. 0 means no expiration.
	ImageCacheTTL time.Duration `yaml:"image_cache_ttl"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		DefaultDPI:        72,
		ScaleRounding:     RoundHalfEven,
		ImageCacheMaxSize: 64,
		ImageCacheTTL:     0,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
// Values that cannot be parsed are ignored.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// DOCX_LOG_LEVEL
	if val := os.Getenv("DOCX_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// DOCX_DEFAULT_DPI
	if val := os.Getenv("DOCX_DEFAULT_DPI"); val != "" {
		if dpi, err := cast.ToIntE(val); err == nil && dpi > 0 && dpi <= maxImageDPI {
			config.DefaultDPI = dpi
		}
	}

	// DOCX_SCALE_ROUNDING
	if val := os.Getenv("DOCX_SCALE_ROUNDING"); val != "" {
		config.ScaleRounding = RoundingMode(val)
	}

	// DOCX_IMAGE_CACHE_MAX_SIZE
	if val := os.Getenv("DOCX_IMAGE_CACHE_MAX_SIZE"); val != "" {
		if size, err := cast.ToIntE(val); err == nil {
			config.ImageCacheMaxSize = size
		}
	}

	// DOCX_IMAGE_CACHE_TTL
	if val := os.Getenv("DOCX_IMAGE_CACHE_TTL"); val != "" {
		if ttl, err := cast.ToDurationE(val); err == nil {
			config.ImageCacheTTL = ttl
		}
	}

	return config
}

// LoadConfigFile reads a YAML configuration file. Keys missing from the file keep
// the value they have in base, or the defaults when base is nil.
func LoadConfigFile(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if base != nil {
		*config = *base
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.DefaultDPI <= 0 {
		return errors.New("default DPI must be positive")
	}

	if c.DefaultDPI > maxImageDPI {
		return fmt.Errorf("default DPI cannot exceed %d", maxImageDPI)
	}

	switch c.ScaleRounding {
	case RoundHalfEven, RoundHalfUp, RoundFloor, RoundCeil:
	default:
		return errors.New("invalid scale rounding: " + string(c.ScaleRounding))
	}

	if c.ImageCacheMaxSize < 0 {
		return errors.New("image cache max size cannot be negative")
	}

	if c.ImageCacheTTL < 0 {
		return errors.New("image cache TTL cannot be negative")
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// outside the lock, the logger reads the config back
	UpdateLoggerFromConfig()
}
