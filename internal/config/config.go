package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LFroesch/karu/internal/logger"
)

// Config holds all karu settings. There is no config file: values start from
// Default, are overridden by KARU_* environment variables in Load, and finally
// by command-line flags bound in main.
type Config struct {
	ShowHidden      bool
	Debug           bool
	LogPath         string
	PreviewDenyList []string
	MaxPreviewBytes int64
	TickInterval    time.Duration
	SeekStep        time.Duration

	// Problems found while loading, held until the log file is open.
	warnings []string
}

const (
	mib = 1024 * 1024

	defaultMaxPreviewBytes = 300 * mib
	minMaxPreviewBytes     = 1 * mib
	maxMaxPreviewBytes     = 4096 * mib

	defaultTickInterval = 250 * time.Millisecond
	minTickInterval     = 50 * time.Millisecond
	maxTickInterval     = 5 * time.Second

	defaultSeekStep = 5 * time.Second
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ShowHidden:      true,
		PreviewDenyList: []string{".wget-hsts"},
		MaxPreviewBytes: defaultMaxPreviewBytes,
		TickInterval:    defaultTickInterval,
		SeekStep:        defaultSeekStep,
	}
}

// Load returns Default with environment overrides applied and validated.
func Load() *Config {
	cfg := Default()

	if v, ok := cfg.lookupBool("KARU_SHOW_HIDDEN"); ok {
		cfg.ShowHidden = v
	}
	if v, ok := cfg.lookupBool("KARU_DEBUG"); ok {
		cfg.Debug = v
	}
	if v := os.Getenv("KARU_LOG_FILE"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("KARU_PREVIEW_DENY"); v != "" {
		cfg.PreviewDenyList = splitList(v)
	}
	if v := os.Getenv("KARU_MAX_PREVIEW_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			cfg.warnf("Ignoring KARU_MAX_PREVIEW_MB=%q: %v", v, err)
		} else {
			cfg.MaxPreviewBytes = n * mib
		}
	}
	if v := os.Getenv("KARU_TICK"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			cfg.warnf("Ignoring KARU_TICK=%q: %v", v, err)
		} else {
			cfg.TickInterval = d
		}
	}
	if v := os.Getenv("KARU_SEEK_STEP"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			cfg.warnf("Ignoring KARU_SEEK_STEP=%q: %v", v, err)
		} else {
			cfg.SeekStep = d
		}
	}

	cfg.Validate()
	return cfg
}

// Validate clamps out-of-range values back into bounds.
func (c *Config) Validate() {
	if c.MaxPreviewBytes <= 0 {
		c.MaxPreviewBytes = defaultMaxPreviewBytes
	} else if c.MaxPreviewBytes < minMaxPreviewBytes {
		c.warnf("MaxPreviewBytes too low (%d), using minimum of %d", c.MaxPreviewBytes, minMaxPreviewBytes)
		c.MaxPreviewBytes = minMaxPreviewBytes
	} else if c.MaxPreviewBytes > maxMaxPreviewBytes {
		c.warnf("MaxPreviewBytes too high (%d), using maximum of %d", c.MaxPreviewBytes, maxMaxPreviewBytes)
		c.MaxPreviewBytes = maxMaxPreviewBytes
	}

	if c.TickInterval <= 0 {
		c.TickInterval = defaultTickInterval
	} else if c.TickInterval < minTickInterval {
		c.warnf("TickInterval too low (%s), using minimum of %s", c.TickInterval, minTickInterval)
		c.TickInterval = minTickInterval
	} else if c.TickInterval > maxTickInterval {
		c.warnf("TickInterval too high (%s), using maximum of %s", c.TickInterval, maxTickInterval)
		c.TickInterval = maxTickInterval
	}

	if c.SeekStep <= 0 {
		c.SeekStep = defaultSeekStep
	}
}

func (c *Config) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the problems recorded by Load and Validate that have not
// been logged yet.
func (c *Config) Warnings() []string {
	return c.warnings
}

// LogWarnings writes the pending warnings to the log and forgets them. Load
// runs before the log file is open, so main calls this once logging is set up.
func (c *Config) LogWarnings() {
	for _, w := range c.warnings {
		logger.Warn("%s", w)
	}
	c.warnings = nil
}

func (c *Config) lookupBool(key string) (bool, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.warnf("Ignoring %s=%q: %v", key, v, err)
		return false, false
	}
	return b, true
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
