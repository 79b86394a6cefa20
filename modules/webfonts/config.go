package webfonts

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guarzo/webfonts/common"
)

// Config is the catalog configuration, read from WEBFONTS_* environment variables.
type Config struct {
	APIKey      string        `env:"WEBFONTS_API_KEY"`
	Sort        string        `env:"WEBFONTS_SORT" envDefault:"popularity"`
	CacheDir    string        `env:"WEBFONTS_CACHE_DIR"`
	BaseURL     string        `env:"WEBFONTS_BASE_URL" envDefault:"https://www.googleapis.com/webfonts/v1/webfonts"`
	UserAgent   string        `env:"WEBFONTS_USER_AGENT" envDefault:"webfonts-catalog/1.0"`
	HTTPTimeout time.Duration `env:"WEBFONTS_HTTP_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads Config from the environment and fills in the cache directory.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := common.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if strings.TrimSpace(cfg.CacheDir) == "" {
		cfg.CacheDir = DefaultCacheDir()
	}
	return cfg, nil
}

// DefaultCacheDir is a "fonts" directory next to the running executable,
// falling back to the working directory.
func DefaultCacheDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "fonts"
	}
	return filepath.Join(filepath.Dir(exe), "fonts")
}
