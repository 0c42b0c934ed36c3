package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	KindGSheet = "gsheet"
	KindXLSX   = "xlsx"
)

// Source describes one work-group tab.
type Source struct {
	Name  string `yaml:"name" json:"name"`
	Kind  string `yaml:"kind" json:"kind"` // gsheet | xlsx
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Path  string `yaml:"path,omitempty" json:"path,omitempty"`
	Sheet string `yaml:"sheet,omitempty" json:"sheet,omitempty"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds"`
	} `yaml:"cache" json:"cache"`

	Polling struct {
		RefreshSeconds int `yaml:"refresh_seconds" json:"refresh_seconds"`
	} `yaml:"polling" json:"polling"`

	Fetch struct {
		RequestsPerSec float64 `yaml:"requests_per_sec" json:"requests_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		// TokenAccount names the OS-keychain entry holding the bearer
		// token for private sheet exports; empty means public sheets only.
		TokenAccount string `yaml:"token_account,omitempty" json:"token_account,omitempty"`
	} `yaml:"fetch" json:"fetch"`

	Sources []Source `yaml:"sources" json:"sources"`

	Store struct {
		KeepSnapshots int `yaml:"keep_snapshots" json:"keep_snapshots"`
	} `yaml:"store" json:"store"`
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Polling.RefreshSeconds) * time.Second
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
