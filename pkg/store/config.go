package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultKey is the fixed key the planner blob is stored under.
	DefaultKey = "weekly-planner-data"

	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config describes where and how planner state is persisted.
type Config interface {
	BasePath() string
	Backend() string
	Key() string
	LogLevel() string
}

// LoadConfig reads .planner.yaml from $PLANNER_CONFIG_PATH or the working
// directory, with PLANNER_* environment overrides. A missing file is fine.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.planner.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("key", DefaultKey)
	v.SetDefault("log-level", "warn")
	v.SetConfigName(".planner") // .yaml is implicit
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	cfg := &FileConfig{
		Path:        path,
		BackendName: v.GetString("backend"),
		StorageKey:  v.GetString("key"),
		Level:       v.GetString("log-level"),
	}
	switch cfg.BackendName {
	case BackendDiskv, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.BackendName)
	}
	return cfg, nil
}

// FileConfig is the resolved configuration. Tests construct it directly.
type FileConfig struct {
	Path        string `json:"path" yaml:"path"`
	BackendName string `json:"backend" yaml:"backend"`
	StorageKey  string `json:"key" yaml:"key"`
	Level       string `json:"logLevel" yaml:"logLevel"`
}

func (f *FileConfig) BasePath() string { return f.Path }

func (f *FileConfig) Backend() string {
	if f.BackendName == "" {
		return BackendDiskv
	}
	return f.BackendName
}

func (f *FileConfig) Key() string {
	if f.StorageKey == "" {
		return DefaultKey
	}
	return f.StorageKey
}

func (f *FileConfig) LogLevel() string { return f.Level }
