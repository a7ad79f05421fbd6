package config

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read from the environment. Every field has a sensible
// default so the application runs with no configuration at all.
type Config struct {
	DataDir  string `env:"TASKFLOW_DATA_DIR"`
	LogLevel string `env:"TASKFLOW_LOG_LEVEL" env-default:"info"`
}

// Load reads the configuration from the environment, resolving the data
// directory to the XDG data dir when unset.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// DatabasePath returns the path of the record store
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "taskflow.db")
}

// LogPath returns the path of the log file. The TUI owns the terminal,
// so logs never go to stdout.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "taskflow.log")
}

func defaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "taskflow"), nil
}
