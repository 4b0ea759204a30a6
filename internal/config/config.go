package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "catalogctl", "config.yml")
}

// Load reads the config from disk (or env). Returns a defaulted config if
// no file exists yet.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("services.catalog_base", "http://localhost:8080")
	v.SetDefault("services.user_base", "http://localhost:8081")
	v.SetDefault("defaults.credentials_path", defaultCredentialsPath())
	v.SetDefault("defaults.page_size", 10)
	v.SetDefault("defaults.sort_by", "id")
	v.SetDefault("defaults.sort_order", "DESC")
	v.SetDefault("debug.enabled", false)
	v.SetDefault("debug.log_path", defaultLogPath())

	v.SetEnvPrefix("CATALOGCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("CATALOGCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine — defaults apply.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Defaults.CredentialsPath = ExpandHome(cfg.Defaults.CredentialsPath)
	cfg.Debug.LogPath = ExpandHome(cfg.Debug.LogPath)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultCredentialsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "catalogctl", "credentials.yml")
}

func defaultLogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "catalogctl", "debug.log")
}
