package config

// Config is the top-level catalogctl configuration.
type Config struct {
	Services ServicesConfig `mapstructure:"services"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Debug    DebugConfig    `mapstructure:"debug"`
}

// ServicesConfig holds the two remote service base URLs.
type ServicesConfig struct {
	CatalogBase string `mapstructure:"catalog_base"`
	UserBase    string `mapstructure:"user_base"`
}

// DefaultsConfig holds client-side defaults.
type DefaultsConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	PageSize        int    `mapstructure:"page_size"`
	SortBy          string `mapstructure:"sort_by"`
	SortOrder       string `mapstructure:"sort_order"`
}

// DebugConfig controls the diagnostic log file. Stdout belongs to the TUI,
// so debug output goes to a file.
type DebugConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	LogPath string `mapstructure:"log_path"`
}
