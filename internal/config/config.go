package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the settings for validating bearer tokens at the API
// boundary. Token issuance belongs to the external auth service; this API
// only verifies signatures.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// PracticeConfig tunes the practice engine defaults applied when a request
// omits the corresponding query parameter.
type PracticeConfig struct {
	DefaultSessionLimit int `mapstructure:"default_session_limit" validate:"required,gt=0"`
	DefaultHistoryDays  int `mapstructure:"default_history_days"  validate:"required,gt=0"`
	MaxHistoryDays      int `mapstructure:"max_history_days"      validate:"required,gt=0"`
}
