package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Assessment AssessmentConfig `mapstructure:"assessment" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// AssessmentConfig controls the sample window and scheduling of assessments.
type AssessmentConfig struct {
	// WindowSize is the number of most recent samples an assessment uses.
	WindowSize int `mapstructure:"window_size" validate:"required,gt=0,lte=30"`
	// RetentionDays is how long samples are kept after each ingest.
	RetentionDays int `mapstructure:"retention_days" validate:"required,gt=0"`
	// ReassessAfterHours is the delay before the next assessment is due.
	ReassessAfterHours int `mapstructure:"reassess_after_hours" validate:"required,gt=0"`
}

// MetricsConfig contains OpenTelemetry metrics export settings.
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"required_if=Enabled true"`
	ServiceName  string `mapstructure:"service_name"  validate:"required"`
}
