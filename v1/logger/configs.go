package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum level emitted. Unrecognized values fall back
	// to Info.
	Level string `yaml:"level" env:"LOGGER_LEVEL"`

	// ServiceName is attached to every entry as an initial field.
	ServiceName string `yaml:"service_name" env:"LOGGER_SERVICE_NAME"`
}

// DefaultConfig returns the logger defaults.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "record-browser",
	}
}

// WithLevel sets the minimum emitted level.
func (c Config) WithLevel(level string) Config {
	c.Level = level
	return c
}

// WithServiceName sets the service name initial field.
func (c Config) WithServiceName(name string) Config {
	c.ServiceName = name
	return c
}
