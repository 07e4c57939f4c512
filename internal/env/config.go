package env

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("env: invalid config")

type Config struct {
	// Device is a serial port, or a file to replay when it is not a tty
	Device   string `yaml:"device" env:"MARBUS_DEVICE"`
	Baud     int    `yaml:"baud" env:"MARBUS_BAUD"`
	Protocol string `yaml:"protocol" env:"MARBUS_PROTOCOL"`

	LogLevel string `yaml:"log-level" env:"MARBUS_LOG_LEVEL"`
	LogFile  string `yaml:"log-file" env:"MARBUS_LOG_FILE"`

	Host      string `yaml:"host" env:"MARBUS_HOST"`
	HTTPPort  int    `yaml:"http-port" env:"MARBUS_HTTP_PORT"`
	TCPPort   int    `yaml:"tcp-port" env:"MARBUS_TCP_PORT"`
	DebugHTTP bool   `yaml:"debug-http" env:"MARBUS_DEBUG_HTTP"`

	// RecordPath is a SQLite database for raw traffic, empty disables recording
	RecordPath string `yaml:"record" env:"MARBUS_RECORD"`
}

func DefaultConfig() Config {
	return Config{
		Baud:     4800,
		Protocol: "nmea",
		LogLevel: "info",
		Host:     "0.0.0.0",
		HTTPPort: 7362,
		TCPPort:  10110,
	}
}

// LoadConfig layers, lowest first: defaults, the YAML file at path (or
// MARBUS_CONFIG), then the environment including .env.local.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	config := DefaultConfig()

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env.local: %w", err)
	}

	if path == "" {
		path = os.Getenv("MARBUS_CONFIG")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Protocol {
	case "nmea", "seatalk":
	default:
		return fmt.Errorf("protocol %q: %w", c.Protocol, ErrInvalidConfig)
	}

	if c.Baud <= 0 {
		return fmt.Errorf("baud %d: %w", c.Baud, ErrInvalidConfig)
	}

	return nil
}
