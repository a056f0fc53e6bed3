package config

import (
	"fmt"
	"reflect"
	"strings"

	"aadhaar-records/core/database"
	"aadhaar-records/core/logger"
	"aadhaar-records/core/pipeline"
	"aadhaar-records/core/server"
	"aadhaar-records/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage the artifact may be published to.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional SQL mirror.
	Database database.Config `mapstructure:"database"`
	// Pipeline holds the source directories and artifact settings.
	Pipeline pipeline.Config `mapstructure:"pipeline"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values that cannot be expressed as defaults.
func (c *Config) Validate() error {
	if !c.Pipeline.IsValidSource() {
		return fmt.Errorf("invalid pipeline source %q (expected %s or %s)", c.Pipeline.Source, pipeline.SourceFile, pipeline.SourceStorage)
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline workers must be at least 1, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.OutputFile == "" {
		return fmt.Errorf("pipeline output file must be set")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
