package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "DATAGEN"

// ConfigPathEnv names an explicit configuration file. When unset Load looks
// for an optional datagen.yaml in the working directory.
const ConfigPathEnv = "DATAGEN_CONFIG"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files, which
// take precedence over defaults. Returns a populated Config struct or an
// error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(ConfigPathEnv))
}

// LoadFrom behaves like Load but reads the config file at explicit. An empty
// path falls back to the optional datagen.yaml in the working directory.
func LoadFrom(explicit string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("datagen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generation.seed", 1)
	v.SetDefault("generation.start_year", 2022)
	v.SetDefault("generation.years", 3)
	v.SetDefault("generation.students_per_grade", 25)
	v.SetDefault("generation.worker_count", 4)
	v.SetDefault("generation.queue_size", 64)
	v.SetDefault("generation.interim", true)
	v.SetDefault("generation.tables_path", "")

	v.SetDefault("lifecycle.hold_back_rate", 0.01)
	v.SetDefault("lifecycle.drop_out_rate", 0.25)
	v.SetDefault("lifecycle.transfer_rate", 0.05)
	v.SetDefault("lifecycle.yearly_improvement", 0.1)

	v.SetDefault("hierarchy.state_code", "CA")
	v.SetDefault("hierarchy.state_name", "California")
	v.SetDefault("hierarchy.districts", 2)
	v.SetDefault("hierarchy.schools_per_district", 4)
	v.SetDefault("hierarchy.school_types", map[string]float64{
		"elementary": 0.5,
		"middle":     0.25,
		"high":       0.2,
		"k12":        0.05,
	})
	v.SetDefault("hierarchy.tiers", map[string]float64{
		"poor":      0.2,
		"average":   0.5,
		"good":      0.2,
		"excellent": 0.1,
	})

	v.SetDefault("logging.level", "info")
}
