package util

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variable.
type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	AllowedOrigins    []string      `mapstructure:"ALLOWED_ORIGINS"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	// GazetteerPath points to an optional JSON file overriding the built-in
	// place/zone tables. Empty means the compiled-in table is used.
	GazetteerPath string `mapstructure:"GAZETTEER_PATH"`

	// ScoringConcurrency bounds how many candidates are scored in parallel
	// per ranking request. Zero or negative means runtime.NumCPU.
	ScoringConcurrency int `mapstructure:"SCORING_CONCURRENCY"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("REQUEST_TIMEOUT", "15s")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
