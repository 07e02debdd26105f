package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/seaicedyn/driftdeform/internal/triangulate"
)

// StorageConfig selects and parameterizes the results backend.
type StorageConfig struct {
	Type string `json:"type" mapstructure:"type"`
}

// OTelConfig holds telemetry export settings.
type OTelConfig struct {
	Enabled     bool   `json:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"serviceName" mapstructure:"serviceName"`
}

// Load reads configuration from a JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error; defaults apply.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./driftlogs")
	viper.SetDefault("runLabel", "")

	viper.SetDefault("engine.minAngleDeg", 15.0)
	viper.SetDefault("engine.maxStatic", 1)
	viper.SetDefault("engine.keepSmallestStatic", true)
	viper.SetDefault("engine.minArea", 1e-6)
	viper.SetDefault("engine.workers", 0)

	viper.SetDefault("storage.type", "memory")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "driftdeform")

	viper.SetConfigName("driftdeform.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Engine returns the triangle engine thresholds.
func Engine() triangulate.Config {
	return triangulate.Config{
		MinAngleDeg:        viper.GetFloat64("engine.minAngleDeg"),
		MaxStatic:          viper.GetInt("engine.maxStatic"),
		KeepSmallestStatic: viper.GetBool("engine.keepSmallestStatic"),
		MinArea:            viper.GetFloat64("engine.minArea"),
		Workers:            viper.GetInt("engine.workers"),
	}
}

// Storage returns the backend selection.
func Storage() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
	}
}

// OTel returns the telemetry settings.
func OTel() OTelConfig {
	return OTelConfig{
		Enabled:     viper.GetBool("otel.enabled"),
		ServiceName: viper.GetString("otel.serviceName"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
