package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        int
	Environment string

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int

	SessionTTLMinutes int

	NotificationBaseURL string

	AnalyticsMeasurementID string
	AnalyticsAPISecret     string
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("SKYNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("environment", "development")
	v.SetDefault("database_db_path", "data/skynet.db")
	v.SetDefault("database_cache_address", "localhost")
	v.SetDefault("database_cache_port", 6379)
	v.SetDefault("session_ttl_minutes", 480)
	v.SetDefault("notification_base_url", "http://localhost:3001")
	v.SetDefault("analytics_measurement_id", "")
	v.SetDefault("analytics_api_secret", "")

	config := Config{
		Port:                   v.GetInt("port"),
		Environment:            v.GetString("environment"),
		DatabaseDbPath:         v.GetString("database_db_path"),
		DatabaseCacheAddress:   v.GetString("database_cache_address"),
		DatabaseCachePort:      v.GetInt("database_cache_port"),
		SessionTTLMinutes:      v.GetInt("session_ttl_minutes"),
		NotificationBaseURL:    v.GetString("notification_base_url"),
		AnalyticsMeasurementID: v.GetString("analytics_measurement_id"),
		AnalyticsAPISecret:     v.GetString("analytics_api_secret"),
	}

	if config.DatabaseDbPath == "" {
		return Config{}, fmt.Errorf("database path is required")
	}

	return config, nil
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c Config) CacheAddress() string {
	return fmt.Sprintf("%s:%d", c.DatabaseCacheAddress, c.DatabaseCachePort)
}
