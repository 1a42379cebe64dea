package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type NotifierConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type WatchConfig struct {
	Addr      string        `mapstructure:"addr"`
	Interval  time.Duration `mapstructure:"interval"`
	Resources []string      `mapstructure:"resources"`
}

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:3000/uni7")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.requests_per_second", 10.0)
	v.SetDefault("api.burst", 20)
	v.SetDefault("storage.dir", defaultStorageDir())
	v.SetDefault("log.level", "info")
	v.SetDefault("notifier.ttl", 4*time.Second)
	v.SetDefault("watch.addr", ":9465")
	v.SetDefault("watch.interval", 30*time.Second)
	v.SetDefault("watch.resources", []string{"avisos", "denuncias", "eventos"})
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".condoctl"
	}
	return filepath.Join(home, ".condoctl")
}

// LoadConfig reads config.yml from the usual locations, applying CONDOCTL_*
// environment overrides. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath(defaultStorageDir())

	v.SetEnvPrefix("condoctl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
