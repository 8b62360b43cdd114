package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from configs/config.yaml, merges the optional
// per-environment file (config.<env>.yaml), and lets environment variables
// override everything (REDIS_ADDRESS, ORACLE_API_KEY, ...).
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // env-specific file is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	// Try a few locations so tests and tools running from package
	// directories still pick up the project .env.
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "resume-workers"
	}
	if cfg.App.MetricsPort == 0 {
		cfg.App.MetricsPort = 9090
	}
	if cfg.Redis.QueueName == "" {
		cfg.Redis.QueueName = "resume-queue"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30
	}
	if cfg.Oracle.Timeout == 0 {
		cfg.Oracle.Timeout = 120
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
}
