package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig               `mapstructure:"app"`
	Redis   RedisConfig             `mapstructure:"redis"`
	Storage StorageConfig           `mapstructure:"storage"`
	API     APIConfig               `mapstructure:"api"`
	Oracle  OracleConfig            `mapstructure:"oracle"`
	Workers map[string]WorkerConfig `mapstructure:"workers"`
	Logging LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	QueueName string `mapstructure:"queue_name"`
}

// StorageConfig points at the S3-compatible object store holding resume
// PDFs (MinIO in every current deployment, hence the custom endpoint).
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// APIConfig holds the platform persistence API settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// OracleConfig names the model behind each oracle flavor.
type OracleConfig struct {
	APIKey          string `mapstructure:"api_key"`
	ExtractionModel string `mapstructure:"extraction_model"`
	FieldMatchModel string `mapstructure:"field_match_model"`
	SkillsModel     string `mapstructure:"skills_model"`
	RelevanceModel  string `mapstructure:"relevance_model"`
	Timeout         int    `mapstructure:"timeout"` // seconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // seconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required")
	}
	if cfg.Redis.QueueName == "" {
		return fmt.Errorf("redis.queue_name is required")
	}
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	return nil
}
