package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port                string        `mapstructure:"PORT"`
	ServiceName         string        `mapstructure:"SERVICE_NAME"`
	CatalogAPIURL       string        `mapstructure:"CATALOG_API_URL"`
	CatalogAPITimeout   time.Duration `mapstructure:"CATALOG_API_TIMEOUT"`
	AuthLoginPath       string        `mapstructure:"AUTH_LOGIN_PATH"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	LogFormat           string        `mapstructure:"LOG_FORMAT"`
	SessionStorage      string        `mapstructure:"SESSION_STORAGE"`
	SessionExpiration   time.Duration `mapstructure:"SESSION_EXPIRATION"`
	CookieSecure        bool          `mapstructure:"COOKIE_SECURE"`
	RedisURL            string        `mapstructure:"REDIS_URL"`
	AWSEndpoint         string        `mapstructure:"AWS_ENDPOINT"`
	AWSBucket           string        `mapstructure:"AWS_BUCKET"`
	AWSDefaultRegion    string        `mapstructure:"AWS_DEFAULT_REGION"`
	AWSAccessKey        string        `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretKey        string        `mapstructure:"AWS_SECRET_KEY"`
	ExportArchive       bool          `mapstructure:"EXPORT_ARCHIVE"`
	PostgresUsername    string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPassword    string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDatabase    string        `mapstructure:"POSTGRES_DATABASE"`
	PostgresSSLMode     string        `mapstructure:"POSTGRES_SSLMODE"`
	PostgresHost        string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort        string        `mapstructure:"POSTGRES_PORT"`
	RabbitMQURL         string        `mapstructure:"RABBITMQ_URL"`
	GRPCPort            string        `mapstructure:"GRPC_PORT"`
	HealthProbeInterval time.Duration `mapstructure:"HEALTH_PROBE_INTERVAL"`
	LowStockThreshold   int           `mapstructure:"LOW_STOCK_THRESHOLD"`
	ImportConcurrency   int           `mapstructure:"IMPORT_CONCURRENCY"`
}

// ActivityLogEnabled reports whether a Postgres activity store is configured.
func (c *AppConfig) ActivityLogEnabled() bool {
	return c.PostgresHost != "" && c.PostgresDatabase != ""
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("CATALOG_API_URL")
	_ = viper.BindEnv("CATALOG_API_TIMEOUT")
	_ = viper.BindEnv("AUTH_LOGIN_PATH")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("LOG_FORMAT")
	_ = viper.BindEnv("SESSION_STORAGE")
	_ = viper.BindEnv("SESSION_EXPIRATION")
	_ = viper.BindEnv("COOKIE_SECURE")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("AWS_ENDPOINT")
	_ = viper.BindEnv("AWS_BUCKET")
	_ = viper.BindEnv("AWS_DEFAULT_REGION")
	_ = viper.BindEnv("AWS_ACCESS_KEY")
	_ = viper.BindEnv("AWS_SECRET_KEY")
	_ = viper.BindEnv("EXPORT_ARCHIVE")
	_ = viper.BindEnv("POSTGRES_USERNAME")
	_ = viper.BindEnv("POSTGRES_PASSWORD")
	_ = viper.BindEnv("POSTGRES_DATABASE")
	_ = viper.BindEnv("POSTGRES_SSLMODE")
	_ = viper.BindEnv("POSTGRES_HOST")
	_ = viper.BindEnv("POSTGRES_PORT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("GRPC_PORT")
	_ = viper.BindEnv("HEALTH_PROBE_INTERVAL")
	_ = viper.BindEnv("LOW_STOCK_THRESHOLD")
	_ = viper.BindEnv("IMPORT_CONCURRENCY")
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SERVICE_NAME", "catalog-console")
	viper.SetDefault("CATALOG_API_URL", "http://localhost:5000")
	viper.SetDefault("CATALOG_API_TIMEOUT", "10s")
	viper.SetDefault("AUTH_LOGIN_PATH", "/login")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("SESSION_STORAGE", "memory")
	viper.SetDefault("SESSION_EXPIRATION", "24h")
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("EXPORT_ARCHIVE", false)
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("GRPC_PORT", "9090")
	viper.SetDefault("HEALTH_PROBE_INTERVAL", "30s")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 5)
	viper.SetDefault("IMPORT_CONCURRENCY", 4)
}
