// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Replenish ReplenishConfig
	Reports   ReportsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ResultTTLSeconds int
}

// ReplenishConfig carries the product-tunable constants of the
// replenishment engine. The legacy dashboard hard-coded slightly different
// values in separate panels; a single configurable set replaces them.
type ReplenishConfig struct {
	DemandWindowDays    int
	MinTrendPoints      int
	TrendThreshold      float64
	UrgentBufferDays    int
	WatchBufferDays     int
	LowDemandFactor     float64
	HighDemandFactor    float64
	DefaultLeadTimeDays int
	DefaultServiceLevel float64
}

// ReportsConfig configures the S3-compatible bucket restock report
// snapshots are exported to.
type ReportsConfig struct {
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	Prefix    string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "seller_dashboard")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_RESULT_TTL_SECONDS", 60)
		viper.SetDefault("REPLENISH_DEMAND_WINDOW_DAYS", 30)
		viper.SetDefault("REPLENISH_MIN_TREND_POINTS", 7)
		viper.SetDefault("REPLENISH_TREND_THRESHOLD", 0.15)
		viper.SetDefault("REPLENISH_URGENT_BUFFER_DAYS", 3)
		viper.SetDefault("REPLENISH_WATCH_BUFFER_DAYS", 10)
		viper.SetDefault("REPLENISH_LOW_DEMAND_FACTOR", 0.8)
		viper.SetDefault("REPLENISH_HIGH_DEMAND_FACTOR", 1.2)
		viper.SetDefault("REPLENISH_DEFAULT_LEAD_TIME_DAYS", 14)
		viper.SetDefault("REPLENISH_DEFAULT_SERVICE_LEVEL", 0.90)
		viper.SetDefault("REPORTS_BUCKET", "")
		viper.SetDefault("REPORTS_ENDPOINT", "")
		viper.SetDefault("REPORTS_ACCESS_KEY", "")
		viper.SetDefault("REPORTS_SECRET_KEY", "")
		viper.SetDefault("REPORTS_REGION", "")
		viper.SetDefault("REPORTS_USE_SSL", true)
		viper.SetDefault("REPORTS_PREFIX", "restock-reports")

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ResultTTLSeconds: viper.GetInt("CACHE_RESULT_TTL_SECONDS"),
			},
			Replenish: ReplenishConfig{
				DemandWindowDays:    viper.GetInt("REPLENISH_DEMAND_WINDOW_DAYS"),
				MinTrendPoints:      viper.GetInt("REPLENISH_MIN_TREND_POINTS"),
				TrendThreshold:      viper.GetFloat64("REPLENISH_TREND_THRESHOLD"),
				UrgentBufferDays:    viper.GetInt("REPLENISH_URGENT_BUFFER_DAYS"),
				WatchBufferDays:     viper.GetInt("REPLENISH_WATCH_BUFFER_DAYS"),
				LowDemandFactor:     viper.GetFloat64("REPLENISH_LOW_DEMAND_FACTOR"),
				HighDemandFactor:    viper.GetFloat64("REPLENISH_HIGH_DEMAND_FACTOR"),
				DefaultLeadTimeDays: viper.GetInt("REPLENISH_DEFAULT_LEAD_TIME_DAYS"),
				DefaultServiceLevel: viper.GetFloat64("REPLENISH_DEFAULT_SERVICE_LEVEL"),
			},
			Reports: ReportsConfig{
				Bucket:    viper.GetString("REPORTS_BUCKET"),
				Endpoint:  viper.GetString("REPORTS_ENDPOINT"),
				AccessKey: viper.GetString("REPORTS_ACCESS_KEY"),
				SecretKey: viper.GetString("REPORTS_SECRET_KEY"),
				Region:    viper.GetString("REPORTS_REGION"),
				UseSSL:    viper.GetBool("REPORTS_USE_SSL"),
				Prefix:    viper.GetString("REPORTS_PREFIX"),
			},
		}
	})

	return instance
}
