package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

// 非生产环境下未配置 SESSION_SECRET 时使用的密钥
const developmentSessionSecret = "multistepform-development-secret"

type Config struct {
	// 服务配置
	ServerPort     string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost     string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName    string `env:"SERVICE_NAME" envDefault:"multistepform"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"0.1.0"`

	// 表单数据存储后端：redis, postgres, memory
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"redis"`

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"multistepform"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"10"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"50"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"msf"`

	// 会话配置，访客身份和当前步骤都放在签名 cookie 里
	SessionSecret string `env:"SESSION_SECRET"`
	SessionName   string `env:"SESSION_NAME" envDefault:"multistep_session"`
	SessionMaxAge int    `env:"SESSION_MAX_AGE" envDefault:"2592000"` // 秒，默认 30 天

	// CSRF 配置，仅作用于 HTML 表单提交
	CSRFEnabled bool   `env:"CSRF_ENABLED" envDefault:"true"`
	CSRFSecret  string `env:"CSRF_SECRET"`

	// JSON 接口允许的跨域来源，为空时不返回 CORS 头
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	// Snowflake ID 生成器配置，用于生成访客 ID
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪与指标，endpoint 为空时不启用导出
	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"0.1"`

	// 速率限制配置，只在 redis 后端下生效
	RateLimitEnabled     bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"60"`
	RateLimitBlock       time.Duration `env:"RATE_LIMIT_BLOCK" envDefault:"5m"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.SessionSecret == "" {
		if Cfg.IsProduction() {
			log.Fatal("SESSION_SECRET is required in production")
		}
		log.Printf("WARN: SESSION_SECRET is not set, using a development secret")
		Cfg.SessionSecret = developmentSessionSecret
	}

	if Cfg.CSRFSecret == "" {
		Cfg.CSRFSecret = Cfg.SessionSecret
	}

	switch Cfg.StorageBackend {
	case BackendRedis, BackendPostgres, BackendMemory:
	default:
		log.Fatalf("STORAGE_BACKEND must be one of redis, postgres, memory, got %q", Cfg.StorageBackend)
	}

	if Cfg.StorageBackend == BackendMemory && Cfg.IsProduction() {
		log.Printf("WARN: STORAGE_BACKEND=memory loses form data on restart")
	}
}

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OTelEnabled 是否启用 OpenTelemetry 导出
func (c *Config) OTelEnabled() bool {
	return c.OTLPEndpoint != ""
}
