package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/database"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LODGING"

// ServiceConfig holds all configuration for the lodging service.
type ServiceConfig struct {
	Port        string                  `mapstructure:"service_port" validate:"required,numeric"`
	AppEnv      string                  `mapstructure:"app_env" validate:"oneof=development test staging production"`
	CORSOrigins []string                `mapstructure:"cors_origins"`
	DBConfig    database.PostgresConfig `mapstructure:"db"`
	JWTConfig   JWTConfig               `mapstructure:"jwt"`
	RedisConfig RedisConfig             `mapstructure:"redis"`
	KafkaConfig KafkaConfig             `mapstructure:"kafka"`
	SMTPConfig  SMTPConfig              `mapstructure:"smtp"`

	SweepInterval   time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`
	IdentityTimeout time.Duration `mapstructure:"identity_timeout" validate:"gt=0"`
	BillingTimeout  time.Duration `mapstructure:"billing_timeout" validate:"gt=0"`
	ServiceAPIKey   string        `mapstructure:"service_api_key" validate:"required,min=16"`
}

// JWTConfig selects how access tokens are verified: a shared HS256 secret,
// or the identity provider's JWKS endpoint when JWKSURL is set.
type JWTConfig struct {
	Secret  string `mapstructure:"secret" validate:"required_without=JWKSURL"`
	Issuer  string `mapstructure:"issuer"`
	JWKSURL string `mapstructure:"jwks_url" validate:"omitempty,url"`
}

// RedisConfig points at the session store. An empty Addr disables
// revocation checks.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// KafkaConfig holds broker and topic settings.
type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers" validate:"required,min=1,dive,required"`
	GroupPrefix  string   `mapstructure:"group_prefix" validate:"required"`
	BillingTopic string   `mapstructure:"billing_topic" validate:"required"`
	PaymentTopic string   `mapstructure:"payment_topic" validate:"required"`
}

// SMTPConfig configures confirmation mail. An empty Host disables it.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"required_with=Host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"required_with=Host"`
}

// IsDevelopment reports whether the service runs locally.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MailEnabled reports whether confirmation e-mails can be sent.
func (c *ServiceConfig) MailEnabled() bool {
	return c.SMTPConfig.Host != ""
}

// Load reads configuration from LODGING_* environment variables. Outside
// production a .env file in the working directory is loaded first; it never
// overrides variables that are already set.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("app_env") != "production" {
		_ = godotenv.Load()
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("cors_origins", []string{})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "lodging_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.jwks_url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_prefix", "service-lodging")
	v.SetDefault("kafka.billing_topic", "billing.events")
	v.SetDefault("kafka.payment_topic", "payment.events")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("sweep_interval", time.Minute)
	v.SetDefault("identity_timeout", 2*time.Second)
	v.SetDefault("billing_timeout", 10*time.Second)
	v.SetDefault("service_api_key", "")
}
