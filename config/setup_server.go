package config

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig      `yaml:"databaseConfig"`
	RedisConfig    RedisConfig         `yaml:"redisConfig"`
	ServerAddr     string              `yaml:"serverAddr"`
	JWT            JWTConfig           `yaml:"jwt"`
	Admin          AdminConfig         `yaml:"admin"`
	Mail           MailConfig          `yaml:"mail"`
	PasswordReset  PasswordResetConfig `yaml:"passwordReset"`
	Cache          CacheConfig         `yaml:"cache"`
	Tracing        TracingConfig       `yaml:"tracing"`
}

const (
	defaultAccessTokenTTL  = "15m"
	defaultRefreshTokenTTL = "168h"
	defaultResetTTL        = "1h"
	defaultCacheTTL        = "10m"
	defaultSendTimeout     = "10s"
)

// LoadConfig : читает yaml, затем .env (если есть) и переменные окружения.
// Переменные окружения имеют приоритет над файлом
func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("файл .env не загружен, используются переменные окружения: %v", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

func (cfg *AppConfig) applyEnv() {
	setFromEnv(&cfg.JWT.SecretKey, "JWT_KEY")
	setFromEnv(&cfg.JWT.Issuer, "JWT_VALID_ISSUER")
	setFromEnv(&cfg.JWT.Audience, "JWT_VALID_AUDIENCE")
	setFromEnv(&cfg.DatabaseConfig.DSN, "DATABASE_DSN")
	setFromEnv(&cfg.RedisConfig.Addr, "REDIS_ADDR")
	setFromEnv(&cfg.RedisConfig.Password, "REDIS_PASSWORD")
	setFromEnv(&cfg.ServerAddr, "SERVER_ADDR")
	setFromEnv(&cfg.Mail.SMTPServer, "SMTP_SERVER")
	setFromEnv(&cfg.Mail.Username, "SMTP_USERNAME")
	setFromEnv(&cfg.Mail.Password, "SMTP_PASSWORD")
	setFromEnv(&cfg.Mail.FromEmail, "SMTP_FROM_EMAIL")
	setFromEnv(&cfg.Admin.Password, "ADMIN_PASSWORD")
	setFromEnv(&cfg.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Mail.Port = p
		} else {
			log.Printf("некорректный SMTP_PORT %q: %v", port, err)
		}
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Mail.KafkaBrokers = strings.Split(brokers, ",")
	}
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.JWT.AccessTokenTTL == "" {
		cfg.JWT.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.JWT.RefreshTokenTTL == "" {
		cfg.JWT.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if cfg.PasswordReset.TTL == "" {
		cfg.PasswordReset.TTL = defaultResetTTL
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = defaultCacheTTL
	}
	if cfg.Mail.Driver == "" {
		cfg.Mail.Driver = "log"
	}
	if cfg.Mail.SendTimeout == "" {
		cfg.Mail.SendTimeout = defaultSendTimeout
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "food-inventory"
	}
}

func setFromEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*target = value
	}
}

// Validate : проверка обязательных полей, вызывается один раз при старте
func (cfg *AppConfig) Validate() error {
	var errs []error

	if err := cfg.JWT.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.DatabaseConfig.DSN == "" {
		errs = append(errs, errors.New("databaseConfig.dsn не задан"))
	}
	if cfg.ServerAddr == "" {
		errs = append(errs, errors.New("serverAddr не задан"))
	}
	for name, value := range map[string]string{
		"passwordReset.ttl": cfg.PasswordReset.TTL,
		"cache.ttl":         cfg.Cache.TTL,
		"mail.send_timeout": cfg.Mail.SendTimeout,
	} {
		if _, err := ParsePositiveDuration(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	switch cfg.Mail.Driver {
	case "log":
	case "smtp":
		if cfg.Mail.SMTPServer == "" || cfg.Mail.FromEmail == "" {
			errs = append(errs, errors.New("mail: для smtp нужны smtp_server и from_email"))
		}
	case "kafka":
		if len(cfg.Mail.KafkaBrokers) == 0 || cfg.Mail.KafkaTopic == "" {
			errs = append(errs, errors.New("mail: для kafka нужны kafka_brokers и kafka_topic"))
		}
	default:
		errs = append(errs, fmt.Errorf("mail: неизвестный driver %q", cfg.Mail.Driver))
	}

	return errors.Join(errs...)
}

// Validate : секрет, issuer и audience обязательны, TTL должны быть положительными
func (c *JWTConfig) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("jwt: secret_key (JWT_KEY) не задан"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("jwt: issuer (JWT_VALID_ISSUER) не задан"))
	}
	if c.Audience == "" {
		errs = append(errs, errors.New("jwt: audience (JWT_VALID_AUDIENCE) не задан"))
	}
	if _, err := ParsePositiveDuration(c.AccessTokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("jwt: access_token_ttl: %w", err))
	}
	if _, err := ParsePositiveDuration(c.RefreshTokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("jwt: refresh_token_ttl: %w", err))
	}
	return errors.Join(errs...)
}

func ParsePositiveDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("длительность должна быть положительной: %s", value)
	}
	return d, nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
