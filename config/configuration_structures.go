package config

type DatabaseConfig struct {
	DSN            string `yaml:"dsn"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	Issuer          string `yaml:"issuer"`
	Audience        string `yaml:"audience"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

// AdminConfig : администратор, создаваемый при первом запуске
type AdminConfig struct {
	Email    string `yaml:"email"`
	UserName string `yaml:"user_name"`
	Password string `yaml:"password"`
}

// MailConfig : куда отправлять письма восстановления пароля.
// Driver: smtp | kafka | log
type MailConfig struct {
	Driver       string   `yaml:"driver"`
	FromEmail    string   `yaml:"from_email"`
	FromName     string   `yaml:"from_name"`
	SMTPServer   string   `yaml:"smtp_server"`
	Port         int      `yaml:"port"`
	Username     string   `yaml:"username"`
	Password     string   `yaml:"password"`
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
	ResetURL     string   `yaml:"reset_url"`
	SendTimeout  string   `yaml:"send_timeout"`
}

type PasswordResetConfig struct {
	TTL string `yaml:"ttl"`
}

type CacheConfig struct {
	TTL string `yaml:"ttl"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}
