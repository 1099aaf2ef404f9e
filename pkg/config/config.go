package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store drivers.
const (
	StoreDriverNotion   = "notion"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env  string
	Port int

	Store      StoreConfig
	Notion     NotionConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Bulk       BulkConfig
	Mail       MailConfig
	Invite     InviteConfig
	Fallback   FallbackConfig
	Moderation ModerationConfig
	Kafka      KafkaConfig
	CORS       CORSConfig
	Log        LogConfig
}

// StoreConfig selects and tunes the document store backend.
type StoreConfig struct {
	Driver   string
	MaxPages int
	PageSize int
	Timeout  time.Duration
}

// NotionConfig holds the hosted document store credentials.
type NotionConfig struct {
	Secret                 string
	EventsDatabaseID       string
	RegistrationDatabaseID string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	// URL, when set, overrides the discrete fields.
	URL      string
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig governs caching of the reviewed events list.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// BulkConfig tunes the bulk import path.
type BulkConfig struct {
	MaxConcurrency int
}

// MailConfig configures outbound SMTP delivery.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// InviteConfig configures generated calendar invites.
type InviteConfig struct {
	UIDDomain string
	Timezone  string
	Organizer string
}

// FallbackConfig points at the bundled static dataset.
type FallbackConfig struct {
	EventsFile string
}

// ModerationConfig guards the bulk import endpoint.
type ModerationConfig struct {
	AuthEnabled bool
	JWTSecret   string
}

// KafkaConfig enables submission notifications.
type KafkaConfig struct {
	Brokers          []string
	SubmissionsTopic string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindAliases(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Store = StoreConfig{
		Driver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		MaxPages: v.GetInt("STORE_MAX_PAGES"),
		PageSize: v.GetInt("STORE_PAGE_SIZE"),
		Timeout:  parseDuration(v.GetString("STORE_TIMEOUT"), 30*time.Second),
	}

	cfg.Notion = NotionConfig{
		Secret:                 v.GetString("NOTION_SECRET"),
		EventsDatabaseID:       v.GetString("NOTION_EVENTS_DATABASE_ID"),
		RegistrationDatabaseID: v.GetString("NOTION_REGISTRATION_DATABASE_ID"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		URL:      v.GetString("REDIS_URL"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.Bulk = BulkConfig{MaxConcurrency: v.GetInt("BULK_MAX_CONCURRENCY")}

	cfg.Mail = MailConfig{
		Host:     v.GetString("SMTP_HOST"),
		Port:     v.GetInt("SMTP_PORT"),
		Username: v.GetString("SMTP_USERNAME"),
		Password: v.GetString("SMTP_PASSWORD"),
		FromName: v.GetString("MAIL_FROM_NAME"),
	}

	cfg.Invite = InviteConfig{
		UIDDomain: v.GetString("INVITE_UID_DOMAIN"),
		Timezone:  v.GetString("INVITE_TIMEZONE"),
		Organizer: v.GetString("INVITE_ORGANIZER_NAME"),
	}

	cfg.Fallback = FallbackConfig{EventsFile: v.GetString("FALLBACK_EVENTS_FILE")}

	cfg.Moderation = ModerationConfig{
		AuthEnabled: v.GetBool("MODERATION_AUTH_ENABLED"),
		JWTSecret:   v.GetString("JWT_SECRET"),
	}

	cfg.Kafka = KafkaConfig{
		Brokers:          splitAndTrim(v.GetString("KAFKA_BROKERS")),
		SubmissionsTopic: v.GetString("KAFKA_SUBMISSIONS_TOPIC"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("STORE_DRIVER", StoreDriverNotion)
	v.SetDefault("STORE_MAX_PAGES", 100)
	v.SetDefault("STORE_PAGE_SIZE", 100)
	v.SetDefault("STORE_TIMEOUT", "30s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "igaming_events")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("BULK_MAX_CONCURRENCY", 0)

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM_NAME", "PayRam Gaming Events")

	v.SetDefault("INVITE_UID_DOMAIN", "payram.com")
	v.SetDefault("INVITE_TIMEZONE", "UTC")
	v.SetDefault("INVITE_ORGANIZER_NAME", "PayRam")

	v.SetDefault("FALLBACK_EVENTS_FILE", "./public/data/events.json")

	v.SetDefault("MODERATION_AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_SUBMISSIONS_TOPIC", "event-submissions")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// bindAliases keeps the env names used by earlier deployments working.
func bindAliases(v *viper.Viper) {
	_ = v.BindEnv("NOTION_REGISTRATION_DATABASE_ID", "NOTION_REGISTRATION_DATABASE_ID", "NOTION_REGISTERATION_DATABASE_ID")
	_ = v.BindEnv("SMTP_USERNAME", "SMTP_USERNAME", "GMAIL_USER")
	_ = v.BindEnv("SMTP_PASSWORD", "SMTP_PASSWORD", "GMAIL_APP_PASSWORD")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
