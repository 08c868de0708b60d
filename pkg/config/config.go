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

// State backends supported for per-device navigation state.
const (
	StateBackendRedis  = "redis"
	StateBackendMemory = "memory"
)

// Visitor sync drivers for the external data service.
const (
	SyncDriverNone      = "none"
	SyncDriverFirestore = "firestore"
	SyncDriverPostgres  = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	State       StateConfig
	Device      DeviceConfig
	VisitorSync VisitorSyncConfig
	Firestore   FirestoreConfig
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
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StateConfig selects where per-device navigation state is kept.
type StateConfig struct {
	Backend   string
	KeyPrefix string
	TTL       time.Duration
}

// DeviceConfig controls how the device identifier cookie is issued.
type DeviceConfig struct {
	CookieName string
	CookieTTL  time.Duration
	Secure     bool
}

// VisitorSyncConfig tunes the best-effort visitor upsert worker.
type VisitorSyncConfig struct {
	Driver     string
	Workers    int
	Retries    int
	BufferSize int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// FirestoreConfig locates the hosted document database.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
	Collection      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

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
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
		Issuer: v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.State = StateConfig{
		Backend:   strings.ToLower(v.GetString("STATE_BACKEND")),
		KeyPrefix: v.GetString("STATE_KEY_PREFIX"),
		TTL:       parseDuration(v.GetString("STATE_TTL"), 0),
	}

	cfg.Device = DeviceConfig{
		CookieName: v.GetString("DEVICE_COOKIE_NAME"),
		CookieTTL:  parseDuration(v.GetString("DEVICE_COOKIE_TTL"), 365*24*time.Hour),
		Secure:     cfg.Env == EnvProduction,
	}

	cfg.VisitorSync = VisitorSyncConfig{
		Driver:     strings.ToLower(v.GetString("VISITOR_SYNC_DRIVER")),
		Workers:    v.GetInt("VISITOR_SYNC_WORKERS"),
		Retries:    v.GetInt("VISITOR_SYNC_RETRIES"),
		BufferSize: v.GetInt("VISITOR_SYNC_BUFFER"),
		RetryDelay: parseDuration(v.GetString("VISITOR_SYNC_RETRY_DELAY"), 2*time.Second),
		Timeout:    parseDuration(v.GetString("VISITOR_SYNC_TIMEOUT"), 5*time.Second),
	}

	cfg.Firestore = FirestoreConfig{
		ProjectID:       v.GetString("FIRESTORE_PROJECT_ID"),
		CredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		CredentialsJSON: v.GetString("FIREBASE_CONFIG"),
		Collection:      v.GetString("FIRESTORE_VISITOR_COLLECTION"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "college_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STATE_BACKEND", StateBackendRedis)
	v.SetDefault("STATE_KEY_PREFIX", "nav:")
	v.SetDefault("STATE_TTL", "")

	v.SetDefault("DEVICE_COOKIE_NAME", "device_id")
	v.SetDefault("DEVICE_COOKIE_TTL", "8760h")

	v.SetDefault("VISITOR_SYNC_DRIVER", SyncDriverNone)
	v.SetDefault("VISITOR_SYNC_WORKERS", 1)
	v.SetDefault("VISITOR_SYNC_RETRIES", 3)
	v.SetDefault("VISITOR_SYNC_BUFFER", 64)
	v.SetDefault("VISITOR_SYNC_RETRY_DELAY", "2s")
	v.SetDefault("VISITOR_SYNC_TIMEOUT", "5s")

	v.SetDefault("FIRESTORE_PROJECT_ID", "")
	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	v.SetDefault("FIREBASE_CONFIG", "")
	v.SetDefault("FIRESTORE_VISITOR_COLLECTION", "visitors")
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
