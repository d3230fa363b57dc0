package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	MinIO     MinIOConfig
	FileMap   FileMapConfig
	LogLevel  string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// AuthConfig configures the verifier guarding write routes. With neither a
// Keycloak realm nor a JWT secret set, write routes are open.
type AuthConfig struct {
	KeycloakURL      string
	KeycloakRealm    string
	KeycloakClientID string
	JWTSecret        string
}

type MinIOConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	Bucket       string
	Region       string
	PresignedTTL time.Duration
}

// FileMapConfig controls the out-of-band file reference bookkeeping.
type FileMapConfig struct {
	Collection     string
	TrackerTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5020")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("MONGODB_DATABASE", "vendorhub")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 20.0)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("MINIO_BUCKET", "vendorhub")
	v.SetDefault("MINIO_REGION", "us-east-1")
	v.SetDefault("MINIO_PRESIGNED_TTL_MINUTES", 60)
	v.SetDefault("FILEMAP_COLLECTION", "filemaps")
	v.SetDefault("FILEMAP_TRACKER_TIMEOUT_SECONDS", 5)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Auth: AuthConfig{
			KeycloakURL:      v.GetString("KEYCLOAK_URL"),
			KeycloakRealm:    v.GetString("KEYCLOAK_REALM"),
			KeycloakClientID: v.GetString("KEYCLOAK_CLIENT_ID"),
			JWTSecret:        v.GetString("JWT_SECRET"),
		},
		MinIO: MinIOConfig{
			Endpoint:     v.GetString("MINIO_ENDPOINT"),
			AccessKey:    v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:    v.GetString("MINIO_SECRET_KEY"),
			UseSSL:       v.GetBool("MINIO_USE_SSL"),
			Bucket:       v.GetString("MINIO_BUCKET"),
			Region:       v.GetString("MINIO_REGION"),
			PresignedTTL: time.Duration(v.GetInt("MINIO_PRESIGNED_TTL_MINUTES")) * time.Minute,
		},
		FileMap: FileMapConfig{
			Collection:     v.GetString("FILEMAP_COLLECTION"),
			TrackerTimeout: time.Duration(v.GetInt("FILEMAP_TRACKER_TIMEOUT_SECONDS")) * time.Second,
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.MongoDB.URI == "" {
		return nil, fmt.Errorf("environment variable MONGODB_URI is required")
	}
	if cfg.MongoDB.Timeout <= 0 {
		return nil, fmt.Errorf("MONGODB_TIMEOUT must be positive, got %d", v.GetInt("MONGODB_TIMEOUT"))
	}

	return cfg, nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}

// KeycloakIssuer builds the realm issuer URL used for OIDC discovery.
func (c *Config) KeycloakIssuer() string {
	if c.Auth.KeycloakURL == "" || c.Auth.KeycloakRealm == "" {
		return c.Auth.KeycloakURL
	}
	return strings.TrimRight(c.Auth.KeycloakURL, "/") + "/realms/" + c.Auth.KeycloakRealm
}
