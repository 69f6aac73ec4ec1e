package config

import (
	"os"
	"strconv"
)

// Supported ledger backends.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverLevelDB  = "leveldb"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	ApplicationName    string
	StatementTimeoutMs int
	LockTimeoutMs      int
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// LevelDBConfig holds settings for the embedded ledger database.
type LevelDBConfig struct {
	Path string
}

// MinIOConfig holds object storage settings for MinIO.
// Artifact uploads are disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	PresignExpirySec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	// AppHost is the host advertised in the API docs. Empty lets clients
	// use the host the docs were fetched from.
	AppHost     string
	Port        string
	TimeZone    string
	LogLevel    string
	StoreDriver string
	AuthPolicy  string
	Database    DatabaseConfig
	LevelDB     LevelDBConfig
	MinIO       MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", ""),
		Port:        getEnv("PORT", "8080"),
		TimeZone:    getEnv("TZ_NAME", "UTC"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverPostgres),
		AuthPolicy:  getEnv("AUTH_POLICY", "open"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "datasetregistry"),
			StatementTimeoutMs: getEnvInt("DB_STATEMENT_TIMEOUT_MS", 15000),
			LockTimeoutMs:      getEnvInt("DB_LOCK_TIMEOUT_MS", 5000),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		LevelDB: LevelDBConfig{
			Path: getEnv("LEVELDB_PATH", "data/ledger.leveldb"),
		},
		MinIO: MinIOConfig{
			Endpoint:         getEnv("MINIO_ENDPOINT", ""),
			AccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:        getEnv("MINIO_SECRET_KEY", ""),
			Bucket:           getEnv("MINIO_BUCKET", ""),
			UseSSL:           getEnvBool("MINIO_USE_SSL", false),
			PresignExpirySec: getEnvInt("PRESIGN_EXPIRY_SEC", 900),
		},
	}
}

// ObjectStorageEnabled reports whether artifact storage has been configured.
func (c *AppConfig) ObjectStorageEnabled() bool {
	return c.MinIO.Endpoint != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
