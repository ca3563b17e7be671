package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	StorageDriver         string
	MongoURI              string
	MongoDatabase         string
	DatabaseURI           string
	JWTSecret             string
	TokenTTL              time.Duration
	BcryptCost            int
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	DenylistPurgeInterval time.Duration
	ShutdownTimeout       time.Duration
	LogLevel              string
}

const (
	defaultRunAddress            = ":5000"
	defaultStorageDriver         = StorageMongo
	defaultMongoURI              = "mongodb://127.0.0.1:27017"
	defaultMongoDatabase         = "ElectricDigitalApp"
	defaultTokenTTL              = time.Hour
	defaultBcryptCost            = 10
	defaultDenylistPurgeInterval = time.Minute
	defaultShutdownTimeout       = 10 * time.Second
	defaultLogLevel              = "info"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	// a missing .env file is not an error
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            runAddress(lookup),
		StorageDriver:         getString(lookup, "STORAGE_DRIVER", defaultStorageDriver),
		MongoURI:              getString(lookup, "MONGODB_URI", defaultMongoURI),
		MongoDatabase:         getString(lookup, "MONGODB_DATABASE", defaultMongoDatabase),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		JWTSecret:             getString(lookup, "JWT_SECRET", ""),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		BcryptCost:            getInt(lookup, "BCRYPT_COST", defaultBcryptCost),
		RedisAddr:             getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:         getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:               getInt(lookup, "REDIS_DB", 0),
		DenylistPurgeInterval: getDuration(lookup, "DENYLIST_PURGE_INTERVAL", defaultDenylistPurgeInterval),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	// The secret file wins over JWT_SECRET but not over -jwt-secret.
	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	fs := flag.NewFlagSet("authkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		purgeIntervalStr   = cfg.DenylistPurgeInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "User store driver: mongo, postgres or memory")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection URI")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database name")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued tokens")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt work factor")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the token denylist")
	fs.StringVar(&purgeIntervalStr, "purge-interval", purgeIntervalStr, "Interval between in-memory denylist purges")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.DenylistPurgeInterval, err = time.ParseDuration(purgeIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid purge interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = defaultBcryptCost
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid bcrypt cost %d: must be between %d and %d", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.DenylistPurgeInterval <= 0 {
		cfg.DenylistPurgeInterval = defaultDenylistPurgeInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.StorageDriver {
	case StorageMongo:
		if cfg.MongoURI == "" || cfg.MongoDatabase == "" {
			return nil, fmt.Errorf("mongo uri and database must be provided")
		}
	case StoragePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func runAddress(lookup envLookup) string {
	if v, ok := lookup("RUN_ADDRESS"); ok && v != "" {
		return v
	}
	if port, ok := lookup("PORT"); ok && port != "" {
		return ":" + port
	}
	return defaultRunAddress
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
