package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	LogDir      string

	StoreDriver       string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	RunMigrations     bool
	CatalogCacheSize  int
	CatalogCacheTTL   time.Duration
	// CatalogSeedFile replaces the built-in starter catalog when set.
	CatalogSeedFile string

	DailyLoginSpins        int
	FirstDepositBonusSpins int

	EventMaxRetries int
	EventRetryDelay time.Duration
	DeadLetterPath  string

	ShutdownTimeout time.Duration
	// TrustedProxies are peers whose X-Forwarded-For header is honored.
	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", LogFormatText)),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),

		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "letterspin"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		RunMigrations:     getEnvAsBool("RUN_MIGRATIONS", true),
		CatalogCacheSize:  getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		CatalogCacheTTL:   getEnvAsDuration("CATALOG_CACHE_TTL", 30*time.Second),
		CatalogSeedFile:   getEnv("CATALOG_SEED_FILE", ""),

		DailyLoginSpins:        getEnvAsInt("DAILY_LOGIN_SPINS", DefaultDailyLoginSpins),
		FirstDepositBonusSpins: getEnvAsInt("FIRST_DEPOSIT_BONUS_SPINS", DefaultFirstDepositBonusSpins),

		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay: getEnvAsDuration("EVENT_RETRY_DELAY", time.Second),
		DeadLetterPath:  getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DBUser == "" || c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("%s", ErrMsgMissingDBCredentials)
		}
		if c.DBMaxConns <= 0 {
			return fmt.Errorf("%s: got %d", ErrMsgInvalidPoolSize, c.DBMaxConns)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("%s: got %q", ErrMsgInvalidStoreDriver, c.StoreDriver)
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("%s: got %q", ErrMsgInvalidLogFormat, c.LogFormat)
	}
	if c.CatalogCacheSize <= 0 {
		return fmt.Errorf("%s: got %d", ErrMsgInvalidCacheSize, c.CatalogCacheSize)
	}
	if c.DailyLoginSpins < 0 || c.FirstDepositBonusSpins < 0 {
		return fmt.Errorf("%s: daily=%d first_deposit=%d", ErrMsgNegativeSpinGrant, c.DailyLoginSpins, c.FirstDepositBonusSpins)
	}
	if c.EventMaxRetries < 0 {
		return fmt.Errorf("%s: got %d", ErrMsgNegativeRetries, c.EventMaxRetries)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%s: got %s", ErrMsgInvalidShutdown, c.ShutdownTimeout)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping blank items.
func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
