package config

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Defaults
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultEnvironment            = "dev"
	DefaultServiceName            = "letterspin"
	DefaultVersion                = "dev"
	DefaultLogDir                 = "logs"
	DefaultDBMaxConns             = 25
	DefaultCatalogCacheSize       = 256
	DefaultDailyLoginSpins        = 1
	DefaultFirstDepositBonusSpins = 1
	DefaultEventMaxRetries        = 3
	DefaultDeadLetterPath         = "logs/deadletter.jsonl"
)

// Error messages
const (
	ErrMsgInvalidPort          = "invalid PORT value"
	ErrMsgInvalidStoreDriver   = "STORE_DRIVER must be one of postgres, memory"
	ErrMsgInvalidLogFormat     = "LOG_FORMAT must be one of text, json"
	ErrMsgInvalidPoolSize      = "DB_MAX_CONNS must be positive"
	ErrMsgInvalidCacheSize     = "CATALOG_CACHE_SIZE must be positive"
	ErrMsgNegativeSpinGrant    = "spin grants must not be negative"
	ErrMsgNegativeRetries      = "EVENT_MAX_RETRIES must not be negative"
	ErrMsgInvalidShutdown      = "SHUTDOWN_TIMEOUT must be positive"
	ErrMsgMissingDBCredentials = "DB_USER, DB_HOST and DB_NAME must be set for the postgres driver"
)
