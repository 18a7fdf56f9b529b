package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Auth          AuthConfig          `yaml:"auth"`
	Ledger        LedgerConfig        `yaml:"ledger"`
	Receipts      ReceiptsConfig      `yaml:"receipts"`
	ObjectStore   ObjectStoreConfig   `yaml:"object_store"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Log           LogConfig           `yaml:"log"`
	CORS          CORSConfig          `yaml:"cors"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Idempotency-Key"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN runs the server on the in-memory store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"btorestate"`
	// LockTimeout bounds how long a write waits on a row another transaction holds.
	LockTimeout      time.Duration `yaml:"lock_timeout"      env:"DATABASE_LOCK_TIMEOUT"      env-default:"2s"`
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
}

// RedisConfig holds the replay cache connection. An empty URL keeps
// idempotency records in process memory.
type RedisConfig struct {
	URL          string        `yaml:"url"            env:"REDIS_URL"`
	PoolSize     int           `yaml:"pool_size"      env:"REDIS_POOL_SIZE"      env-default:"10"`
	MinIdleConns int           `yaml:"min_idle_conns" env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout"   env:"REDIS_DIAL_TIMEOUT"   env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"   env:"REDIS_READ_TIMEOUT"   env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout"  env:"REDIS_WRITE_TIMEOUT"  env-default:"3s"`
	KeyPrefix    string        `yaml:"key_prefix"     env:"REDIS_KEY_PREFIX"     env-default:"btorestate:"`
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"btorestate"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LedgerConfig controls transaction retries on concurrent writes.
type LedgerConfig struct {
	TxMaxAttempts    int           `yaml:"tx_max_attempts"     env:"LEDGER_TX_MAX_ATTEMPTS"     env-default:"5"`
	TxRetryBaseDelay time.Duration `yaml:"tx_retry_base_delay" env:"LEDGER_TX_RETRY_BASE_DELAY" env-default:"10ms"`
}

// ReceiptsConfig controls receipt validation and upload retries.
type ReceiptsConfig struct {
	MaxBytes           int64         `yaml:"max_bytes"            env:"RECEIPTS_MAX_BYTES"            env-default:"5242880"`
	UploadAttempts     int           `yaml:"upload_attempts"      env:"RECEIPTS_UPLOAD_ATTEMPTS"      env-default:"3"`
	UploadBaseDelay    time.Duration `yaml:"upload_base_delay"    env:"RECEIPTS_UPLOAD_BASE_DELAY"    env-default:"1s"`
	BreakerMaxFailures uint32        `yaml:"breaker_max_failures" env:"RECEIPTS_BREAKER_MAX_FAILURES" env-default:"5"`
	BreakerOpenTimeout time.Duration `yaml:"breaker_open_timeout" env:"RECEIPTS_BREAKER_OPEN_TIMEOUT" env-default:"30s"`
}

// ObjectStoreConfig addresses the bucket receipts are written to.
type ObjectStoreConfig struct {
	BaseURL     string        `yaml:"base_url"     env:"OBJECT_STORE_BASE_URL"     env-default:"http://localhost:9000/receipts"`
	PublicURL   string        `yaml:"public_url"   env:"OBJECT_STORE_PUBLIC_URL"`
	Timeout     time.Duration `yaml:"timeout"      env:"OBJECT_STORE_TIMEOUT"      env-default:"15s"`
	BearerToken string        `yaml:"bearer_token" env:"OBJECT_STORE_BEARER_TOKEN"`
}

// NotificationsConfig holds inbox paging and dispatch settings.
type NotificationsConfig struct {
	ListLimit           int           `yaml:"list_limit"           env:"NOTIFICATIONS_LIST_LIMIT"           env-default:"50"`
	MaxListLimit        int           `yaml:"max_list_limit"       env:"NOTIFICATIONS_MAX_LIST_LIMIT"       env-default:"200"`
	DispatchConcurrency int           `yaml:"dispatch_concurrency" env:"NOTIFICATIONS_DISPATCH_CONCURRENCY" env-default:"8"`
	ReplayTTL           time.Duration `yaml:"replay_ttl"           env:"NOTIFICATIONS_REPLAY_TTL"           env-default:"24h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

// UsesPostgres reports whether a database is configured.
func (c DatabaseConfig) UsesPostgres() bool { return c.DSN != "" }

// UsesRedis reports whether a replay cache is configured.
func (c RedisConfig) UsesRedis() bool { return c.URL != "" }
