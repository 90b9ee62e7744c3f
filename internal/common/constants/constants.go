package constants

import "time"

const (
	PasswordMaxLength  = 72
	FieldMaxLength     = 255
	JWTSecretMinLength = 32
	BcryptCost         = 10

	DefaultTokenTTL       = 24 * time.Hour
	DefaultRequestTimeout = 5 * time.Second
	DefaultMaxRequestSize = 1 << 20

	DefaultHTTPPort       = "3000"
	DefaultCORSOrigin     = "http://localhost:5173"
	DefaultDatabaseDriver = "postgres"
	DefaultSQLitePath     = "watchlist.db"

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	SQLiteMaxReaders = 4

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024
	WebSocketSendBufSize     = 64
	WebSocketWriteWait       = 10 * time.Second
	WebSocketPongWait        = 60 * time.Second
	WebSocketPingPeriod      = (WebSocketPongWait * 9) / 10
	WebSocketMaxMsgSize      = 512

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
