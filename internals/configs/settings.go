package configs

import "time"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	School   SchoolConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DatabaseConfig struct {
	Host, Port, User, Password, Name, SSLMode string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type JWTConfig struct {
	Secret         string
	AccessTTL      time.Duration
	BlacklistSweep time.Duration
}

type PaymentConfig struct {
	MidtransServerKey string
	UseProduction     bool
	Currency          string
	// BaseURL is this API's public origin, used to build gateway callback URLs.
	BaseURL string
	// ClientURL is the frontend origin users are redirected to after paying.
	ClientURL      string
	GatewayTimeout time.Duration
	OverdueSweep   time.Duration
}

type SchoolConfig struct {
	Name string
	// IANA zone used on receipts
	Timezone string
}

// Load reads the whole configuration from the environment. Call LoadEnv first
// when a .env file should be honoured.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         GetEnv("PORT", "8080"),
			ReadTimeout:  GetEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: GetEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			BodyLimit:    GetEnvInt("SERVER_BODY_LIMIT_MB", 4) * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD"),
			Name:            GetEnv("DB_NAME", "smartedu"),
			SSLMode:         GetEnv("DB_SSLMODE", "require"),
			MaxOpenConns:    GetEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    GetEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxIdleTime: GetEnvDuration("DB_CONN_MAX_IDLE_TIME", 60*time.Second),
			ConnMaxLifetime: GetEnvDuration("DB_CONN_MAX_LIFETIME", 10*time.Minute),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "text"),
		},
		JWT: JWTConfig{
			Secret:         GetEnv("JWT_SECRET"),
			AccessTTL:      GetEnvDuration("JWT_ACCESS_TTL", 24*time.Hour),
			BlacklistSweep: GetEnvDuration("TOKEN_BLACKLIST_SWEEP_INTERVAL", 24*time.Hour),
		},
		Payment: PaymentConfig{
			MidtransServerKey: GetEnv("MIDTRANS_SERVER_KEY"),
			UseProduction:     GetEnvBool("MIDTRANS_USE_PROD", false),
			Currency:          GetEnv("PAYMENT_CURRENCY", "IDR"),
			BaseURL:           GetEnv("BASE_URL", "http://localhost:8080"),
			ClientURL:         GetEnv("CLIENT_URL", "http://localhost:3000"),
			GatewayTimeout:    GetEnvDuration("PAYMENT_GATEWAY_TIMEOUT", 15*time.Second),
			OverdueSweep:      GetEnvDuration("FEE_OVERDUE_SWEEP_INTERVAL", time.Hour),
		},
		School: SchoolConfig{
			Name:     GetEnv("SCHOOL_NAME", "Smart Edu School"),
			Timezone: GetEnv("SCHOOL_TIMEZONE", "Asia/Jakarta"),
		},
	}
}
