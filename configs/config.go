package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string

	DBDriver          string
	DBSource          string
	DBLogLevel        string
	DBMaxIdleConns    int
	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret   string
	JWTTTL      time.Duration
	AdminSecret string

	ChapaSecretKey  string
	ChapaBaseURL    string
	PaymentCurrency string
	PaymentTimeout  time.Duration
	APIBaseURL      string
	FrontendURL     string

	UploadDir   string
	CORSOrigins []string
}

// LoadConfig reads the environment, with an optional .env file on top.
func LoadConfig() *Config {
	envFileLoaded := godotenv.Load() == nil

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "5000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBSource:          getEnv("DB_SOURCE", "shop.db"),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
		DBConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),

		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      getEnvAsDuration("JWT_TTL", 24*time.Hour),
		AdminSecret: os.Getenv("ADMIN_SECRET"),

		ChapaSecretKey:  os.Getenv("CHAPA_SECRET_KEY"),
		ChapaBaseURL:    getEnv("CHAPA_BASE_URL", "https://api.chapa.co/v1"),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "ETB"),
		PaymentTimeout:  getEnvAsDuration("PAYMENT_TIMEOUT", 30*time.Second),
		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		FrontendURL:     strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if !envFileLoaded {
		zap.L().Debug("no .env file found, using process environment")
	}
	return cfg
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// LogFields is what main prints at startup; secrets stay out of it.
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Env),
		zap.String("port", c.Port),
		zap.String("db_driver", c.DBDriver),
		zap.String("chapa_base_url", c.ChapaBaseURL),
		zap.Bool("chapa_configured", c.ChapaSecretKey != ""),
		zap.String("upload_dir", c.UploadDir),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
