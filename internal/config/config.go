package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mood-server/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"debug"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	// Base URL used to build email verification links.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// Database
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"mood"`
	DBName        string        `envconfig:"DB_NAME" default:"mood"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"10" validate:"gt=0"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	DBPassword    string        `ignored:"true"`

	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `ignored:"true"`

	// RabbitMQ. Empty URL means mail requests and events are only logged.
	RabbitMQURL        string `envconfig:"RABBITMQ_URL" default:""`
	MailExchangeName   string `envconfig:"MAIL_EXCHANGE_NAME" default:"mail_requests"`
	EventsExchangeName string `envconfig:"EVENTS_EXCHANGE_NAME" default:"questionnaire_events"`

	// JWT
	JWTSecret       string        `ignored:"true"`
	PasswordPepper  string        `ignored:"true"`
	AccessTokenTTL  time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"JWT_REFRESH_TOKEN_TTL" default:"168h"`
	EmailConfirmTTL time.Duration `envconfig:"EMAIL_CONFIRM_TTL" default:"1h"`

	// Admin panel credentials
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword string `ignored:"true"`

	// Rate limiting of /auth routes, per client IP
	AuthRateLimit  uint          `envconfig:"AUTH_RATE_LIMIT" default:"10" validate:"gt=0"`
	AuthRateWindow time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"1m"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Text generator
	AIClientType  string        `envconfig:"AI_CLIENT_TYPE" default:"ollama" validate:"oneof=ollama openai"`
	AIBaseURL     string        `envconfig:"AI_BASE_URL" default:"http://localhost:11434"`
	AIModel       string        `envconfig:"AI_MODEL" default:"yi"`
	AITemperature float64       `envconfig:"AI_TEMPERATURE" default:"0.3"`
	AITimeout     time.Duration `envconfig:"AI_TIMEOUT" default:"60s" validate:"gt=0s"`
	// Prompt-size histogram; the first use fetches the tiktoken encoding.
	AIEstimateTokens bool   `envconfig:"AI_ESTIMATE_TOKENS" default:"true"`
	AIAPIKey         string `ignored:"true" validate:"required_if=AIClientType openai"`

	// Questionnaire sessions
	QuestionnaireStore      string        `envconfig:"QUESTIONNAIRE_STORE" default:"memory" validate:"oneof=memory redis"`
	QuestionnaireSessionTTL time.Duration `envconfig:"QUESTIONNAIRE_SESSION_TTL" default:"24h"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// PostgresDSN builds the connection string for pgx and migrate.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	var loadErr error
	cfg.DBPassword, loadErr = utils.ReadSecretOrEnv("db_password", "DB_PASSWORD")
	if loadErr != nil {
		return nil, loadErr
	}
	cfg.JWTSecret, loadErr = utils.ReadSecretOrEnv("jwt_secret", "JWT_SECRET")
	if loadErr != nil {
		return nil, loadErr
	}
	cfg.PasswordPepper, loadErr = utils.ReadSecretOrEnv("password_pepper", "PASSWORD_PEPPER")
	if loadErr != nil {
		return nil, loadErr
	}

	// Optional secrets
	if v, err := utils.ReadSecretOrEnv("admin_password", "ADMIN_PASSWORD"); err == nil {
		cfg.AdminPassword = v
	} else {
		log.Println("Optional secret 'admin_password' not set, admin login is disabled.")
	}
	if v, err := utils.ReadSecretOrEnv("redis_password", "REDIS_PASSWORD"); err == nil {
		cfg.RedisPassword = v
	}
	if v, err := utils.ReadSecretOrEnv("ai_api_key", "AI_API_KEY"); err == nil {
		cfg.AIAPIKey = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Println("Configuration loaded successfully.")
	return &cfg, nil
}

var configValidator = validator.New()

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
