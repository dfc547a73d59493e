package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the process needs. It is built once in main and
// handed to constructors explicitly; nothing reads the environment after Load.
type Config struct {
	LogMode  string `envconfig:"LOG_MODE" default:"development"`
	HTTPPort string `envconfig:"PORT" default:"8080"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresName     string `envconfig:"POSTGRES_NAME" default:"flowfactory"`

	JWTSecretKey      string `envconfig:"JWT_SECRET_KEY" default:"defaultsecret"`
	AccessTokenTTLSec int    `envconfig:"ACCESS_TOKEN_TTL" default:"86400"`

	// GenerationBackend selects the text generation implementation: "openai"
	// calls chat completions directly, "coze" talks to a Coze bot.
	GenerationBackend string `envconfig:"GENERATION_BACKEND" default:"openai"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4.1-mini"`

	CozeAPIKey          string `envconfig:"COZE_API_KEY"`
	CozeBotID           string `envconfig:"COZE_BOT_ID"`
	CozeBaseURL         string `envconfig:"COZE_BASE_URL" default:"https://api.coze.com"`
	CozeStream          bool   `envconfig:"COZE_STREAM" default:"false"`
	CozePollIntervalMS  int    `envconfig:"COZE_POLL_INTERVAL_MS" default:"1000"`
	CozeMaxPollAttempts int    `envconfig:"COZE_MAX_POLL_ATTEMPTS" default:"60"`
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresName)
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
