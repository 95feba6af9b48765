package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Keys      APIKeys
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	Platform           string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	Recipient  string // firm inbox receiving leads and contact forms
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
}

type AIConfig struct {
	GeminiModel       string
	GeminiBaseURL     string
	OpenAIModel       string
	OpenAIBaseURL     string
	Temperature       float64
	SummaryTimeout    time.Duration
	ChatTimeout       time.Duration
	NewsCacheDuration time.Duration
}

// AssistantConfig is consumed by the client side (cmd/assistant, pkg/assistant).
type AssistantConfig struct {
	RelayURL       string
	RequestTimeout time.Duration
	HistoryWindow  int
	LocalQueuePath string
	LogFilePath    string
	FirmPhone      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			Platform:           getEnv("APP_PLATFORM", "web-chat"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", "smtp.sendgrid.net"),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Asistente Web Astorga"),
			Recipient:  getEnv("SMTP_RECIPIENT", "contacto@astorgayasociados.cl"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			SummaryTimeout:    getEnvAsDuration("LLM_SUMMARY_TIMEOUT", 7*time.Second),
			ChatTimeout:       getEnvAsDuration("LLM_CHAT_TIMEOUT", 6*time.Second),
			NewsCacheDuration: getEnvAsDuration("NEWS_CACHE_DURATION", 30*time.Minute),
		},
		Assistant: AssistantConfig{
			RelayURL:       getEnv("ASSISTANT_RELAY_URL", "http://localhost:3000"),
			RequestTimeout: getEnvAsDuration("ASSISTANT_REQUEST_TIMEOUT", 15*time.Second),
			HistoryWindow:  getEnvAsInt("ASSISTANT_HISTORY_WINDOW", 20),
			LocalQueuePath: getEnv("ASSISTANT_LOCAL_QUEUE_PATH", "data/assistant-queue"),
			LogFilePath:    getEnv("ASSISTANT_LOG_FILE_PATH", "logs/assistant.log"),
			FirmPhone:      getEnv("FIRM_PHONE", "+56 9 500 89 295"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("15s", "2m").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
