package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Memo     MemoConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
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
}

type AIConfig struct {
	EmbeddingProvider string // "ollama"
	OllamaBaseURL     string
	EmbeddingModel    string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string // e.g. "llama3", "gpt-4o-mini"
	OpenAIBaseURL     string
	OpenAIKey         string
}

type MemoConfig struct {
	TemplateDir          string
	CompletenessFraction float64
	StandardTopK         int
	AgreementTopK        int
	MergedTopN           int
	SynthesisTimeout     time.Duration
	ExtractionTimeout    time.Duration
	ChatReplyTimeout     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "MemoDrafting"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		},
		Memo: MemoConfig{
			TemplateDir:          getEnv("MEMO_TEMPLATE_DIR", "configs/templates"),
			CompletenessFraction: getEnvAsFloat("MEMO_COMPLETENESS_FRACTION", 0.5),
			StandardTopK:         getEnvAsInt("MEMO_STANDARD_TOP_K", 2),
			AgreementTopK:        getEnvAsInt("MEMO_AGREEMENT_TOP_K", 3),
			MergedTopN:           getEnvAsInt("MEMO_MERGED_TOP_N", 4),
			SynthesisTimeout:     getEnvAsSeconds("MEMO_SYNTHESIS_TIMEOUT_SECONDS", 60),
			ExtractionTimeout:    getEnvAsSeconds("MEMO_EXTRACTION_TIMEOUT_SECONDS", 30),
			ChatReplyTimeout:     getEnvAsSeconds("MEMO_CHAT_REPLY_TIMEOUT_SECONDS", 30),
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

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
