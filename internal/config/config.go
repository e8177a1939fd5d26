package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	AccessToken        string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "huggingface"
	DetectorModel     string // intent/entity extraction
	ResponderModel    string // customer-facing phrasing
	OllamaBaseURL     string
	HuggingFaceAPIKey string
}

type AssistantConfig struct {
	ConfidenceThreshold int
	SummaryWindow       int
	SessionTTLMinutes   int
	StoreInfoPath       string
	TurnLogTopic        string
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			AccessToken:        getEnv("WEBHOOK_ACCESS_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			DetectorModel:     getEnv("LLM_DETECTOR_MODEL", "gemma3_input"),
			ResponderModel:    getEnv("LLM_RESPONDER_MODEL", "gemma3_output"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Assistant: AssistantConfig{
			ConfidenceThreshold: getEnvAsInt("ASSISTANT_CONFIDENCE_THRESHOLD", 70),
			SummaryWindow:       getEnvAsInt("ASSISTANT_SUMMARY_WINDOW", 12),
			SessionTTLMinutes:   getEnvAsInt("ASSISTANT_SESSION_TTL_MINUTES", 60),
			StoreInfoPath:       getEnv("STORE_INFO_PATH", "store_info.txt"),
			TurnLogTopic:        getEnv("ASSISTANT_TURN_LOG_TOPIC", "conversation.turns"),
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
