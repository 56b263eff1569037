package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	AllowedOrigins  []string
	FrontendURL     string
	ShutdownTimeout time.Duration

	// Remote model
	LLMAPIKey      string
	LLMModel       string
	LLMEndpoint    string
	LLMTimeout     time.Duration
	LLMTemperature float32
	LLMMaxTokens   int

	// Local engine
	BotDifficulty string
	CenterReach   float64
	NeighborBonus float64

	// Optional infrastructure
	RedisURL          string
	RedisPassword     string
	LLMCallsPerMinute int
	KafkaBrokers      string
	KafkaTopic        string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// GROQ_API_KEY is what the hosted deployment has always used
	apiKey := GetEnv("LLM_API_KEY", GetEnv("GROQ_API_KEY", ""))
	if apiKey == "" {
		log.Println("No LLM API key set, every move will come from the local engine")
	}

	AppConfig = &Config{
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		FrontendURL:     frontendURL,
		ShutdownTimeout: GetEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		LLMAPIKey:      apiKey,
		LLMModel:       GetEnv("LLM_MODEL", "gemma2-9b-it"),
		LLMEndpoint:    GetEnv("LLM_ENDPOINT", "https://api.groq.com/openai/v1"),
		LLMTimeout:     time.Duration(GetEnvAsInt("LLM_TIMEOUT_SECONDS", 20)) * time.Second,
		LLMTemperature: float32(GetEnvAsFloat("LLM_TEMPERATURE", 0.2)),
		LLMMaxTokens:   GetEnvAsInt("LLM_MAX_TOKENS", 400),

		BotDifficulty: GetEnv("BOT_DIFFICULTY", "medium"),
		CenterReach:   GetEnvAsFloat("W_CENTER_REACH", 7),
		NeighborBonus: GetEnvAsFloat("W_NEIGHBOR_BONUS", 2),

		RedisURL:          GetEnv("REDIS_URL", ""),
		RedisPassword:     GetEnv("REDIS_PASSWORD", ""),
		LLMCallsPerMinute: GetEnvAsInt("LLM_CALLS_PER_MINUTE", 0),
		KafkaBrokers:      GetEnv("KAFKA_BROKERS", ""),
		KafkaTopic:        GetEnv("KAFKA_TOPIC", "gomoku-decisions"),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid float value for %s: %s, using default: %g", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go duration strings ("1m30s").
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
