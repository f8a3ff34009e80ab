package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	ReposDir       string
	StorageDir     string
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	EmbeddingModel string
}

// Load reads configuration from the environment, loading a .env file first
// if one exists in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("BACKEND_PORT", "3001"),
		ReposDir:       getEnv("REPOS_DIR", "./repos"),
		StorageDir:     getEnv("STORAGE_DIR", "./storage"),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
