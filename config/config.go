package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort   string
	StoreURL     string
	StoreAPIKey  string
	ChunkSize    int
	ChunkOverlap int
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	return &Config{
		ServerPort:   serverPort,
		StoreURL:     os.Getenv("DOCSTORE_URL"),
		StoreAPIKey:  os.Getenv("DOCSTORE_API_KEY"),
		ChunkSize:    envInt("CHUNK_SIZE", 0),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 0),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
