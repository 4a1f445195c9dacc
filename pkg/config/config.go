package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	MongoURI      string
	MongoDBName   string
	MongoColl     string
	NewsAPIURL    string
	NewsPageSize  int
	SpaceXAPIURL  string
	SyncInterval  time.Duration
	KafkaBrokers  []string
	KafkaTopic    string
	KafkaDLQTopic string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Parse comma-separated list of brokers
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "kafka:29092"
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://mongodb:27017"),
		MongoDBName:   getEnv("MONGO_DB_NAME", "space_nomad"),
		MongoColl:     getEnv("MONGO_COLLECTION", "missions"),
		NewsAPIURL:    getEnv("NEWS_API_URL", "https://api.spaceflightnewsapi.net"),
		NewsPageSize:  getIntEnv("NEWS_PAGE_SIZE", 10),
		SpaceXAPIURL:  getEnv("SPACEX_API_URL", "https://api.spacexdata.com"),
		SyncInterval:  getDurationEnv("SYNC_INTERVAL", 1*time.Hour),
		KafkaBrokers:  strings.Split(brokers, ","),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "mission_events"),
		KafkaDLQTopic: getEnv("KAFKA_DLQ_TOPIC", "mission_events_dlq"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// Try parsing as duration string (e.g. "1h", "90s")
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Try parsing as integer seconds
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
