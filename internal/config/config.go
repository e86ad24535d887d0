package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost        string
	DBPort        int
	DBUsername    string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool
	DBMaxOpen     int
	DBMaxIdle     int
	DBConnMaxLife time.Duration

	CORSOrigins []string

	RedisURL         string
	CreateRateLimit  int
	CreateRateWindow time.Duration

	AMQPURL string

	GinMode string
}

// LoadDotEnv loads a .env file from the working directory when one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "3001"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getInt("DB_PORT", 5432),
		DBUsername:    getEnv("DB_USERNAME", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_DATABASE", "recruitment_db"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate: getBool("DB_AUTO_MIGRATE", true),
		DBMaxOpen:     getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdle:     getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLife: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		CORSOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RedisURL:         getEnv("REDIS_URL", ""),
		CreateRateLimit:  getInt("CREATE_RATE_LIMIT", 30),
		CreateRateWindow: getDuration("CREATE_RATE_WINDOW", time.Minute),

		AMQPURL: getEnv("AMQP_URL", ""),

		GinMode: getEnv("GIN_MODE", ""),
	}
}

// DSN renders the keyword/value connection string understood by the postgres driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUsername, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// ClientConfig is what the terminal portal needs.
type ClientConfig struct {
	APIURL    string
	StatePath string
}

func LoadClient() *ClientConfig {
	statePath := getEnv("PORTAL_STATE", "")
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		statePath = home + string(os.PathSeparator) + ".recruitment-portal.json"
	}
	return &ClientConfig{
		APIURL:    strings.TrimRight(getEnv("API_URL", "http://localhost:3001"), "/"),
		StatePath: statePath,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
