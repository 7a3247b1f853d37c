package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MockAPIURL       string
	AuthURL          string
	TokenExpiresMins int
	QueryStaleTime   time.Duration
	QueryRetries     int

	SessionStorage    string // memory, file, postgres
	SessionStorageDir string
	SessionEntryName  string
	DatabaseURL       string

	APIAddr string
	LogPath string
	Debug   bool

	DiscordBotToken  string
	DiscordChannelID string
}

const (
	defaultMockAPIURL = "http://localhost:3001"
	defaultAuthURL    = "https://dummyjson.com/user/login"
)

// Load reads the optional .env files then the process environment.
// A missing .env is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return Config{}, fmt.Errorf("failed to load %v: %w", f, err)
			}
		}
	}

	cfg := Config{
		MockAPIURL:        strings.TrimRight(getEnv("MOCK_API_URL", defaultMockAPIURL), "/"),
		AuthURL:           getEnv("AUTH_URL", defaultAuthURL),
		SessionStorage:    getEnv("SESSION_STORAGE", "file"),
		SessionStorageDir: getEnv("SESSION_STORAGE_DIR", ".session"),
		SessionEntryName:  getEnv("SESSION_ENTRY_NAME", "auth-storage"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		APIAddr:           getEnv("API_ADDR", ":9090"),
		LogPath:           getEnv("LOG_PATH", "logs/"),
		DiscordBotToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID:  os.Getenv("DISCORD_CHANNEL_ID"),
	}

	var err error

	if cfg.TokenExpiresMins, err = getInt("TOKEN_EXPIRES_MINS", 60); err != nil {
		return Config{}, err
	}

	if cfg.QueryRetries, err = getInt("QUERY_RETRIES", 3); err != nil {
		return Config{}, err
	}

	if cfg.QueryStaleTime, err = getDuration("QUERY_STALE_TIME", 2*time.Minute); err != nil {
		return Config{}, err
	}

	if cfg.Debug, err = getBool("DEBUG", false); err != nil {
		return Config{}, err
	}

	switch cfg.SessionStorage {
	case "memory", "file":
	case "postgres":
		if len(cfg.DatabaseURL) == 0 {
			return Config{}, fmt.Errorf("DATABASE_URL is required when SESSION_STORAGE is postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown SESSION_STORAGE '%v'", cfg.SessionStorage)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && len(strings.TrimSpace(v)) != 0 {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %v: %w", key, err)
	}

	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %v: %w", key, err)
	}

	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %v: %w", key, err)
	}

	return d, nil
}
