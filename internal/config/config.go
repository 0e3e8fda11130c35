package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string
	LogLevel string

	// Data source
	DataSource       string
	StaticDataPath   string
	SetlistFMAPIKey  string
	SetlistFMBaseURL string
	ArtistMBID       string
	TourName         string
	TourConfigPath   string
	CatalogPath      string

	// Upstream fetching
	FetchWorkers int
	MaxPages     int
	UpstreamRPS  float64

	// Payload cache
	CacheBackend  string
	CachePath     string
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
	CacheKey      string
	TourCacheKey  string

	// HTTP API
	APIRateLimit float64

	RefreshSchedule string

	// EnvFileErr is set when no .env file could be read; the environment
	// alone was used.
	EnvFileErr error
}

// Load reads configuration from .env file (if present) and environment variables.
func Load() *Config {
	envErr := godotenv.Load()

	return &Config{
		EnvFileErr: envErr,

		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataSource:       getEnv("DATA_SOURCE", "setlistfm"),
		StaticDataPath:   getEnv("STATIC_DATA_PATH", "./data/tour.json"),
		SetlistFMAPIKey:  getEnv("SETLISTFM_API_KEY", ""),
		SetlistFMBaseURL: getEnv("SETLISTFM_BASE_URL", "https://api.setlist.fm/rest/1.0"),
		ArtistMBID:       getEnv("ARTIST_MBID", "f59c5520-5f46-4d2c-b2c4-822eabf53419"),
		TourName:         getEnv("TOUR_NAME", "From Zero World Tour"),
		TourConfigPath:   getEnv("TOUR_CONFIG_PATH", ""),
		CatalogPath:      getEnv("CATALOG_PATH", ""),

		FetchWorkers: getInt("FETCH_WORKERS", 3),
		MaxPages:     getInt("MAX_PAGES", 10),
		UpstreamRPS:  getFloat("UPSTREAM_RPS", 2),

		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		CachePath:     getEnv("CACHE_PATH", "./data/cache.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(getInt("CACHE_TTL_HOURS", 24)) * time.Hour,
		CacheKey:      getEnv("CACHE_KEY", "lp-setlists-cache"),
		TourCacheKey:  getEnv("TOUR_CACHE_KEY", "fromZeroTourData"),

		APIRateLimit: getFloat("API_RATE_LIMIT", 10),

		RefreshSchedule: getEnv("REFRESH_SCHEDULE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}
