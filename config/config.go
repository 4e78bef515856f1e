package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port             string
	LogMode          string
	APIBaseURL       string
	APIMode          string // http | mock
	APITimeout       time.Duration
	GuestUserID      int64
	WeatherLocation  string
	TranslationsXLSX string

	// reference backend
	BackendPort string
	DBPath      string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int64) int64 {
		n, err := strconv.ParseInt(get(k, ""), 10, 64)
		if err != nil {
			return def
		}
		return n
	}

	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		LogMode:          get("LOG_MODE", "dev"),
		APIBaseURL:       get("API_BASE_URL", "http://127.0.0.1:5001/api"),
		APIMode:          strings.ToLower(get("API_MODE", "http")),
		APITimeout:       time.Duration(getInt("API_TIMEOUT_SECONDS", 20)) * time.Second,
		GuestUserID:      getInt("GUEST_USER_ID", 1),
		WeatherLocation:  get("WEATHER_LOCATION", "Delhi"),
		TranslationsXLSX: get("TRANSLATIONS_XLSX", ""),
		BackendPort:      get("BACKEND_PORT", "5001"),
		DBPath:           get("DB_PATH", "krishi.db"),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
