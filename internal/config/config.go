package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Имена переменных окружения
const (
	// EnvBaseURL задает базовый URL API сервера
	EnvBaseURL = "BASE_PRICE_TRACKER_API_URL"
	// EnvDBPath задает путь к локальной базе токенов
	EnvDBPath = "PRICETRACK_DB_PATH"
)

// DefaultHTTPTimeout - таймаут HTTP клиента по умолчанию
const DefaultHTTPTimeout = 30 * time.Second

// Config содержит конфигурацию клиента
type Config struct {
	// BaseURL - базовый URL API сервера (без завершающего слеша)
	BaseURL string
	// DBPath - путь к файлу локальной базы токенов
	DBPath string
	// HTTPTimeout - таймаут HTTP запросов
	HTTPTimeout time.Duration
}

// Load загружает конфигурацию из окружения
// .env файл подхватывается best effort, переменные окружения имеют приоритет
func Load() (*Config, error) {
	// Отсутствие .env не ошибка - работаем с тем, что есть в окружении
	_ = godotenv.Load()

	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("environment variable %s is required", EnvBaseURL)
	}

	dbPath := os.Getenv(EnvDBPath)
	if dbPath == "" {
		dbPath = "pricetrack-client.db"
	}

	return &Config{
		BaseURL:     baseURL,
		DBPath:      dbPath,
		HTTPTimeout: DefaultHTTPTimeout,
	}, nil
}
