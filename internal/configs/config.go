package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/laraAkg/immoscout-project/internal/constants"
)

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL string
}

// DBconfig хранит конфигурацию для БД
type DBconfig struct {
	URL            string
	ConnectTimeout time.Duration
}

// BlobConfig хранит конфигурацию для хранилища артефактов модели
type BlobConfig struct {
	ConnectionString string
	Container        string
	DownloadRetries  int
	RetryBackoff     time.Duration
}

// TrainingConfig хранит параметры обучения
type TrainingConfig struct {
	Seed      int64
	TestRatio float64
	MinRows   int
}

type RESTconfig struct {
	PORT string
}

type StdoutLogConfig struct {
	Level string `mapstructure:"STDOUT_LOG_LEVEL" default:"debug"` // По умолчанию DEBUG
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string `mapstructure:"FLUENTBIT_LOG_LEVEL" default:"info"` // По умолчанию INFO
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName          string
	Database         DBconfig
	Blob             BlobConfig
	RabbitMQ         RabbitMQConfig
	Training         TrainingConfig
	Rest             RESTconfig
	PostalLookupPath string
	FluentBit        FluentBitConfig
	StdoutLogger     StdoutLogConfig
}

// Requirement - обязательная переменная окружения конкретного жизненного
// цикла. Сервис предсказаний не трогает БД, сервис инжеста не трогает
// хранилище артефактов, поэтому каждый бинарник требует только свое.
type Requirement string

const (
	RequireDatabase Requirement = "DATABASE_URL"
	RequireBlob     Requirement = "AZURE_STORAGE_CONNECTION_STRING"
	RequireRabbitMQ Requirement = "RABBITMQ_URL"
)

// LoadConfig загружает конфигурацию из переменных окружения.
// Каждый бинарник перечисляет обязательные для него переменные.
func LoadConfig(required ...Requirement) (*AppConfig, error) {

	if err := godotenv.Load(); err != nil {
		log.Printf("Info: Could not load .env file: %v.\n", err)
	}

	cfg := &AppConfig{}

	cfg.AppName = os.Getenv("APP_NAME")
	if cfg.AppName == "" {
		cfg.AppName = "immoscout-project" // Устанавливаем default
	}

	// Читаем DATABASE URL
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.ConnectTimeout = time.Duration(getEnvAsInt("DB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	// Читаем конфигурацию хранилища артефактов
	cfg.Blob.ConnectionString = os.Getenv("AZURE_STORAGE_CONNECTION_STRING")
	cfg.Blob.Container = getEnvAsString("BLOB_CONTAINER", constants.DefaultBlobContainer)
	cfg.Blob.DownloadRetries = getEnvAsInt("BLOB_DOWNLOAD_RETRIES", 5)
	cfg.Blob.RetryBackoff = time.Duration(getEnvAsInt("BLOB_RETRY_BACKOFF_SECONDS", 2)) * time.Second

	// Читаем конфигурацию для RabbitMQ
	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")

	for _, req := range required {
		var value string
		switch req {
		case RequireDatabase:
			value = cfg.Database.URL
		case RequireBlob:
			value = cfg.Blob.ConnectionString
		case RequireRabbitMQ:
			value = cfg.RabbitMQ.URL
		}
		if value == "" {
			return nil, fmt.Errorf("%s environment variable is required", req)
		}
	}

	// Читаем параметры обучения
	cfg.Training.Seed = int64(getEnvAsInt("TRAINING_SEED", 42))
	cfg.Training.TestRatio = getEnvAsFloat("TRAINING_TEST_RATIO", 0.2)
	cfg.Training.MinRows = getEnvAsInt("TRAINING_MIN_ROWS", 10)
	if cfg.Training.TestRatio <= 0 || cfg.Training.TestRatio >= 1 {
		return nil, fmt.Errorf("TRAINING_TEST_RATIO must be in (0, 1), got %v", cfg.Training.TestRatio)
	}

	// Читаем конфигурацию для REST
	cfg.Rest.PORT = os.Getenv("PORT")
	if cfg.Rest.PORT == "" {
		cfg.Rest.PORT = "5000"
	}

	cfg.PostalLookupPath = getEnvAsString("POSTAL_LOOKUP_PATH", "data/plz_ort.csv")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsFloat читает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueFloat, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as float: %v. Using default value: %v\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueFloat
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
