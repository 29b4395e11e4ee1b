package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDriverLocal = "local"
	StorageDriverR2    = "r2"
	StorageDriverGCS   = "gcs"
)

type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins []string

	Mongo struct {
		URI          string
		DatabaseName string
	}

	Upload struct {
		Driver            string
		Dir               string
		MaxSizeMB         int
		MaxBulkFiles      int
		AllowedExtensions []string
		AllowedMimeTypes  []string
	}

	R2 struct {
		Bucket          string
		AccessKeyID     string
		SecretAccessKey string
		Endpoint        string
	}

	GCS struct {
		Bucket          string
		CredentialsFile string
	}

	Log struct {
		Level    string
		Encoding string
	}
}

// Load reads the process environment, after merging a .env file when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var cfg Config
	cfg.Port = getEnv("PORT", "8080")
	cfg.GinMode = os.Getenv("GIN_MODE")
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	cfg.Mongo.URI = os.Getenv("MONGODB_URI")
	cfg.Mongo.DatabaseName = getEnv("DATABASE_NAME", "adboard")

	cfg.Upload.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal))
	cfg.Upload.Dir = getEnv("UPLOAD_DIR", "uploads")
	cfg.Upload.MaxSizeMB = getEnvInt("MAX_UPLOAD_SIZE_MB", 5)
	cfg.Upload.MaxBulkFiles = getEnvInt("MAX_BULK_FILES", 10)
	cfg.Upload.AllowedExtensions = splitList(strings.ToLower(os.Getenv("ALLOWED_FILE_EXTENSIONS")))
	cfg.Upload.AllowedMimeTypes = splitList(strings.ToLower(os.Getenv("ALLOWED_FILE_MIME_TYPES")))

	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Endpoint = os.Getenv("R2_ENDPOINT")

	cfg.GCS.Bucket = os.Getenv("GCS_BUCKET")
	cfg.GCS.CredentialsFile = os.Getenv("CREDENTIALS_FILE_LOCATION")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Encoding = getEnv("LOG_ENCODING", "json")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGODB_URI env var")
	}
	switch c.Upload.Driver {
	case StorageDriverLocal:
	case StorageDriverR2:
		if c.R2.Bucket == "" || c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" || c.R2.Endpoint == "" {
			return fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
		}
	case StorageDriverGCS:
		if c.GCS.Bucket == "" {
			return fmt.Errorf("missing GCS_BUCKET env var")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Upload.Driver)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
