package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries every environment-backed setting the server reads.
type Config struct {
	ServerAddr  string
	StoreDriver string
	CSVPath     string
	SQLitePath  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	UploadDir  string
	CORSOrigin string
}

// Load reads the optional .env file and then the environment. Every
// setting has a default that works for a local run against the flat
// CSV file.
func Load() Config {
	// A missing .env is fine, real deployments set variables directly.
	_ = godotenv.Load()

	return Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		StoreDriver: getEnv("STORE_DRIVER", "csv"),
		CSVPath:     getEnv("CSV_PATH", "students.csv"),
		SQLitePath:  getEnv("SQLITE_PATH", "students.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "studentdb"),
		DBPort:      getEnv("DB_PORT", "5432"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
