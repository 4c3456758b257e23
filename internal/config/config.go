package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Secrets (from .env)
	GoldAPIKey   string
	GeminiAPIKey string
	WebhookURL   string
	BotName      string

	// HTTP
	Port            int
	CORSAllowOrigin string

	// Database
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Price data
	BackupDataFile string
	GoldAPIBaseURL string

	// LLM
	GeminiModel   string
	GeminiBaseURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Secrets
		GoldAPIKey:   envStr("GOLD_API_KEY", ""),
		GeminiAPIKey: envStr("GEMINI_API_KEY", ""),
		WebhookURL:   envStr("WEBHOOK_URL", ""),
		BotName:      envStr("BOT_NAME", "KuberAI"),

		// HTTP
		Port:            envInt("PORT", 8000),
		CORSAllowOrigin: envStr("CORS_ALLOW_ORIGIN", "*"),

		// Database
		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envInt("DB_PORT", 5432),
		DBName:     envStr("DB_NAME", "kuberai"),
		DBUser:     envStr("DB_USER", ""),
		DBPassword: envStr("DB_PASSWORD", ""),

		// Price data
		BackupDataFile: envStr("BACKUP_DATA_FILE", "gold_data_backup.json"),
		GoldAPIBaseURL: envStr("GOLD_API_BASE_URL", "https://www.goldapi.io/api"),

		// LLM
		GeminiModel:   envStr("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: envStr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.DBUser == "" {
		errs = append(errs, "DB_USER is required")
	}
	if c.GoldAPIKey == "" {
		fmt.Println("[WARN] GOLD_API_KEY not set — live gold prices disabled, backup snapshot only")
	}
	if c.GeminiAPIKey == "" {
		fmt.Println("[WARN] GEMINI_API_KEY not set — answers fall back to keyword classification and canned text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (c *Config) Print() {
	fmt.Println("=== KuberAI Backend Configuration ===")
	fmt.Printf("HTTP Port: %d\n", c.Port)
	fmt.Printf("Database: %s:%d/%s\n", c.DBHost, c.DBPort, c.DBName)
	fmt.Println("--------------------------------------")
	fmt.Printf("Gold API: %s\n", boolLabel(c.GoldAPIKey != "", "configured", "not set (backup snapshot only)"))
	fmt.Printf("Gemini: %s\n", boolLabel(c.GeminiAPIKey != "", "configured ("+c.GeminiModel+")", "not set (keyword fallback)"))
	fmt.Printf("Backup snapshot: %s\n", c.BackupDataFile)
	fmt.Printf("Purchase webhook: %s\n", boolLabel(c.WebhookURL != "", "configured", "not set"))
	fmt.Println("======================================")
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func boolLabel(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
