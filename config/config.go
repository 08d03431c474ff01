package config

import (
	"os"
	"strconv"
	"time"
)

var (
	JWTSecret     []byte
	JWTExpiration time.Duration

	// UploadRoot is the directory the uploads/ tree lives under; it is also
	// what gets served statically.
	UploadRoot     string
	MaxUploadBytes int64

	// BootstrapAdminEmail, when set, auto-promotes that one registration to
	// admin. Empty disables the rule.
	BootstrapAdminEmail string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
)

func init() {
	Load()
}

// Load reads settings from the environment. main calls it again after
// godotenv so .env values are picked up.
func Load() {
	secret := getEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	JWTSecret = []byte(secret)
	JWTExpiration = 24 * time.Hour

	UploadRoot = getEnv("UPLOAD_ROOT", "static")
	MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_MB", 50)) << 20

	BootstrapAdminEmail = os.Getenv("BOOTSTRAP_ADMIN_EMAIL")

	RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	RedisDB = getEnvInt("REDIS_DB", 0)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
