package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string
	JWTSecret    string
	JWTExpiry    time.Duration
	BcryptCost   int
	UploadDir    string
	Origin       string
	Timeout      time.Duration
}

// Load reads the environment, optionally from a .env file. The token
// signing secret has no default: a missing JWT_SECRET is a startup error,
// never a silently assumed value.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}

	cfg := Config{
		Port:         getEnv("PORT", "8000"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "lms"),
		JWTSecret:    secret,
		JWTExpiry:    24 * time.Hour,
		BcryptCost:   bcrypt.DefaultCost,
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		Origin:       getEnv("CORS_ORIGIN", "*"),
		Timeout:      10 * time.Second,
	}

	if expiry := os.Getenv("JWT_TOKEN_EXPIRY"); expiry != "" {
		d, err := time.ParseDuration(expiry)
		if err != nil {
			return Config{}, errors.New("invalid JWT_TOKEN_EXPIRY: " + expiry)
		}
		cfg.JWTExpiry = d
	}

	if salt := os.Getenv("SALT_VALUE"); salt != "" {
		cost, err := strconv.Atoi(salt)
		if err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			cfg.BcryptCost = cost
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
