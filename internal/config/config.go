package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI       string
	MongoDatabase  string
	RedisURI       string // optional; empty means the in-process blacklist is used
	JWTSecret      string
	Port           string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	Environment    string   // ENV: production, development, etc.
	DebugErrors    bool     // allow stack traces / request bodies in 500 payloads

	// Daily phrases returned by /api/Phrases, one per day of month (wrapping).
	Phrases []string

	// AWS Secrets Manager: when all three are set, the Mongo connection URI is
	// resolved from the secret instead of MONGODB_URI.
	AWSRegion      string
	AWSAccessKeyID string
	AWSSecretKey   string
	MongoSecretID  string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := splitAndTrim(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:3000")}
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/tarefista")),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "tarefista"),
		RedisURI:       getEnv("REDIS_URI", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins,
		Environment:    env,
		DebugErrors:    getEnv("DEBUG_ERRORS", "") == "true",
		Phrases:        splitAndTrim(getEnv("PHRASES", "")),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MongoSecretID:  getEnv("MONGO_SECRET_ID", ""),
	}
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// IsDevelopment returns true for any non-production environment.
func (c *Config) IsDevelopment() bool {
	return !c.IsProduction()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
