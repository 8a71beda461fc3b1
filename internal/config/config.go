package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr             string
	MongoURI         string
	MongoDatabase    string
	StoreCollection  string
	ReviewCollection string
	Timeout          time.Duration
	RequestTimeout   time.Duration
	LogLevel         string
	LogFormat        string
	JWTConfigs       []JWTConfig
	JWTAudience      string
	AllowedOrigins   []string
	FlashSecret      []byte
	FlashSecure      bool
	EditPolicy       string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RankingCacheTTL  time.Duration
	SearchRateLimit  float64
	SearchRateBurst  int
}

// LoadDotEnv loads the given env files (default ".env") without overriding variables
// that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads environment variables and returns a fully populated Config.
func Load() (Config, error) {
	var errs []error

	timeout := durationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second, &errs)
	requestTimeout := durationOrDefault("REQUEST_TIMEOUT", 5*time.Second, &errs)
	cacheTTL := durationOrDefault("RANKING_CACHE_TTL", 5*time.Minute, &errs)

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "store-directory-auth"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be configured"))
	}

	flashSecret := strings.TrimSpace(os.Getenv("FLASH_SECRET"))
	if flashSecret == "" {
		errs = append(errs, errors.New("FLASH_SECRET must be configured"))
	}

	redisDB, err := strconv.Atoi(envOrDefault("REDIS_DB", "0"))
	if err != nil {
		errs = append(errs, fmt.Errorf("REDIS_DB: %w", err))
	}
	rateLimit, err := strconv.ParseFloat(envOrDefault("SEARCH_RATE_LIMIT", "10"), 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("SEARCH_RATE_LIMIT: %w", err))
	}
	rateBurst, err := strconv.Atoi(envOrDefault("SEARCH_RATE_BURST", "20"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SEARCH_RATE_BURST: %w", err))
	}

	editPolicy := strings.ToLower(envOrDefault("EDIT_POLICY", "owner"))
	if editPolicy != "owner" && editPolicy != "any" {
		errs = append(errs, fmt.Errorf("EDIT_POLICY must be owner or any, got %q", editPolicy))
	}

	cfg := Config{
		Addr:             envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:         envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:    envOrDefault("MONGO_DB", "store-directory"),
		StoreCollection:  envOrDefault("STORE_COLLECTION", "stores"),
		ReviewCollection: envOrDefault("REVIEW_COLLECTION", "reviews"),
		Timeout:          timeout,
		RequestTimeout:   requestTimeout,
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		JWTConfigs:       jwtConfigs,
		JWTAudience:      strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AllowedOrigins:   parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		FlashSecret:      []byte(flashSecret),
		FlashSecure:      strings.EqualFold(strings.TrimSpace(os.Getenv("FLASH_COOKIE_SECURE")), "true"),
		EditPolicy:       editPolicy,
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		RankingCacheTTL:  cacheTTL,
		SearchRateLimit:  rateLimit,
		SearchRateBurst:  rateBurst,
	}
	return cfg, errors.Join(errs...)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
