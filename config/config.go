package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultServerPort       = 8080
	defaultMinWinningRounds = 13
	defaultAuditSchedule    = "@every 10m"
)

// R2Config хранит доступ к бакету архива результатов.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled is true only when every field is set.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		c.BucketName != "" && c.PublicBaseURL != ""
}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string // пусто -> in-memory хранилище
	JWTSecretKey       string
	ServerPort         int
	MinWinningRounds   int
	EnforceMatchQuota  bool
	AuditSchedule      string
	CORSAllowedOrigins []string
	GroupShuffleSeed   *int64
	R2                 R2Config
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", defaultServerPort)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	minRounds, err := intEnv("MIN_WINNING_ROUNDS", defaultMinWinningRounds)
	if err != nil {
		return nil, err
	}
	if minRounds < 1 {
		return nil, fmt.Errorf("MIN_WINNING_ROUNDS must be positive, got %d", minRounds)
	}

	enforceQuota := true
	if v := os.Getenv("ENFORCE_MATCH_QUOTA"); v != "" {
		enforceQuota, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ENFORCE_MATCH_QUOTA environment variable: %w", err)
		}
	}

	schedule := os.Getenv("AUDIT_SCHEDULE")
	if schedule == "" {
		schedule = defaultAuditSchedule
	}

	var seed *int64
	if v := os.Getenv("GROUP_SHUFFLE_SEED"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid GROUP_SHUFFLE_SEED environment variable: %w", err)
		}
		seed = &parsed
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecretKey:       jwtKey,
		ServerPort:         port,
		MinWinningRounds:   minRounds,
		EnforceMatchQuota:  enforceQuota,
		AuditSchedule:      schedule,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		GroupShuffleSeed:   seed,
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
