package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=fd_account_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChannelID = "CredexaOps"
const defaultChannelKey = "CredexaOpsKey001"
const defaultBranchCode = "001"
const defaultBankCode = "CRDX"
const defaultCountryCode = "IN"

type Config struct {
	DatabaseDSN       string
	MigrationsDir     string
	HTTPAddr          string
	ChannelID         string
	ChannelKey        string
	DefaultBranchCode string
	BankCode          string
	CountryCode       string
	GeneratorStrategy string
	SequenceStart     int64
	BatchDate         *time.Time
	BatchHourUTC      int
	BatchWorkers      int
	// CustomerServiceURL empty means the built-in customer directory
	// is used instead of the upstream service.
	CustomerServiceURL string
}

func Load() (Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := Config{
		DatabaseDSN:        envOrDefault("DATABASE_DSN", defaultConnectionString),
		MigrationsDir:      filepath.Join("src", "migrations"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		ChannelID:          envOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey:         envOrDefault("CHANNEL_KEY", defaultChannelKey),
		DefaultBranchCode:  envOrDefault("DEFAULT_BRANCH_CODE", defaultBranchCode),
		BankCode:           envOrDefault("BANK_CODE", defaultBankCode),
		CountryCode:        envOrDefault("COUNTRY_CODE", defaultCountryCode),
		GeneratorStrategy:  strings.ToLower(envOrDefault("GENERATOR_STRATEGY", "standard")),
		CustomerServiceURL: strings.TrimSpace(os.Getenv("CUSTOMER_SERVICE_URL")),
	}

	cfg.DatabaseDSN = normalizeConnectionString(cfg.DatabaseDSN)

	if cfg.GeneratorStrategy != "standard" && cfg.GeneratorStrategy != "iban" {
		return Config{}, fmt.Errorf("GENERATOR_STRATEGY must be standard or iban, got %q", cfg.GeneratorStrategy)
	}

	seqStart, err := envInt64("SEQUENCE_START", 100000)
	if err != nil {
		return Config{}, err
	}
	cfg.SequenceStart = seqStart

	batchHour, err := envInt("BATCH_HOUR_UTC", 1)
	if err != nil {
		return Config{}, err
	}
	if batchHour < 0 || batchHour > 23 {
		return Config{}, fmt.Errorf("BATCH_HOUR_UTC must be between 0 and 23, got %d", batchHour)
	}
	cfg.BatchHourUTC = batchHour

	workers, err := envInt("BATCH_WORKERS", 4)
	if err != nil {
		return Config{}, err
	}
	if workers < 1 {
		workers = 1
	}
	cfg.BatchWorkers = workers

	// BATCH_DATE pins the batch clock for deterministic runs.
	if raw := strings.TrimSpace(os.Getenv("BATCH_DATE")); raw != "" {
		pinned, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Config{}, fmt.Errorf("BATCH_DATE must be in YYYY-MM-DD format: %w", err)
		}
		cfg.BatchDate = &pinned
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
