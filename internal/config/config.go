package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/SiddigHope/sanfpl/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	DBURL                    string
	DBDisablePreparedBinary  bool
	CacheTTL                 time.Duration
	CORSAllowedOrigins       []string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	PprofEnabled             bool
	PprofAddr                string
	SwaggerEnabled           bool
	EvalWorkers              int
	FPLOffline               bool
	FPLBaseURL               string
	FPLTimeout               time.Duration
	FPLMaxRetries            int
	FPLCircuitEnabled        bool
	FPLCircuitFailureCount   int
	FPLCircuitOpenTimeout    time.Duration
	FPLCircuitHalfOpenMaxReq int
	InternalJobToken         string
	UptraceEnabled           bool
	UptraceDSN               string
	UptraceLogsEnabled       bool
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeUploadRate      time.Duration
	LogLevel                 logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	fplOffline, err := strconv.ParseBool(getEnv("FPL_OFFLINE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_OFFLINE: %w", err)
	}
	fplTimeout, err := time.ParseDuration(getEnv("FPL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_TIMEOUT: %w", err)
	}
	if fplTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_TIMEOUT must be > 0")
	}
	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}
	fplCircuitEnabled, err := strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	fplCircuitFailureCount, err := getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if fplCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	fplCircuitOpenTimeout, err := time.ParseDuration(getEnv("FPL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if fplCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	fplCircuitHalfOpenMaxReq, err := getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if fplCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	evalWorkers, err := getEnvAsInt("EVAL_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse EVAL_WORKERS: %w", err)
	}
	if evalWorkers < 1 {
		return Config{}, fmt.Errorf("EVAL_WORKERS must be >= 1")
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "sanfpl-api"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                    strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:  dbDisablePreparedBinary,
		CacheTTL:                 cacheTTL,
		CORSAllowedOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
		SwaggerEnabled:           swaggerEnabled,
		EvalWorkers:              evalWorkers,
		FPLOffline:               fplOffline,
		FPLBaseURL:               strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLTimeout:               fplTimeout,
		FPLMaxRetries:            fplMaxRetries,
		FPLCircuitEnabled:        fplCircuitEnabled,
		FPLCircuitFailureCount:   fplCircuitFailureCount,
		FPLCircuitOpenTimeout:    fplCircuitOpenTimeout,
		FPLCircuitHalfOpenMaxReq: fplCircuitHalfOpenMaxReq,
		InternalJobToken:         strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		UptraceLogsEnabled:       uptraceLogsEnabled,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
		LogLevel:                 parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
