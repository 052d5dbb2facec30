package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		RidersPresenceCheckInterval time.Duration
		RiderPresenceTTL            time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // пополнение ведра, токенов в секунду
		RateLimiterBurst int           // ёмкость ведра на один ключ
		PprofEnabled     bool
		PprofPort        string
	}

	Auth struct {
		JWTSecret string
	}

	Logger struct {
		Level string
	}

	Database struct {
		Host              string
		Port              string
		User              string
		Password          string
		DBName            string
		SSLMode           string
		MaxConns          int32
		MigrationsEnabled bool
	}

	// Redis пустой Addr означает хранение статусов в памяти процесса.
	Redis struct {
		Addr      string
		Password  string
		DB        int
		StatusTTL time.Duration
	}

	PaymentService struct {
		GRPCHost string
	}

	Dispatch struct {
		Workers       int
		QueueSize     int
		SubmitTimeout time.Duration
	}

	Kafka struct {
		PortHealthcheck    string
		Brokers            string
		Topic              string
		NotificationsTopic string
		ConsumerGroup      string
		Sarama             Sarama
		Handlers           KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		RiderStatusChanged RiderStatusChanged
	}

	RiderStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks          Tasks
		Server         HTTPServer
		Auth           Auth
		Logger         Logger
		Database       Database
		Redis          Redis
		PaymentService PaymentService
		Dispatch       Dispatch
		Kafka          Kafka
	}
)

const (
	defaultLogLevel          = "info"
	defaultDispatchWorkers   = 4
	defaultDispatchQueueSize = 1024
	defaultDispatchTimeout   = 5 * time.Second
	defaultStatusTTL         = 24 * time.Hour
	defaultDBMaxConns        = 10
	minJWTSecretLength       = 16
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	presenceInterval, err := osGetEnvDuration("BACKGROUND_RIDERS_PRESENCE_CHECK_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	presenceTTL, err := osGetEnvDuration("RIDER_PRESENCE_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	riderStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_RIDER_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrationsEnabled, err := osGetBool("MIGRATIONS_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMaxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	statusTTL, err := osGetEnvDuration("DISPATCH_STATUS_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatchWorkers, err := osGetInt("DISPATCH_WORKERS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatchQueueSize, err := osGetInt("DISPATCH_QUEUE_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatchTimeout, err := osGetEnvDuration("DISPATCH_SUBMIT_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			RidersPresenceCheckInterval: presenceInterval,
			RiderPresenceTTL:            presenceTTL,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Auth: Auth{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Logger: Logger{
			Level: osGetStringOr("LOG_LEVEL", defaultLogLevel),
		},
		Database: Database{
			Host:              os.Getenv("POSTGRES_HOST"),
			Port:              os.Getenv("POSTGRES_PORT"),
			User:              os.Getenv("POSTGRES_USER"),
			Password:          os.Getenv("POSTGRES_PASSWORD"),
			DBName:            os.Getenv("POSTGRES_DB"),
			SSLMode:           os.Getenv("POSTGRES_SSLMODE"),
			MaxConns:          int32(intOr(dbMaxConns, defaultDBMaxConns)), //nolint:gosec // проверяется в validateConfig
			MigrationsEnabled: migrationsEnabled,
		},
		Redis: Redis{
			Addr:      os.Getenv("REDIS_ADDR"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			StatusTTL: durationOr(statusTTL, defaultStatusTTL),
		},
		PaymentService: PaymentService{
			GRPCHost: os.Getenv("PAYMENT_SERVICE_GRPC_HOST"),
		},
		Dispatch: Dispatch{
			Workers:       intOr(dispatchWorkers, defaultDispatchWorkers),
			QueueSize:     intOr(dispatchQueueSize, defaultDispatchQueueSize),
			SubmitTimeout: durationOr(dispatchTimeout, defaultDispatchTimeout),
		},
		Kafka: Kafka{
			Brokers:            os.Getenv("KAFKA_BROKERS"),
			Topic:              os.Getenv("KAFKA_TOPIC"),
			NotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),
			ConsumerGroup:      os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck:    os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				RiderStatusChanged: RiderStatusChanged{
					ProcessTimeout: riderStatusChangedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if len(cfg.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET is required and must be at least %d bytes", minJWTSecretLength)
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.Database.MaxConns < 2 {
		return errors.New("POSTGRES_MAX_CONNS must be at least 2")
	}

	if cfg.Tasks.RidersPresenceCheckInterval == time.Duration(0) {
		return errors.New("BACKGROUND_RIDERS_PRESENCE_CHECK_INTERVAL is required")
	}
	if cfg.Tasks.RiderPresenceTTL == time.Duration(0) {
		return errors.New("RIDER_PRESENCE_TTL is required")
	}

	if cfg.PaymentService.GRPCHost == "" {
		return errors.New("PAYMENT_SERVICE_GRPC_HOST is required")
	}

	if cfg.Dispatch.Workers < 0 || cfg.Dispatch.QueueSize < 0 {
		return errors.New("DISPATCH_WORKERS and DISPATCH_QUEUE_SIZE must not be negative")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.NotificationsTopic == "" {
		return errors.New("KAFKA_NOTIFICATIONS_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.RiderStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_RIDER_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetStringOr(s, fallback string) string {
	val := os.Getenv(s)
	if val == "" {
		return fallback
	}
	return val
}

func intOr(val, fallback int) int {
	if val == 0 {
		return fallback
	}
	return val
}

func durationOr(val, fallback time.Duration) time.Duration {
	if val == 0 {
		return fallback
	}
	return val
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
