package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	accountPostgres "gotodo/internal/account/adapters/postgres"
	accountRedis "gotodo/internal/account/adapters/redis"
	accountServices "gotodo/internal/account/adapters/services"
	accountApp "gotodo/internal/account/app"
	"gotodo/internal/config"
	"gotodo/internal/db"
	gatewayhttp "gotodo/internal/gateway/adapters/http"
	"gotodo/internal/gateway/adapters/http/health"
	todoPostgres "gotodo/internal/todos/adapters/postgres"
	todoApp "gotodo/internal/todos/app"
	"gotodo/pkg/db/redis"
	"gotodo/pkg/logger"
	"gotodo/pkg/shutdown"
	"gotodo/pkg/telemetry"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TODO_LOGGER_MODE"
	EnvLoggerLevel = "TODO_LOGGER_LEVEL"
	EnvConfigPath  = "TODO_CONFIG_PATH"

	defaultConfigPath = "deploy/.env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitTelemetry        = "failed to initialize telemetry"
	ErrCreateMetrics        = "failed to create metrics"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrCreateServices       = "failed to create account services"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "graceful shutdown failed"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "todo service started"
	LogServiceShutdownDone = "todo service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitRedis           = "initializing session store"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
	LogFlushingTelemetry   = "flushing telemetry"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := logger.Log(ctx).Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		exitCode = run(ctx, log)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// run собирает зависимости, запускает HTTP сервер и ждет сигнала завершения.
func run(ctx context.Context, log *logger.Logger) int {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return 1
	}
	logger.SetGlobalLogger(finalLogger)

	finalLogger.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	providers, err := telemetry.Init(ctx, telemetry.Settings{
		ServiceName:    config.ServiceName,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		ExportInterval: cfg.Telemetry.ExportInterval,
	})
	if err != nil {
		finalLogger.Error(ctx, ErrInitTelemetry, zap.Error(err))
		return 1
	}

	metrics, err := telemetry.NewMetrics(otel.Meter(config.ServiceName))
	if err != nil {
		finalLogger.Error(ctx, ErrCreateMetrics, zap.Error(err))
		return 1
	}

	finalLogger.Info(ctx, LogInitDatabase)
	database, err := db.New(ctx, &cfg.Postgres)
	if err != nil {
		finalLogger.Error(ctx, ErrInitDatabase, zap.Error(err))
		return 1
	}

	finalLogger.Info(ctx, LogInitRedis)
	redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig(), cfg.Redis.GetRetryConfig())
	if err != nil {
		finalLogger.Error(ctx, ErrCreateRedisClient, zap.Error(err))
		database.Close(ctx)
		return 1
	}

	finalLogger.Info(ctx, LogInitServices)
	serviceFactory, err := accountServices.NewServiceFactory(accountServices.FactoryConfig{
		SecretKey:      cfg.Auth.SecretKey,
		TokenTTL:       cfg.Auth.TokenTTL,
		PasswordHasher: cfg.Auth.PasswordHasher,
		BcryptCost:     cfg.Auth.BCryptCost,
		Argon2: accountServices.Argon2Params{
			Time:    cfg.Auth.Argon2Time,
			Memory:  cfg.Auth.Argon2MemoryKB,
			Threads: cfg.Auth.Argon2Threads,
		},
	})
	if err != nil {
		finalLogger.Error(ctx, ErrCreateServices, zap.Error(err))
		database.Close(ctx)
		_ = redisClient.Close(ctx)
		return 1
	}

	repoFactory := accountPostgres.NewRepositoryFactory(database.Pool())
	accounts := accountApp.NewAccountUseCase(
		repoFactory.UserRepository(),
		accountRedis.NewSessionRepository(redisClient.RawClient(), cfg.Redis.KeyPrefix),
		serviceFactory.PasswordService(),
		serviceFactory.TokenService(),
	)
	todos := todoApp.NewTodoUseCase(todoPostgres.NewTodoRepository(database.Pool()))

	finalLogger.Info(ctx, LogInitHTTPServer)
	app := gatewayhttp.NewApp(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})

	gatewayhttp.SetupRouter(app, gatewayhttp.Dependencies{
		Accounts:      accounts,
		Authenticator: accounts,
		Todos:         todos,
		HealthChecks: []health.Check{
			{Name: "postgres", Pinger: database},
			{Name: "redis", Pinger: redisClient},
		},
		Metrics: metrics,
	})

	finalLogger.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := app.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			finalLogger.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		}
	}()

	err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
		// Остановка HTTP сервера.
		func(ctx context.Context) error {
			finalLogger.Info(ctx, LogStoppingHTTP)
			return app.ShutdownWithContext(ctx)
		},
		// Закрытие Redis соединения.
		func(ctx context.Context) error {
			finalLogger.Info(ctx, LogClosingRedis)
			return redisClient.Close(ctx)
		},
		// Закрытие пула базы данных.
		func(ctx context.Context) error {
			finalLogger.Info(ctx, LogClosingDatabase)
			database.Close(ctx)
			return nil
		},
		// Сброс буферов телеметрии.
		func(ctx context.Context) error {
			finalLogger.Info(ctx, LogFlushingTelemetry)
			return providers.Shutdown(ctx)
		},
	)
	if err != nil {
		finalLogger.Error(ctx, ErrShutdown, zap.Error(err))
		return 1
	}

	finalLogger.Info(ctx, LogServiceShutdownDone)
	return 0
}
