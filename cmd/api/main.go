package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authPostgres "gonotes/internal/auth/adapters/postgres"
	authServices "gonotes/internal/auth/adapters/services"
	authApp "gonotes/internal/auth/app"
	"gonotes/internal/config"
	"gonotes/internal/db"
	httpServer "gonotes/internal/gateway/adapters/http"
	noteCache "gonotes/internal/notes/adapters/cache"
	notePostgres "gonotes/internal/notes/adapters/postgres"
	notesApp "gonotes/internal/notes/app"
	cachePorts "gonotes/internal/notes/ports/cache"
	"gonotes/pkg/db/redis"
	"gonotes/pkg/logger"
	"gonotes/pkg/retry"
	"gonotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notes api started"
	LogServiceShutdownDone = "notes api shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "list cache disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
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
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		listCache, redisClient, err := newListCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		authRepos := authPostgres.NewRepositoryFactory(database.Pool())
		authSvcs := authServices.NewServiceFactory(cfg.JWT.Secret, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)
		noteRepos := notePostgres.NewRepositoryFactory(database.Pool())

		deps := httpServer.Dependencies{
			AuthUseCase: authApp.NewAuthUseCase(
				authRepos.UserRepository(),
				authSvcs.PasswordService(),
				authSvcs.TokenService(),
			),
			UserUseCase:  authApp.NewUserUseCase(authRepos.UserRepository()),
			NoteUseCase:  notesApp.NewNoteUseCase(noteRepos.NoteRepository(), notesApp.WithCache(listCache)),
			TokenService: authSvcs.TokenService(),
			CORSOrigins:  cfg.HTTP.CORSOrigins,
		}

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, deps)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		err = shutdown.Serve(ctx, cfg.Shutdown.GetTimeout(),
			func() error {
				return app.Listen(cfg.HTTP.GetAddress())
			},
			// Сначала HTTP сервер, затем хранилища.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := app.Shutdown(); err != nil {
					return fmt.Errorf("shutting down HTTP server: %w", err)
				}
				database.Close(ctx)
				if redisClient != nil {
					return redisClient.Close(ctx)
				}
				return nil
			},
		)
		if err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newListCache возвращает кэш списков заметок. При выключенном Redis клиент равен nil.
func newListCache(ctx context.Context, cfg *config.RedisConfig) (cachePorts.NoteListCache, *redis.Client, error) {
	if !cfg.Enabled {
		logger.Log(ctx).Info(ctx, LogCacheDisabled)
		return noteCache.NewNoopNoteCache(), nil, nil
	}

	var client *redis.Client
	err := retry.New("redis", retry.DefaultConfig()).Execute(ctx, func(ctx context.Context) error {
		c, err := redis.NewClient(ctx, cfg.ClientConfig())
		if err != nil {
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrCreateRedisClient, err)
	}

	return noteCache.NewRedisNoteCache(client.Raw(), cfg.ListTTL), client, nil
}
