package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gonotes/internal/client/cli"
	"gonotes/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

const defaultLogLevel = "error"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	level := os.Getenv(EnvLoggerLevel)
	if level == "" {
		level = defaultLogLevel
	}

	log, err := logger.NewLogger(env, level)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.NewApp(cli.Options{}).RunContext(ctx, os.Args)
	stop()
	_ = log.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
