// Package shutdown реализует корректное завершение процесса по SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

const (
	msgSignalReceived = "shutdown signal received"
	msgContextDone    = "parent context done, shutting down"
	msgServeReturned  = "serve returned before shutdown signal"
	msgHookFailed     = "shutdown hook failed"
	msgHooksTimedOut  = "shutdown hooks did not finish in time"
	msgHooksDone      = "shutdown hooks finished"
)

// Hook освобождает ресурс в рамках переданного контекста.
type Hook func(ctx context.Context) error

// Serve запускает serve и блокируется до сигнала SIGINT/SIGTERM, отмены ctx
// или возврата из serve, затем параллельно выполняет хуки, ограничивая их общим timeout.
// Ошибка serve, завершившегося раньше сигнала, возвращается после выполнения хуков.
func Serve(ctx context.Context, timeout time.Duration, serve func() error, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- serve()
	}()

	log := logger.Log(ctx)

	var err error
	select {
	case <-sigCtx.Done():
		if ctx.Err() != nil {
			log.Info(ctx, msgContextDone)
		} else {
			log.Info(ctx, msgSignalReceived)
		}
	case err = <-serveErr:
		log.Info(ctx, msgServeReturned, zap.Bool("failed", err != nil))
	}

	Run(context.WithoutCancel(ctx), timeout, hooks...)
	return err
}

// Run выполняет хуки параллельно и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wg sync.WaitGroup
	for i, hook := range hooks {
		wg.Add(1)
		go func(idx int, fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(ctx, msgHookFailed, zap.Int("hook", idx), zap.Error(err))
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(ctx, msgHooksDone)
	case <-hookCtx.Done():
		log.Warn(ctx, msgHooksTimedOut, zap.Duration("timeout", timeout))
	}
}
