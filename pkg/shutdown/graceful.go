// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gotodo/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogSignalReceived = "shutdown signal received"
	LogHooksFinished  = "shutdown hooks finished"
	LogHookFailed     = "shutdown hook failed"
	LogHooksTimedOut  = "shutdown hooks timed out"
)

// ErrTimeout возвращается, если хуки не уложились в отведенное время.
var ErrTimeout = errors.New("shutdown timed out")

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем параллельно выполняет хуки в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	logger.Log(ctx).Info(ctx, LogSignalReceived)

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки параллельно и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) error {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var group errgroup.Group
	for i, hook := range hooks {
		group.Go(func() error {
			if err := hook(hookCtx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Int("hook", i), zap.Error(err))
				return fmt.Errorf("hook %d: %w", i, err)
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- group.Wait()
	}()

	select {
	case err := <-done:
		log.Info(ctx, LogHooksFinished)
		return err
	case <-hookCtx.Done():
		log.Warn(ctx, LogHooksTimedOut, zap.Duration("timeout", timeout))
		return ErrTimeout
	}
}
