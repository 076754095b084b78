// Package lifecycle sequences graceful shutdown. Components register a
// hook at startup; on SIGTERM/SIGINT the hooks run in reverse
// registration order under one shared deadline.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc releases one component's resources.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	once  sync.Once
	hooks []hook
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register adds a shutdown hook. Later registrations stop first.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Shutdown runs every hook once; repeated calls are no-ops.
func (m *Manager) Shutdown(ctx context.Context) error {
	var result error
	m.once.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		m.mu.Lock()
		defer m.mu.Unlock()

		for i := len(m.hooks) - 1; i >= 0; i-- {
			h := m.hooks[i]
			started := time.Now()
			if err := h.fn(ctx); err != nil {
				m.logger.Error("shutdown hook failed",
					zap.String("component", h.name),
					zap.Error(err))
				result = errors.Join(result, err)
				continue
			}
			m.logger.Info("component stopped",
				zap.String("component", h.name),
				zap.Duration("took", time.Since(started)))
		}
	})
	return result
}

// Listen invokes cancel when the process receives a termination signal.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
