package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/version"
)

// App runs a finite task with the restkit lifecycle. The type parameter C is
// the config type.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onStop  []Hook
}

// NewApp creates an application from a typed config. It applies defaults,
// validates the config and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	app := &App[C]{
		Name:            base.Name,
		Version:         version.Version,
		Cfg:             cfg,
		gracefulTimeout: 5 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.signalsSet {
		app.signals = o.signals
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	app.Logger = app.Logger.WithComponent("bootstrap")
	return app, nil
}

// RunTask runs start hooks, then task under a context cancelled by the
// configured signals, then stop hooks. The task error wins over a stop error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	start := time.Now()
	a.Logger.Debug("starting", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := runHooks(ctx, a.onStart); err != nil {
		a.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if len(a.signals) > 0 {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, a.signals...)
		defer signal.Stop(sigCh)

		go func() {
			select {
			case sig := <-sigCh:
				a.Logger.Info("received signal, cancelling task", map[string]interface{}{
					"signal": sig.String(),
				})
				cancel()
			case <-taskCtx.Done():
			}
		}()
	}

	taskErr := task(taskCtx)
	if errors.Is(taskErr, context.Canceled) {
		a.Logger.Warn("task cancelled")
	}

	stopErr := a.stop()
	a.Logger.Debug("finished", logger.MergeWithDuration(nil, time.Since(start)))
	if taskErr != nil {
		return taskErr
	}
	return stopErr
}

// stop runs the stop hooks within the graceful timeout. Every hook runs; the
// first error is returned.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var first error
	for i, h := range a.onStop {
		if err := h(ctx); err != nil {
			a.Logger.Error("stop hook failed", logger.MergeWithError(map[string]interface{}{"hook": i}, err))
			if first == nil {
				first = fmt.Errorf("onStop hook %d failed: %w", i, err)
			}
		}
	}
	return first
}
