// Package app provides the main application structure and lifecycle management.
package app

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-choirboy/internal/session"
)

// AppVersion is the version of the application, should be set during build time.
var AppVersion = "dev"

// Application represents the main application with its lifecycle.
type Application struct {
	app  *fx.App
	loop *Loop
}

// New creates a new Application with the provided modules and options.
// Constructors, including the interactive prompts, run here.
func New(modules ...fx.Option) *Application {
	a := &Application{}

	options := append(modules,
		fx.Provide(NewLoop),
		fx.Invoke(registerLifecycleHooks),
		fx.Populate(&a.loop),
	)
	a.app = fx.New(options...)

	return a
}

// Err returns the error fx hit while building the graph, if any.
func (a *Application) Err() error {
	return a.app.Err()
}

// Start starts the choir loop.
func (a *Application) Start(ctx context.Context) error {
	return a.app.Start(ctx)
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// Done is closed when the choir loop returns on its own.
func (a *Application) Done() <-chan struct{} {
	return a.loop.Done()
}

// Result returns the loop's error once Done is closed.
func (a *Application) Result() error {
	return a.loop.Err()
}

// Loop runs the session runner in the background for the lifetime of the app.
type Loop struct {
	runner *session.Runner
	logger *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// NewLoop creates a Loop around runner.
func NewLoop(runner *session.Runner, logger *zap.Logger) *Loop {
	return &Loop{
		runner: runner,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the runner. The loop's context is detached from ctx, which
// only bounds startup.
func (l *Loop) Start(_ context.Context) {
	runCtx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	if l.runner.Finite() {
		l.logger.Info("Choir loop stops after the configured cycles")
	} else {
		l.logger.Info("Choir loop runs until interrupted")
	}

	go func() {
		defer close(l.done)
		err := l.runner.Run(runCtx)

		l.mu.Lock()
		l.err = err
		l.mu.Unlock()
	}()
}

// Stop cancels the runner and waits for it to return or for ctx to expire.
func (l *Loop) Stop(ctx context.Context) error {
	if l.cancel == nil {
		return nil
	}
	l.cancel()

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		l.logger.Warn("Choir loop did not stop in time", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Done is closed once the runner has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Err returns the runner's result. It is nil until Done is closed.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// registerLifecycleHooks sets up the application lifecycle hooks.
func registerLifecycleHooks(lc fx.Lifecycle, loop *Loop, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting application", zap.String("version", AppVersion))
			loop.Start(ctx)
			logger.Info("Application started successfully")

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping application: stopping choir loop")

			if err := loop.Stop(ctx); err != nil {
				logger.Error("Failed to stop choir loop", zap.Error(err))

				return err
			}

			logger.Info("Application stopped successfully")

			return nil
		},
	})
}
