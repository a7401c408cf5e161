package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/config"
	"github.com/Additional-Code/orders/internal/messaging"
)

const maxBackoff = 30 * time.Second

// HandlerRegistration binds message topics to handlers.
type HandlerRegistration struct {
	Topic   string
	Handler messaging.Handler
}

// Params collects dependencies via Fx.
type Params struct {
	fx.In

	Client        messaging.Client
	Logger        *zap.Logger
	Config        config.Config
	Registrations []HandlerRegistration `group:"worker.handlers"`
}

// Engine runs concurrent consume loops and dispatches messages by topic.
type Engine struct {
	client        messaging.Client
	logger        *zap.Logger
	enabled       bool
	concurrency   int
	registrations map[string]messaging.Handler
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// NewEngine constructs the worker Engine.
func NewEngine(p Params) *Engine {
	reg := make(map[string]messaging.Handler, len(p.Registrations))
	for _, r := range p.Registrations {
		if r.Topic == "" || r.Handler == nil {
			continue
		}
		reg[r.Topic] = r.Handler
	}

	return &Engine{
		client:        p.Client,
		logger:        p.Logger,
		enabled:       p.Config.Messaging.Enabled && p.Config.Messaging.Workers.Enabled,
		concurrency:   max(p.Config.Messaging.Workers.Concurrency, 1),
		registrations: reg,
	}
}

// Module wires the engine into Fx lifecycle.
var Module = fx.Options(
	fx.Provide(NewEngine),
	fx.Invoke(func(lc fx.Lifecycle, engine *Engine) {
		lc.Append(fx.Hook{
			OnStart: engine.Start,
			OnStop:  engine.Stop,
		})
	}),
)

// Start launches the consume loops. It returns immediately.
func (e *Engine) Start(context.Context) error {
	if !e.enabled {
		e.logger.Info("worker engine disabled")
		return nil
	}
	if len(e.registrations) == 0 {
		e.logger.Info("worker engine has no handlers; skipping")
		return nil
	}

	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	for i := 0; i < e.concurrency; i++ {
		workerID := i
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.consumeLoop(runCtx, workerID)
		}()
	}

	e.logger.Info("worker engine started", zap.Int("workers", e.concurrency), zap.String("topic", e.client.Topic()))
	return nil
}

// Stop cancels the loops and waits for them or for ctx to end.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel == nil {
		return nil
	}
	e.cancel()
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		e.logger.Info("worker engine stopped")
		return nil
	}
}

func (e *Engine) dispatch(workerID int) messaging.Handler {
	return func(ctx context.Context, msg messaging.Message) error {
		handler, ok := e.registrations[msg.Topic]
		if !ok {
			e.logger.Warn("no handler for topic", zap.String("topic", msg.Topic))
			return nil
		}
		e.logger.Debug("processing message", zap.String("topic", msg.Topic), zap.Int("worker", workerID))
		return handler(ctx, msg)
	}
}

func (e *Engine) consumeLoop(ctx context.Context, workerID int) {
	backoff := time.Second
	for ctx.Err() == nil {
		err := e.client.Consume(ctx, e.dispatch(workerID))
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}

		e.logger.Error("consume loop error", zap.Int("worker", workerID), zap.Error(err))

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
		backoff = min(backoff*2, maxBackoff)
	}
}
