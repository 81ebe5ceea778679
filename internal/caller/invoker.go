package caller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/vburojevic/rlc/internal/ros"
	"go.uber.org/zap"
)

// Invoker failure reasons. All of them surface as return values; nothing is
// fatal to the caller.
var (
	ErrUnavailable   = errors.New("service unavailable")
	ErrCallTimeout   = errors.New("service call timed out")
	ErrEmptyResponse = errors.New("empty service response")
)

// InvokerOptions tune the invoker's wait behavior. Zero values fall back to
// the defaults below.
type InvokerOptions struct {
	// AttemptWait bounds a single service-readiness probe.
	AttemptWait time.Duration
	// MaxWait bounds the total time spent waiting for the service to
	// become reachable. Zero uses the default; a negative value waits
	// indefinitely, which can hang the caller.
	MaxWait time.Duration
	// CallTimeout bounds the wait for an in-flight call to complete. The
	// wait is abandoned on expiry, not the underlying call.
	CallTimeout time.Duration
	// PollInterval is the completion-check cadence.
	PollInterval time.Duration
	// Clock substitutes a fake clock in tests.
	Clock clock.Clock
}

const (
	defaultAttemptWait  = 1 * time.Second
	defaultMaxWait      = 30 * time.Second
	defaultCallTimeout  = 2 * time.Second
	defaultPollInterval = 10 * time.Millisecond
)

// Invoker issues single request/response service calls with bounded waits.
// Every outcome is a plain response/error pair; failures additionally emit
// one diagnostic warning on the logger.
type Invoker struct {
	factory      ros.ClientFactory
	logger       *zap.Logger
	clock        clock.Clock
	attemptWait  time.Duration
	maxWait      time.Duration
	callTimeout  time.Duration
	pollInterval time.Duration
}

// NewInvoker creates an invoker over the given client factory. A nil logger
// discards diagnostics.
func NewInvoker(factory ros.ClientFactory, logger *zap.Logger, opts InvokerOptions) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	iv := &Invoker{
		factory:      factory,
		logger:       logger,
		clock:        opts.Clock,
		attemptWait:  opts.AttemptWait,
		maxWait:      opts.MaxWait,
		callTimeout:  opts.CallTimeout,
		pollInterval: opts.PollInterval,
	}
	if iv.clock == nil {
		iv.clock = clock.New()
	}
	if iv.attemptWait <= 0 {
		iv.attemptWait = defaultAttemptWait
	}
	if iv.callTimeout <= 0 {
		iv.callTimeout = defaultCallTimeout
	}
	if iv.pollInterval <= 0 {
		iv.pollInterval = defaultPollInterval
	}
	if iv.maxWait == 0 {
		iv.maxWait = defaultMaxWait
	}
	return iv
}

// Call issues one request against the named service and waits for the
// response. The client is released on every exit path.
func (iv *Invoker) Call(ctx context.Context, serviceType, servicePath string, req any) (any, error) {
	callID := uuid.NewString()

	client, err := iv.factory.NewClient(serviceType, servicePath)
	if err != nil {
		iv.warnFailure(servicePath, callID, req, err)
		return nil, fmt.Errorf("creating client for %s: %w", servicePath, err)
	}
	defer client.Close()

	if err := iv.waitAvailable(ctx, client, serviceType, servicePath, callID); err != nil {
		return nil, err
	}

	fut := client.Call(req)
	start := iv.clock.Now()
	for !fut.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if iv.clock.Since(start) >= iv.callTimeout {
			iv.warnFailure(servicePath, callID, req, ErrCallTimeout)
			return nil, fmt.Errorf("%w: %s", ErrCallTimeout, servicePath)
		}
		iv.clock.Sleep(iv.pollInterval)
	}

	resp, err := fut.Result()
	if err != nil {
		iv.warnFailure(servicePath, callID, req, err)
		return nil, err
	}
	if resp == nil {
		iv.warnFailure(servicePath, callID, req, ErrEmptyResponse)
		return nil, fmt.Errorf("%w: %s", ErrEmptyResponse, servicePath)
	}
	return resp, nil
}

// waitAvailable polls service readiness, warning once per failed attempt,
// until the service answers, the context is cancelled, or the MaxWait budget
// is spent.
func (iv *Invoker) waitAvailable(ctx context.Context, client ros.Client, serviceType, servicePath, callID string) error {
	start := iv.clock.Now()
	for attempt := 1; ; attempt++ {
		attemptStart := iv.clock.Now()
		if client.WaitReady(ctx, iv.attemptWait) {
			return nil
		}
		iv.logger.Warn("service not available",
			zap.String("service", servicePath),
			zap.String("service_type", serviceType),
			zap.Int("attempt", attempt),
			zap.String("call_id", callID))
		if err := ctx.Err(); err != nil {
			return err
		}
		if iv.maxWait > 0 && iv.clock.Since(start) >= iv.maxWait {
			return fmt.Errorf("%w: %s", ErrUnavailable, servicePath)
		}
		// A probe that fails faster than attemptWait must not turn the
		// loop into a hot spin; pace the next attempt to the full budget.
		if rem := iv.attemptWait - iv.clock.Since(attemptStart); rem > 0 {
			iv.clock.Sleep(rem)
		}
	}
}

func (iv *Invoker) warnFailure(servicePath, callID string, req any, reason error) {
	iv.logger.Warn("service call failed",
		zap.String("service", servicePath),
		zap.String("call_id", callID),
		zap.String("request", fmt.Sprintf("%+v", req)),
		zap.Error(reason))
}
