package caller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/rlc/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedInvoker(factory *fakeFactory, opts InvokerOptions) (*Invoker, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return NewInvoker(factory, zap.New(core), opts), logs
}

func TestInvokerSuccess(t *testing.T) {
	client := &fakeClient{resp: domain.SetLoggerLevelResponse{Success: true}}
	factory := &fakeFactory{client: client}
	inv, logs := observedInvoker(factory, InvokerOptions{})

	resp, err := inv.Call(context.Background(), domain.SetLoggerLevelType,
		"/talker/set_logger_level", domain.SetLoggerLevelRequest{Name: "talker", Level: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.SetLoggerLevelResponse{Success: true}, resp)

	assert.Equal(t, 0, logs.Len(), "success path must not warn")
	assert.Equal(t, 1, client.closeCount(), "client must be released")
}

func TestInvokerWarnsPerUnreadyAttempt(t *testing.T) {
	client := &fakeClient{
		readyAfter: 2,
		resp:       domain.GetLoggerLevelResponse{Level: 20},
	}
	factory := &fakeFactory{client: client}
	inv, logs := observedInvoker(factory, InvokerOptions{AttemptWait: time.Millisecond})

	resp, err := inv.Call(context.Background(), domain.GetLoggerLevelType,
		"/talker/get_logger_level", domain.GetLoggerLevelRequest{Name: "talker"})
	require.NoError(t, err)
	assert.Equal(t, domain.GetLoggerLevelResponse{Level: 20}, resp)

	warnings := logs.FilterMessage("service not available").All()
	assert.Len(t, warnings, 2, "one warning per failed readiness probe")
}

func TestInvokerFastFailingProbeDoesNotSpin(t *testing.T) {
	// WaitReady returns false instantly here; the invoker must still pace
	// attempts to the attemptWait cadence and stay within the budget.
	mock := clock.NewMock()
	client := &fakeClient{readyAfter: -1}
	factory := &fakeFactory{client: client}
	inv, logs := observedInvoker(factory, InvokerOptions{
		AttemptWait: 1 * time.Second,
		MaxWait:     3 * time.Second,
		Clock:       mock,
	})

	errCh := make(chan error, 1)
	go func() {
		_, err := inv.Call(context.Background(), domain.GetLoggersType,
			"/talker/get_loggers", domain.GetLoggersRequest{Name: "talker"})
		errCh <- err
	}()

	for {
		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, ErrUnavailable)
			warnings := logs.FilterMessage("service not available").Len()
			assert.LessOrEqual(t, warnings, 4, "one warning per paced attempt, not per loop spin")
			assert.GreaterOrEqual(t, warnings, 3)
			assert.Equal(t, 1, client.closeCount())
			return
		default:
			mock.Add(50 * time.Millisecond)
		}
	}
}

func TestInvokerUnavailableBudget(t *testing.T) {
	mock := clock.NewMock()
	client := &fakeClient{readyAfter: -1}
	// Each probe consumes one virtual second, like a real 1s readiness wait.
	client.onWait = func() { mock.Add(1 * time.Second) }
	factory := &fakeFactory{client: client}
	inv, logs := observedInvoker(factory, InvokerOptions{
		AttemptWait: 1 * time.Second,
		MaxWait:     5 * time.Second,
		Clock:       mock,
	})

	_, err := inv.Call(context.Background(), domain.GetLoggersType,
		"/talker/get_loggers", domain.GetLoggersRequest{Name: "talker"})
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.Equal(t, 5, logs.FilterMessage("service not available").Len())
	assert.Equal(t, 1, client.closeCount())
	assert.Equal(t, 0, client.callCount(), "no call may be dispatched to an unreachable service")
}

func TestInvokerCallTimeout(t *testing.T) {
	client := &fakeClient{pending: true}
	factory := &fakeFactory{client: client}
	inv, logs := observedInvoker(factory, InvokerOptions{
		CallTimeout:  30 * time.Millisecond,
		PollInterval: 1 * time.Millisecond,
	})

	_, err := inv.Call(context.Background(), domain.SetLoggerLevelType,
		"/a/set_logger_level", domain.SetLoggerLevelRequest{Name: "a", Level: 20})
	assert.ErrorIs(t, err, ErrCallTimeout)

	warnings := logs.FilterMessage("service call failed").All()
	require.Len(t, warnings, 1, "exactly one warning per timed-out call")
	fields := warnings[0].ContextMap()
	assert.Equal(t, "/a/set_logger_level", fields["service"])
	assert.Contains(t, fields["request"].(string), "Name:a")
	assert.Equal(t, 1, client.closeCount())
}

func TestInvokerEmptyResponse(t *testing.T) {
	client := &fakeClient{resp: nil}
	factory := &fakeFactory{client: client}
	inv, logs := observedInvoker(factory, InvokerOptions{})

	_, err := inv.Call(context.Background(), domain.GetLoggerLevelType,
		"/talker/get_logger_level", domain.GetLoggerLevelRequest{Name: "talker"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, 1, logs.FilterMessage("service call failed").Len())
	assert.Equal(t, 1, client.closeCount())
}

func TestInvokerCallError(t *testing.T) {
	callErr := errors.New("transport exploded")
	client := &fakeClient{err: callErr}
	factory := &fakeFactory{client: client}
	inv, logs := observedInvoker(factory, InvokerOptions{})

	_, err := inv.Call(context.Background(), domain.GetLoggerLevelType,
		"/talker/get_logger_level", domain.GetLoggerLevelRequest{Name: "talker"})
	assert.ErrorIs(t, err, callErr)
	assert.Equal(t, 1, logs.FilterMessage("service call failed").Len())
	assert.Equal(t, 1, client.closeCount())
}

func TestInvokerFactoryError(t *testing.T) {
	factory := &fakeFactory{err: errors.New("unknown service type")}
	inv, logs := observedInvoker(factory, InvokerOptions{})

	_, err := inv.Call(context.Background(), "no_such/Type", "/x/y", struct{}{})
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("service call failed").Len())
}

func TestInvokerContextCancelDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{readyAfter: -1}
	client.onWait = cancel
	factory := &fakeFactory{client: client}
	inv, _ := observedInvoker(factory, InvokerOptions{MaxWait: -1})

	_, err := inv.Call(ctx, domain.GetLoggersType, "/talker/get_loggers",
		domain.GetLoggersRequest{Name: "talker"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.closeCount())
}
