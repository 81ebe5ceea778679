package caller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vburojevic/rlc/internal/domain"
	"github.com/vburojevic/rlc/internal/ros"
)

// fakeGraph serves a fixed registry snapshot.
type fakeGraph struct {
	nodes    []string
	services []domain.ServiceInfo
	nodesErr error
	svcErr   error
}

func (g *fakeGraph) NodeNames(ctx context.Context) ([]string, error) {
	if g.nodesErr != nil {
		return nil, g.nodesErr
	}
	return append([]string(nil), g.nodes...), nil
}

func (g *fakeGraph) ServiceNamesAndTypes(ctx context.Context) ([]domain.ServiceInfo, error) {
	if g.svcErr != nil {
		return nil, g.svcErr
	}
	return append([]domain.ServiceInfo(nil), g.services...), nil
}

// setService builds the advertisement for a node's set_logger_level.
func setService(node string) domain.ServiceInfo {
	return domain.ServiceInfo{
		Name:  "/" + node + domain.SetLoggerLevelSuffix,
		Types: []string{domain.SetLoggerLevelType},
	}
}

// fakeFactory hands out fakeClients and records every construction.
type fakeFactory struct {
	mu      sync.Mutex
	client  *fakeClient
	byType  map[string]*fakeClient
	err     error
	created int
}

func (f *fakeFactory) NewClient(serviceType, servicePath string) (ros.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	if f.err != nil {
		return nil, f.err
	}
	client := f.client
	if c, ok := f.byType[serviceType]; ok {
		client = c
	}
	if client == nil {
		return nil, errors.New("no fake client configured")
	}
	client.servicePath = servicePath
	return client, nil
}

func (f *fakeFactory) clientsCreated() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

// fakeClient scripts readiness and call outcomes.
type fakeClient struct {
	mu          sync.Mutex
	servicePath string
	// readyAfter is how many WaitReady attempts fail before success. A
	// negative value means the service never becomes ready.
	readyAfter int
	attempts   int
	// onWait runs on every readiness probe, e.g. to advance a mock clock.
	onWait func()
	resp   any
	err    error
	// pending leaves the future incomplete forever.
	pending bool
	calls   int
	closed  int
}

func (c *fakeClient) WaitReady(ctx context.Context, timeout time.Duration) bool {
	c.mu.Lock()
	c.attempts++
	attempts := c.attempts
	onWait := c.onWait
	readyAfter := c.readyAfter
	c.mu.Unlock()
	if onWait != nil {
		onWait()
	}
	if readyAfter < 0 {
		return false
	}
	return attempts > readyAfter
}

func (c *fakeClient) Call(req any) ros.Future {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return &fakeFuture{resp: c.resp, err: c.err, pending: c.pending}
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *fakeClient) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type fakeFuture struct {
	resp    any
	err     error
	pending bool
}

func (f *fakeFuture) Done() bool {
	return !f.pending
}

func (f *fakeFuture) Result() (any, error) {
	return f.resp, f.err
}
