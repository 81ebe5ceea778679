package ros

import (
	"context"
	"time"

	"github.com/vburojevic/rlc/internal/domain"
)

// Graph answers point-in-time queries about the live ROS graph. Snapshots
// are eventually consistent; a node may appear in one answer and not the
// other.
type Graph interface {
	// NodeNames returns the names of live nodes, without leading slash.
	NodeNames(ctx context.Context) ([]string, error)
	// ServiceNamesAndTypes returns all advertised services with their types.
	ServiceNamesAndTypes(ctx context.Context) ([]domain.ServiceInfo, error)
}

// Future is the pending result of an asynchronous service call.
type Future interface {
	// Done reports whether the call has completed, without blocking.
	Done() bool
	// Result returns the typed response once Done is true. Calling it
	// before completion is a programming error.
	Result() (any, error)
}

// Client is a single-service RPC client. A client is bound to one service
// path and schema and must be closed on every exit path.
type Client interface {
	// WaitReady blocks until the service is reachable or the timeout
	// elapses, and reports which happened.
	WaitReady(ctx context.Context, timeout time.Duration) bool
	// Call dispatches the request asynchronously.
	Call(req any) Future
	// Close releases the client.
	Close() error
}

// ClientFactory resolves a service type to a schema and builds a client
// bound to a service path. A type the factory cannot resolve is an error.
type ClientFactory interface {
	NewClient(serviceType, servicePath string) (Client, error)
}
