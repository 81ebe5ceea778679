package ros

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vburojevic/rlc/internal/domain"
)

var errNoResponse = errors.New("no response in service call output")

// knownTypes are the service schemas the exec adapter can build requests
// and parse responses for.
var knownTypes = map[string]struct{}{
	domain.SetLoggerLevelType: {},
	domain.GetLoggerLevelType: {},
	domain.GetLoggersType:     {},
}

// ExecGraph queries the ROS graph by shelling out to the ros2 CLI. The
// daemon behind the CLI provides the discovery snapshot; this adapter only
// consumes it.
type ExecGraph struct {
	ros2Path string
}

// NewExecGraph creates a graph querier backed by the ros2 binary at path.
func NewExecGraph(path string) *ExecGraph {
	if path == "" {
		path = "ros2"
	}
	return &ExecGraph{ros2Path: path}
}

// NodeNames returns the names of live nodes, sorted, without leading slash.
func (g *ExecGraph) NodeNames(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, g.ros2Path, "node", "list")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ros2 node list failed: %w", err)
	}
	nodes := parseNodeList(string(output))
	sort.Strings(nodes)
	return nodes, nil
}

// ServiceNamesAndTypes returns all advertised services with their types.
func (g *ExecGraph) ServiceNamesAndTypes(ctx context.Context) ([]domain.ServiceInfo, error) {
	cmd := exec.CommandContext(ctx, g.ros2Path, "service", "list", "-t")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ros2 service list failed: %w", err)
	}
	return parseServiceList(string(output)), nil
}

// ExecClientFactory builds service clients that drive `ros2 service call`.
type ExecClientFactory struct {
	ros2Path string
}

// NewExecClientFactory creates a client factory backed by the ros2 binary
// at path.
func NewExecClientFactory(path string) *ExecClientFactory {
	if path == "" {
		path = "ros2"
	}
	return &ExecClientFactory{ros2Path: path}
}

// NewClient binds a client to one service path. Only the logger-control
// schemas are resolvable.
func (f *ExecClientFactory) NewClient(serviceType, servicePath string) (Client, error) {
	if _, ok := knownTypes[serviceType]; !ok {
		return nil, fmt.Errorf("unknown service type %q", serviceType)
	}
	return &execClient{
		ros2Path:    f.ros2Path,
		serviceType: serviceType,
		servicePath: servicePath,
	}, nil
}

type execClient struct {
	ros2Path    string
	serviceType string
	servicePath string
}

// WaitReady probes the service with `ros2 service type` until it answers
// with the expected type or the timeout elapses.
func (c *execClient) WaitReady(ctx context.Context, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.ros2Path, "service", "type", c.servicePath)
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	reported := normalizeType(strings.TrimSpace(string(output)))
	return reported == c.serviceType
}

// Call dispatches `ros2 service call` in the background and returns a
// future completing when the command exits.
func (c *execClient) Call(req any) Future {
	fut := &execFuture{done: make(chan struct{})}
	go func() {
		defer close(fut.done)
		cmd := exec.Command(c.ros2Path, "service", "call",
			c.servicePath, wireType(c.serviceType), requestYAML(req))
		output, err := cmd.Output()
		fut.mu.Lock()
		defer fut.mu.Unlock()
		if err != nil {
			fut.err = fmt.Errorf("ros2 service call failed: %w", err)
			return
		}
		fut.resp, fut.err = parseResponse(c.serviceType, string(output))
	}()
	return fut
}

func (c *execClient) Close() error {
	return nil
}

type execFuture struct {
	done chan struct{}
	mu   sync.Mutex
	resp any
	err  error
}

func (f *execFuture) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *execFuture) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resp, f.err
}
