package caller

import (
	"context"
	"errors"
	"fmt"

	"github.com/vburojevic/rlc/internal/domain"
	"github.com/vburojevic/rlc/internal/ros"
	"go.uber.org/zap"
)

// ErrNotAdvertised means the target node does not currently advertise the
// required logger-control service.
var ErrNotAdvertised = errors.New("service not advertised")

// LoggerState is one logger and its last observed level.
type LoggerState struct {
	Name  string
	Level domain.Level
}

// ServiceCaller discovers which nodes support runtime logger-level control,
// queries and caches their current levels, and issues change requests.
//
// A ServiceCaller is driven by one caller at a time; do not invoke its
// methods concurrently without external serialization. Every method that
// can touch the network blocks until resolution or context cancellation.
type ServiceCaller struct {
	graph   ros.Graph
	invoker *Invoker
	cache   *levelCache
	logger  *zap.Logger
}

// New creates a ServiceCaller over the given graph and invoker. A nil
// logger discards diagnostics.
func New(graph ros.Graph, invoker *Invoker, logger *zap.Logger) *ServiceCaller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceCaller{
		graph:   graph,
		invoker: invoker,
		cache:   newLevelCache(),
		logger:  logger,
	}
}

// Levels returns the fixed level listing in ascending severity order.
func (c *ServiceCaller) Levels() []domain.Level {
	return domain.Levels()
}

// NodeNames returns the sorted, deduplicated names of live nodes that
// advertise the set_logger_level service. No capable nodes is an empty
// result, not an error; only a failed graph query is an error.
func (c *ServiceCaller) NodeNames(ctx context.Context) ([]string, error) {
	return capableNodes(ctx, c.graph)
}

// Loggers queries a node for its loggers and their current levels. On
// success the cache entries for the node are replaced wholesale with the
// observed set. On failure the cache is left untouched and the error tells
// the caller this was a failed query, not a node without loggers.
func (c *ServiceCaller) Loggers(ctx context.Context, node string) ([]LoggerState, error) {
	resp, err := c.invoker.Call(ctx, domain.GetLoggersType, getLoggersService(node),
		domain.GetLoggersRequest{Name: node})
	if err != nil {
		return nil, err
	}
	loggers, ok := resp.(domain.GetLoggersResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T from %s", resp, getLoggersService(node))
	}

	observed := make(map[domain.Scope]domain.Level, len(loggers.Loggers))
	states := make([]LoggerState, 0, len(loggers.Loggers))
	for _, entry := range loggers.Loggers {
		level, known := domain.LevelFromCode(entry.Level)
		if !known {
			c.logger.Warn("skipping logger with unknown level code",
				zap.String("node", node),
				zap.String("logger", entry.Name),
				zap.Uint32("code", entry.Level))
			continue
		}
		observed[domain.LoggerScope(node, entry.Name)] = level
		states = append(states, LoggerState{Name: entry.Name, Level: level})
	}
	c.cache.replaceNode(node, observed)
	return states, nil
}

// CurrentLevel is a pure cache read: the last successfully observed or
// applied level for the scope, if any.
func (c *ServiceCaller) CurrentLevel(scope domain.Scope) (domain.Level, bool) {
	return c.cache.get(scope)
}

// Level queries the live level for a scope via the node's get_logger_level
// service and records it in the cache. A failed query leaves the cache
// untouched.
func (c *ServiceCaller) Level(ctx context.Context, scope domain.Scope) (domain.Level, error) {
	resp, err := c.invoker.Call(ctx, domain.GetLoggerLevelType, getLevelService(scope.Node),
		domain.GetLoggerLevelRequest{Name: scope.LoggerName()})
	if err != nil {
		return "", err
	}
	result, ok := resp.(domain.GetLoggerLevelResponse)
	if !ok {
		return "", fmt.Errorf("unexpected response type %T from %s", resp, getLevelService(scope.Node))
	}
	level, known := domain.LevelFromCode(result.Level)
	if !known {
		return "", fmt.Errorf("node %s reported unknown level code %d", scope.Node, result.Level)
	}
	c.cache.set(scope, level)
	return level, nil
}

// SetLevel applies a level to a scope. It reports (false, nil) without any
// service call when the cache already holds a case-insensitive match — the
// idempotence guard, not a failure. On a successful change the cache is
// updated and (true, nil) returned; on failure the cache is untouched and
// the error says why.
func (c *ServiceCaller) SetLevel(ctx context.Context, scope domain.Scope, level domain.Level) (bool, error) {
	canonical, err := domain.ParseLevel(string(level))
	if err != nil {
		return false, err
	}

	if cached, ok := c.cache.get(scope); ok && cached.EqualFold(canonical) {
		return false, nil
	}

	if err := c.checkAdvertised(ctx, scope.Node); err != nil {
		c.logger.Warn("set_logger_level service not advertised",
			zap.String("node", scope.Node),
			zap.Error(err))
		return false, err
	}

	resp, err := c.invoker.Call(ctx, domain.SetLoggerLevelType, setLevelService(scope.Node),
		domain.SetLoggerLevelRequest{Name: scope.LoggerName(), Level: canonical.Code()})
	if err != nil {
		return false, err
	}
	result, ok := resp.(domain.SetLoggerLevelResponse)
	if !ok {
		return false, fmt.Errorf("unexpected response type %T from %s", resp, setLevelService(scope.Node))
	}
	if !result.Success {
		return false, fmt.Errorf("node %s rejected level change for %s", scope.Node, scope)
	}

	c.cache.set(scope, canonical)
	return true, nil
}

// checkAdvertised re-validates that the node still advertises the
// set_logger_level service before a change request is issued.
func (c *ServiceCaller) checkAdvertised(ctx context.Context, node string) error {
	services, err := c.graph.ServiceNamesAndTypes(ctx)
	if err != nil {
		return err
	}
	path := setLevelService(node)
	for _, s := range services {
		if s.Name != path {
			continue
		}
		for _, t := range s.Types {
			if t == domain.SetLoggerLevelType {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrNotAdvertised, path)
}
