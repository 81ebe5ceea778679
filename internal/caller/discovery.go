package caller

import (
	"context"
	"sort"

	"github.com/vburojevic/rlc/internal/domain"
	"github.com/vburojevic/rlc/internal/ros"
)

// capableNodes computes which live nodes currently advertise the
// set_logger_level service with the expected type. The result is sorted and
// deduplicated. A service advertised by a node that is absent from the live
// node set is a stale registry entry and is skipped.
func capableNodes(ctx context.Context, graph ros.Graph) ([]string, error) {
	nodes, err := graph.NodeNames(ctx)
	if err != nil {
		return nil, err
	}
	services, err := graph.ServiceNamesAndTypes(ctx)
	if err != nil {
		return nil, err
	}

	typesByService := make(map[string][]string, len(services))
	for _, s := range services {
		typesByService[s.Name] = s.Types
	}

	seen := make(map[string]struct{}, len(nodes))
	var capable []string
	for _, node := range nodes {
		if _, dup := seen[node]; dup {
			continue
		}
		seen[node] = struct{}{}
		if advertises(typesByService, setLevelService(node), domain.SetLoggerLevelType) {
			capable = append(capable, node)
		}
	}
	sort.Strings(capable)
	return capable, nil
}

// advertises reports whether the service at path is advertised with the
// given type.
func advertises(typesByService map[string][]string, path, serviceType string) bool {
	for _, t := range typesByService[path] {
		if t == serviceType {
			return true
		}
	}
	return false
}

func setLevelService(node string) string {
	return "/" + node + domain.SetLoggerLevelSuffix
}

func getLevelService(node string) string {
	return "/" + node + domain.GetLoggerLevelSuffix
}

func getLoggersService(node string) string {
	return "/" + node + domain.GetLoggersSuffix
}
