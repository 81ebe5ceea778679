package caller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/rlc/internal/domain"
)

func TestCapableNodes(t *testing.T) {
	graph := &fakeGraph{
		nodes: []string{"talker", "listener", "bare"},
		services: []domain.ServiceInfo{
			setService("talker"),
			setService("listener"),
			{Name: "/bare/describe", Types: []string{"pkg/Describe"}},
		},
	}

	nodes, err := capableNodes(context.Background(), graph)
	require.NoError(t, err)
	assert.Equal(t, []string{"listener", "talker"}, nodes)
}

func TestCapableNodesExcludesStaleAdvertisement(t *testing.T) {
	// The registry still lists /a/set_logger_level but only "b" is live.
	graph := &fakeGraph{
		nodes: []string{"b"},
		services: []domain.ServiceInfo{
			setService("a"),
		},
	}

	nodes, err := capableNodes(context.Background(), graph)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestCapableNodesScenario(t *testing.T) {
	// services: /a/set_logger_level [rcl_interfaces/SetLoggerLevel],
	// live nodes {a, b} -> only "a" is capable.
	graph := &fakeGraph{
		nodes:    []string{"a", "b"},
		services: []domain.ServiceInfo{setService("a")},
	}

	nodes, err := capableNodes(context.Background(), graph)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, nodes)
}

func TestCapableNodesRequiresExpectedType(t *testing.T) {
	graph := &fakeGraph{
		nodes: []string{"a"},
		services: []domain.ServiceInfo{
			{Name: "/a/set_logger_level", Types: []string{"other_pkg/SetLoggerLevel"}},
		},
	}

	nodes, err := capableNodes(context.Background(), graph)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestCapableNodesSortedAndDeduplicated(t *testing.T) {
	graph := &fakeGraph{
		nodes: []string{"zeta", "alpha", "zeta", "mid"},
		services: []domain.ServiceInfo{
			setService("zeta"),
			setService("alpha"),
			setService("mid"),
		},
	}

	nodes, err := capableNodes(context.Background(), graph)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, nodes)
}

func TestCapableNodesGraphError(t *testing.T) {
	wantErr := errors.New("daemon not running")
	graph := &fakeGraph{nodesErr: wantErr}

	_, err := capableNodes(context.Background(), graph)
	assert.ErrorIs(t, err, wantErr)

	graph = &fakeGraph{nodes: []string{"a"}, svcErr: wantErr}
	_, err = capableNodes(context.Background(), graph)
	assert.ErrorIs(t, err, wantErr)
}
