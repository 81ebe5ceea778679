package domain

// Scope identifies what a level query or change applies to: a whole node,
// or one named logger within a node. The empty logger name means the node's
// root logger.
type Scope struct {
	Node   string
	Logger string
}

// NodeScope returns a scope covering the node's root logger.
func NodeScope(node string) Scope {
	return Scope{Node: node}
}

// LoggerScope returns a scope for one named logger within a node. A logger
// named after the node itself is the root logger, so it collapses to the
// node scope and shares its cache key.
func LoggerScope(node, logger string) Scope {
	if logger == node {
		return Scope{Node: node}
	}
	return Scope{Node: node, Logger: logger}
}

// IsNode reports whether the scope addresses the node's root logger.
func (s Scope) IsNode() bool {
	return s.Logger == ""
}

// LoggerName returns the logger name to put on the wire. The root logger is
// addressed by the node's own name, matching the rcl_interfaces convention.
func (s Scope) LoggerName() string {
	if s.Logger == "" {
		return s.Node
	}
	return s.Logger
}

// String renders "node" or "node/logger", the form used in diagnostics and
// text output. Node names may themselves contain slashes, so this form is
// not unique across scopes.
func (s Scope) String() string {
	if s.Logger == "" {
		return s.Node
	}
	return s.Node + "/" + s.Logger
}
