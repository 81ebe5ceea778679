package domain

// Service type names and path suffixes advertised by nodes that support
// runtime logger-level control.
const (
	SetLoggerLevelType = "rcl_interfaces/SetLoggerLevel"
	GetLoggerLevelType = "rcl_interfaces/GetLoggerLevel"
	GetLoggersType     = "rcl_interfaces/GetLoggers"

	SetLoggerLevelSuffix = "/set_logger_level"
	GetLoggerLevelSuffix = "/get_logger_level"
	GetLoggersSuffix     = "/get_loggers"
)

// ServiceInfo is one advertised service as reported by the graph.
type ServiceInfo struct {
	Name  string
	Types []string
}

// SetLoggerLevelRequest asks a node to change one logger's level.
type SetLoggerLevelRequest struct {
	Name  string
	Level uint32
}

// SetLoggerLevelResponse acknowledges a level change.
type SetLoggerLevelResponse struct {
	Success bool
}

// GetLoggerLevelRequest asks a node for one logger's current level.
type GetLoggerLevelRequest struct {
	Name string
}

// GetLoggerLevelResponse carries the queried logger's level code.
type GetLoggerLevelResponse struct {
	Level uint32
}

// GetLoggersRequest asks a node to enumerate its loggers.
type GetLoggersRequest struct {
	Name string
}

// LoggerEntry is one logger and its current level code.
type LoggerEntry struct {
	Name  string
	Level uint32
}

// GetLoggersResponse lists a node's loggers with their current levels.
type GetLoggersResponse struct {
	Loggers []LoggerEntry
}
