package output

import (
	"encoding/json"
	"io"
)

// SchemaVersion is the current version of the NDJSON output schema.
// Increment this when making breaking changes to the output format.
const SchemaVersion = 1

// NDJSONWriter writes rlc results as NDJSON records
type NDJSONWriter struct {
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{encoder: enc}
}

// NodeListOutput lists the nodes that support logger-level control
type NodeListOutput struct {
	Type          string   `json:"type"` // Always "nodes"
	SchemaVersion int      `json:"schemaVersion"`
	Nodes         []string `json:"nodes"`
}

// LoggerOutput is one logger and its current level
type LoggerOutput struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// LoggerListOutput lists a node's loggers with their current levels
type LoggerListOutput struct {
	Type          string         `json:"type"` // Always "loggers"
	SchemaVersion int            `json:"schemaVersion"`
	Node          string         `json:"node"`
	Loggers       []LoggerOutput `json:"loggers"`
}

// LevelOutput is the current level of one scope
type LevelOutput struct {
	Type          string `json:"type"` // Always "level"
	SchemaVersion int    `json:"schemaVersion"`
	Node          string `json:"node"`
	Logger        string `json:"logger,omitempty"`
	Level         string `json:"level"`
	Cached        bool   `json:"cached,omitempty"`
}

// SetResultOutput reports the outcome of a level change request
type SetResultOutput struct {
	Type          string `json:"type"` // Always "set_result"
	SchemaVersion int    `json:"schemaVersion"`
	Node          string `json:"node"`
	Logger        string `json:"logger,omitempty"`
	Level         string `json:"level"`
	Status        string `json:"status"` // "applied", "unchanged", "failed"
	Error         string `json:"error,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// ErrorOutput represents an error result
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// WriteNodes writes a node listing record
func (w *NDJSONWriter) WriteNodes(nodes []string) error {
	return w.encoder.Encode(NodeListOutput{
		Type:          "nodes",
		SchemaVersion: SchemaVersion,
		Nodes:         nodes,
	})
}

// WriteLoggers writes a logger listing record for one node
func (w *NDJSONWriter) WriteLoggers(node string, loggers []LoggerOutput) error {
	return w.encoder.Encode(LoggerListOutput{
		Type:          "loggers",
		SchemaVersion: SchemaVersion,
		Node:          node,
		Loggers:       loggers,
	})
}

// WriteLevel writes the current level of one scope
func (w *NDJSONWriter) WriteLevel(node, logger, level string, cached bool) error {
	return w.encoder.Encode(LevelOutput{
		Type:          "level",
		SchemaVersion: SchemaVersion,
		Node:          node,
		Logger:        logger,
		Level:         level,
		Cached:        cached,
	})
}

// WriteSetResult writes the outcome of a level change
func (w *NDJSONWriter) WriteSetResult(node, logger, level, status, errMsg string) error {
	return w.encoder.Encode(SetResultOutput{
		Type:          "set_result",
		SchemaVersion: SchemaVersion,
		Node:          node,
		Logger:        logger,
		Level:         level,
		Status:        status,
		Error:         errMsg,
	})
}

// WriteWarning writes a warning record
func (w *NDJSONWriter) WriteWarning(msg string) error {
	return w.encoder.Encode(WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       msg,
	})
}

// WriteError writes an error record
func (w *NDJSONWriter) WriteError(code, msg string) error {
	return w.encoder.Encode(ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       msg,
	})
}
