package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line, err := buf.ReadString('\n')
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	return m
}

func TestWriteNodes(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteNodes([]string{"listener", "talker"}))

	m := decodeLine(t, &buf)
	assert.Equal(t, "nodes", m["type"])
	assert.Equal(t, float64(SchemaVersion), m["schemaVersion"])
	assert.Equal(t, []any{"listener", "talker"}, m["nodes"])
}

func TestWriteLoggers(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteLoggers("talker", []LoggerOutput{
		{Name: "talker", Level: "INFO"},
		{Name: "rcl", Level: "DEBUG"},
	}))

	m := decodeLine(t, &buf)
	assert.Equal(t, "loggers", m["type"])
	assert.Equal(t, "talker", m["node"])
	loggers := m["loggers"].([]any)
	require.Len(t, loggers, 2)
	assert.Equal(t, "INFO", loggers[0].(map[string]any)["level"])
}

func TestWriteSetResult(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteSetResult("talker", "rcl", "WARN", "applied", ""))

	m := decodeLine(t, &buf)
	assert.Equal(t, "set_result", m["type"])
	assert.Equal(t, "applied", m["status"])
	assert.Equal(t, "rcl", m["logger"])
	_, hasErr := m["error"]
	assert.False(t, hasErr, "empty error field must be omitted")
}

func TestWriteLevelOmitsEmptyLogger(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteLevel("talker", "", "INFO", true))

	line := buf.String()
	assert.False(t, strings.Contains(line, `"logger"`))
	m := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	assert.Equal(t, true, m["cached"])
}

func TestWriteErrorAndWarning(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteError("SET_FAILED", "boom"))
	require.NoError(t, w.WriteWarning("careful"))

	m := decodeLine(t, &buf)
	assert.Equal(t, "error", m["type"])
	assert.Equal(t, "SET_FAILED", m["code"])

	m = decodeLine(t, &buf)
	assert.Equal(t, "warning", m["type"])
	assert.Equal(t, "careful", m["message"])
}
