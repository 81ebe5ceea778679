package domain

import (
	"fmt"
	"strings"
)

// Level is a logger severity level as exposed by rcl_interfaces.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelFatal Level = "FATAL"
)

// Levels returns the fixed level listing in ascending severity order.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}
}

// Numeric level codes from rcl_interfaces/msg/LoggerLevelType.
const (
	codeUnknown uint32 = 0
	codeDebug   uint32 = 10
	codeInfo    uint32 = 20
	codeWarn    uint32 = 30
	codeError   uint32 = 40
	codeFatal   uint32 = 50
)

var levelCodes = map[Level]uint32{
	LevelDebug: codeDebug,
	LevelInfo:  codeInfo,
	LevelWarn:  codeWarn,
	LevelError: codeError,
	LevelFatal: codeFatal,
}

// ParseLevel converts a string to a Level, ignoring case.
// An unrecognized label is an error, not a default.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelCodes[l]; !ok {
		return "", fmt.Errorf("unknown logger level %q", s)
	}
	return l, nil
}

// Code returns the rcl_interfaces numeric code for this level.
func (l Level) Code() uint32 {
	return levelCodes[l]
}

// Priority returns the severity rank of a level (higher = more severe).
func (l Level) Priority() int {
	return int(levelCodes[l] / 10)
}

// EqualFold reports whether two level labels match ignoring case.
func (l Level) EqualFold(other Level) bool {
	return strings.EqualFold(string(l), string(other))
}

// LevelFromCode maps a numeric logger level code back to its label.
func LevelFromCode(code uint32) (Level, bool) {
	for l, c := range levelCodes {
		if c == code {
			return l, true
		}
	}
	return "", false
}
