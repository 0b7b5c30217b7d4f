package config

import (
	"fmt"
	"log/slog"
	"strings"
)

type Log struct {
	Format    LogFormat  `env:"LOG_FORMAT" envDefault:"JSON"`
	Level     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	AddSource bool       `env:"LOG_ADD_SOURCE" envDefault:"true"`
	// Output is STDERR for one-shot binaries whose stdout is consumed by scripts.
	Output LogOutput `env:"LOG_OUTPUT" envDefault:"STDOUT"`
}

// unknownEnum names a value outside the range of its enum.
const unknownEnum = "UNKNOWN"

func enumName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return unknownEnum
}

// LogFormat is how records are rendered: JSON for collectors, TEXT for terminals.
type LogFormat uint8

const (
	LogFormatJSON LogFormat = iota
	LogFormatText
)

func (f LogFormat) String() string {
	return enumName([]string{"JSON", "TEXT"}, uint8(f))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *LogFormat) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "JSON":
		*f = LogFormatJSON
	case "TEXT":
		*f = LogFormatText
	default:
		return fmt.Errorf("unknown log format: %s", text)
	}
	return nil
}

func (f LogFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// LogOutput is the stream records are written to.
type LogOutput uint8

const (
	LogOutputStdout LogOutput = iota
	LogOutputStderr
)

func (o LogOutput) String() string {
	return enumName([]string{"STDOUT", "STDERR"}, uint8(o))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *LogOutput) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "STDOUT":
		*o = LogOutputStdout
	case "STDERR":
		*o = LogOutputStderr
	default:
		return fmt.Errorf("unknown log output: %s", text)
	}
	return nil
}

func (o LogOutput) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
