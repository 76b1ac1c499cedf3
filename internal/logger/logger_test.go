package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"storage_key": "sablier-ui-theme", "component": "resolver"})
	log.Info("theme restored")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "theme restored", entry["message"])
	require.Equal(t, "sablier-ui-theme", entry["storage_key"])
	require.Equal(t, "resolver", entry["component"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerWarnErrIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.With("scheme", "dark")
	log.WarnErr(errors.New("quota exceeded"), "theme not persisted")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "theme not persisted", entry["message"])
	require.Equal(t, "dark", entry["scheme"])
	require.Equal(t, "quota exceeded", entry["error"])
}

func TestLoggerCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	id := NewCorrelationID()
	log, err := New(Options{Writer: buf, CorrelationID: id})
	require.NoError(t, err)

	log.Printf("slow query %dms", 250)

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, id, entry["correlation_id"])
	require.Equal(t, "slow query 250ms", entry["message"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var nilLog *Logger
	nilLog.Info("ignored")
	nilLog.Error(errors.New("x"), "ignored")
	require.Nil(t, nilLog.WithFields(map[string]any{"a": 1}))

	Nop().Warn("ignored")
}
