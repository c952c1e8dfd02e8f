package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"candlepin/src/infra/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestPlainHandler(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "plain"}, &buf)

	WithOwner(WithComponent(log, "repo"), "acme").Info("owner created", "id", "o1")
	log.Debug("hidden")

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, "INFO owner created component=repo owner=acme id=o1", line)
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	WithRequestID(log, "req-1").Warn("slow")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestNilGuards(t *testing.T) {
	assert.NotPanics(t, func() {
		Info(nil, "x")
		Warn(nil, "x")
		Error(nil, "x")
		Debug(nil, "x")
	})
}
