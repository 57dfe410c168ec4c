package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webdemo/core/logger"
)

type ctxKey struct{}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("webdemo"),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.DebugContext(ctx, "hidden")
	log.With(logger.Category("CustomCategory")).InfoContext(ctx, "visible", logger.Error(errors.New("boom")), logger.Error(nil))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "visible", record["msg"])
	assert.Equal(t, "webdemo", record["service"])
	assert.Equal(t, "production", record["env"])
	assert.Equal(t, "CustomCategory", record["category"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "boom", record["error"])
}

func TestNewAutoFormatForNonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger.New(logger.WithOutput(&buf)).Info("hello")

	assert.True(t, json.Valid(buf.Bytes()), "buffers are not terminals and get JSON")
}

func TestDevelopmentText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger.New(logger.WithDevelopment("webdemo"), logger.WithOutput(&buf)).Debug("details", logger.Path("/"))

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "path=/")
}

func TestParse(t *testing.T) {
	t.Parallel()

	level, err := logger.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = logger.ParseLevel("loud")
	assert.Error(t, err)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)

	opt, err := logger.ParseFormat("text")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger.New(opt, logger.WithOutput(&buf)).Info("x")
	assert.Contains(t, buf.String(), "msg=x")
}

func TestEmptyAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.Stack(nil).Equal(slog.Attr{}))
	assert.Equal(t, "category", logger.Category("x").Key)
}
