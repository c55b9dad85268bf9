package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn")
	require.NoError(t, err)

	ctx := context.Background()
	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn", "key", "2024-03-04")
	log.Error(ctx, "err", "n", 3)

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "key=2024-03-04")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "n=3")
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug")
	require.NoError(t, err)

	log.With("component", "store").Info(context.Background(), "hello")
	assert.Contains(t, buf.String(), "component=store")
}

func TestParseLevel(t *testing.T) {
	_, err := ParseLevel("loud")
	assert.Error(t, err)
	for _, v := range []string{"", "debug", "INFO", "warning", "error"} {
		_, err := ParseLevel(v)
		assert.NoError(t, err, v)
	}
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
}
