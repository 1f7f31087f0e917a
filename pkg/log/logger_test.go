package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/log"
)

func TestNewUsesInfoLevel(t *testing.T) {
	logger := log.New("svc", "dev", "1.0.0")
	ctx := context.Background()

	testify.False(t, logger.Handler().Enabled(ctx, slog.LevelDebug))
	testify.True(t, logger.Handler().Enabled(ctx, slog.LevelInfo))
}

func TestNewWithWriterOutputsBaseAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithWriter("svc-name", "prod", "2.3.4",
		slog.LevelDebug, &buf)
	logger.Info("hello", slog.Int("count", 1))

	var got map[string]any
	testify.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got))
	testify.Equal(t, "svc-name", got["service"])
	testify.Equal(t, "prod", got["env"])
	testify.Equal(t, "2.3.4", got["version"])
	testify.Equal(t, float64(1), got["count"])
}

func TestAttrs(t *testing.T) {
	assertAttrEqual(t, log.FlowID(api.FlowID("flow-123")),
		"flow_id", "flow-123")
	assertAttrEqual(t, log.NodeID(api.NodeID("node-abc")),
		"node_id", "node-abc")
	assertAttrEqual(t, log.RunID(api.RunID("run-1")), "run_id", "run-1")
	assertAttrEqual(t, log.Status(api.RunSuccess), "status", "success")
	assertAttrEqual(t, log.NodeType(api.NodeLLM), "node_type", "llm")
}

type errStub string

func (e errStub) Error() string { return string(e) }

func TestErrorAttr(t *testing.T) {
	assertAttrEqual(t, log.Error(nil), "error", "")
	assertAttrEqual(t, log.Error(errStub("boom")), "error", "boom")
	assertAttrEqual(t, log.ErrorString("badness"), "error", "badness")
}

func assertAttrEqual(t *testing.T, attr slog.Attr, key, value string) {
	t.Helper()
	testify.Equal(t, key, attr.Key)
	testify.Equal(t, value, attr.Value.String())
}
