package server_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/internal/engine"
	"github.com/flowcore/engine/internal/node"
	"github.com/flowcore/engine/internal/script"
	"github.com/flowcore/engine/internal/server"
	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

func newSocketFixture(t *testing.T) (*httptest.Server, *engine.Events) {
	t.Helper()

	events := engine.NewEvents()
	t.Cleanup(events.Close)

	registry := node.NewRegistry(service.Services{}, script.NewRegistry())
	srv := server.NewServer(registry, events)
	t.Cleanup(srv.CloseWebSockets)

	ts := httptest.NewServer(srv.SetupRoutes())
	t.Cleanup(ts.Close)
	return ts, events
}

func dialSocket(
	t *testing.T, ts *httptest.Server, query string,
) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	testify.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// give the handler a moment to attach its consumer
	time.Sleep(50 * time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) api.RunEvent {
	t.Helper()

	var ev api.RunEvent
	testify.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	testify.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWebSocketStream(t *testing.T) {
	ts, events := newSocketFixture(t)
	conn := dialSocket(t, ts, "")

	events.Publish(api.RunEvent{
		Type:   api.EventTypeRunStarted,
		RunID:  "run-1",
		FlowID: "flow-1",
		Time:   time.Now(),
	})
	events.Publish(api.RunEvent{
		Type:     api.EventTypeNodeExecuted,
		RunID:    "run-1",
		FlowID:   "flow-1",
		NodeID:   "E1",
		NodeType: api.NodeEntry,
		Time:     time.Now(),
	})

	first := readEvent(t, conn)
	testify.Equal(t, api.EventTypeRunStarted, first.Type)
	testify.Equal(t, api.RunID("run-1"), first.RunID)

	second := readEvent(t, conn)
	testify.Equal(t, api.EventTypeNodeExecuted, second.Type)
	testify.Equal(t, api.NodeID("E1"), second.NodeID)
}

func TestWebSocketRunFilter(t *testing.T) {
	ts, events := newSocketFixture(t)
	conn := dialSocket(t, ts, "?run_id=run-2")

	events.Publish(api.RunEvent{
		Type:  api.EventTypeRunStarted,
		RunID: "run-1",
		Time:  time.Now(),
	})
	events.Publish(api.RunEvent{
		Type:  api.EventTypeRunStarted,
		RunID: "run-2",
		Time:  time.Now(),
	})

	ev := readEvent(t, conn)
	testify.Equal(t, api.RunID("run-2"), ev.RunID)
}
