package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/protocol"
	"github.com/hersh/blockfall/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slowConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.BaseRate = 0
	return cfg
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ protocol.MessageType, payload interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(protocol.Envelope{Type: typ, Payload: payload}))
}

// next reads messages until one of the given type arrives.
func next(t *testing.T, conn *websocket.Conn, typ protocol.MessageType) protocol.RawEnvelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		env, err := protocol.Decode(data)
		require.NoError(t, err)
		if env.Type == typ {
			return env
		}
	}
}

func nextSnapshot(t *testing.T, conn *websocket.Conn) game.Snapshot {
	t.Helper()
	var payload protocol.SnapshotPayload
	require.NoError(t, next(t, conn, protocol.MsgSnapshot).Into(&payload))
	snap, err := payload.Snapshot()
	require.NoError(t, err)
	return snap
}

func TestRemoteSession(t *testing.T) {
	srv := server.New(slowConfig())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	conn := dial(t, ts)

	var assigned protocol.AssignIDPayload
	require.NoError(t, next(t, conn, protocol.MsgAssignID).Into(&assigned))
	assert.NotZero(t, assigned.PlayerID)

	send(t, conn, protocol.MsgStart, protocol.StartPayload{PlayerName: "ada", Seed: 99})
	snap := nextSnapshot(t, conn)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 1, snap.Level)
	assert.False(t, snap.GameOver)
	assert.Equal(t, 0, snap.Active.Pos.Row)

	p, ok := srv.Players().Get(assigned.PlayerID)
	require.True(t, ok)
	assert.Equal(t, "ada", p.Name)
	assert.True(t, p.Playing)

	startCol := snap.Active.Pos.Col
	send(t, conn, protocol.MsgCommand, protocol.CommandPayload{Command: "move_left"})
	for snap.Active.Pos.Col == startCol {
		snap = nextSnapshot(t, conn)
	}
	assert.Equal(t, startCol-1, snap.Active.Pos.Col)
}

func TestRemoteErrors(t *testing.T) {
	ts := httptest.NewServer(server.New(slowConfig()).Handler())
	defer ts.Close()
	conn := dial(t, ts)

	send(t, conn, protocol.MsgCommand, protocol.CommandPayload{Command: "rotate"})
	var e protocol.ErrorPayload
	require.NoError(t, next(t, conn, protocol.MsgError).Into(&e))
	assert.Contains(t, e.Message, "no game")

	send(t, conn, protocol.MsgStart, protocol.StartPayload{Seed: 1})
	nextSnapshot(t, conn)

	send(t, conn, protocol.MsgCommand, protocol.CommandPayload{Command: "hard_drop"})
	require.NoError(t, next(t, conn, protocol.MsgError).Into(&e))
	assert.Contains(t, e.Message, "unknown command")
}

func TestCloseDropsLiveConnections(t *testing.T) {
	srv := server.New(slowConfig())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	conn := dial(t, ts)

	next(t, conn, protocol.MsgAssignID)
	send(t, conn, protocol.MsgStart, protocol.StartPayload{Seed: 3})
	nextSnapshot(t, conn)
	require.Equal(t, 1, srv.Players().Count())

	srv.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var err error
	for err == nil {
		_, _, err = conn.ReadMessage()
	}
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Eventually(t, func() bool { return srv.Players().Count() == 0 },
		5*time.Second, 10*time.Millisecond)
}

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(server.New(game.DefaultConfig()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}
