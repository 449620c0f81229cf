package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// wsPair dials a throwaway server and hands back both ends of one websocket.
func wsPair(t *testing.T) (client, server *websocket.Conn) {
	t.Helper()
	serverCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverCh <- ws
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverCh:
	case <-time.After(time.Second):
		t.Fatal("server side never upgraded")
	}
	return client, server
}

func TestConnectionDeliversQueuedPayloads(t *testing.T) {
	client, server := wsPair(t)
	conn := NewConnection(uuid.New(), server)
	conn.Start()
	defer conn.Close(websocket.CloseNormalClosure, "done")

	require.NoError(t, conn.Send([]byte("one")))
	_ = client.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "one", string(data))
}

func TestConnectionClosesItselfOnWriteFailure(t *testing.T) {
	_, server := wsPair(t)
	conn := NewConnection(uuid.New(), server)
	conn.Start()
	defer conn.Close(websocket.CloseNormalClosure, "done")

	// Kill the transport under the write loop; sends must start failing so
	// the registry can drop the sink instead of buffering forever.
	require.NoError(t, server.UnderlyingConn().Close())
	require.Eventually(t, func() bool {
		return conn.Send([]byte("x")) != nil
	}, 3*time.Second, 20*time.Millisecond, "sends keep succeeding against a dead peer")
}

func TestConnectionSendFailsAfterClose(t *testing.T) {
	_, server := wsPair(t)
	conn := NewConnection(uuid.New(), server)
	conn.Start()

	conn.Close(websocket.CloseNormalClosure, "done")
	require.Error(t, conn.Send([]byte("late")))
}
