package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

var runOnce sync.Once

func newTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	runOnce.Do(func() { go HubInstance.Run() })

	r := gin.New()
	r.GET("/ws/:channel", SubscribeHandler)
	srv := httptest.NewServer(r)
	return srv, srv.Close
}

func dial(t *testing.T, srv *httptest.Server, channel string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + channel
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	return conn
}

func waitForSubscribers(t *testing.T, channel string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if HubInstance.SubscriberCount(channel) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d subscribers on %q", want, channel)
}

func TestNotifyReachesDashboardSubscribers(t *testing.T) {
	srv, cleanup := newTestServer(t)
	defer cleanup()

	conn := dial(t, srv, "dashboard")
	defer conn.Close()
	waitForSubscribers(t, "dashboard", 1)

	HubInstance.Notify("students", "insert", 42)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	assert.NoError(t, err)

	var evt ChangeEvent
	assert.NoError(t, json.Unmarshal(payload, &evt))
	assert.Equal(t, "students", evt.Table)
	assert.Equal(t, "insert", evt.Action)
	assert.Equal(t, uint(42), evt.ID)
}

func TestBroadcastIsScopedToChannel(t *testing.T) {
	srv, cleanup := newTestServer(t)
	defer cleanup()

	dashboard := dial(t, srv, "dashboard")
	defer dashboard.Close()
	other := dial(t, srv, "lectures")
	defer other.Close()
	waitForSubscribers(t, "dashboard", 1)
	waitForSubscribers(t, "lectures", 1)

	HubInstance.Broadcast(BroadcastMessage{Channel: "lectures", Message: []byte("ping")})

	other.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := other.ReadMessage()
	assert.NoError(t, err)
	assert.Equal(t, "ping", string(payload))

	dashboard.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err = dashboard.ReadMessage()
	assert.Error(t, err, "dashboard channel must not receive lecture messages")
}

func TestDisconnectReleasesSubscription(t *testing.T) {
	srv, cleanup := newTestServer(t)
	defer cleanup()

	conn := dial(t, srv, "dashboard")
	waitForSubscribers(t, "dashboard", 1)

	conn.Close()
	waitForSubscribers(t, "dashboard", 0)
}
