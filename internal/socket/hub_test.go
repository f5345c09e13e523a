package socket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestClient upgrades one connection, registers it in the hub, and drains
// everything the server pushes. Returns the client-side conn for cleanup.
func dialTestClient(t *testing.T, hub *Hub, userID, role string) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(userID, role, conn)
		close(registered)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientConn.Close() })

	// Drain server pushes so write buffers never fill up.
	go func() {
		for {
			if _, _, err := clientConn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	<-registered
	return clientConn
}

func TestBroadcastSerializesConcurrentWrites(t *testing.T) {
	hub := NewHub()
	dialTestClient(t, hub, "manager-1", "manager")

	// Many goroutines pushing to the same connection at once must not
	// corrupt frames or trip gorilla's concurrent-writer check.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				hub.Broadcast([]byte(`{"type":"shipment_updated"}`), "manager")
			}
		}()
	}
	wg.Wait()

	hub.Unregister("manager-1")
}

func TestSendAndBroadcastConcurrently(t *testing.T) {
	hub := NewHub()
	dialTestClient(t, hub, "driver-1", "driver")

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				assert.NoError(t, hub.Send("driver-1", []byte(`{"type":"sensor_reading"}`)))
				hub.Broadcast([]byte(`{"type":"sensor_reading"}`), "driver")
			}
		}()
	}
	wg.Wait()
}

func TestBroadcastFiltersByRole(t *testing.T) {
	hub := NewHub()
	managerConn := dialTestClient(t, hub, "manager-1", "manager")
	_ = managerConn

	// A broadcast to a role with no clients is a no-op, not an error.
	hub.Broadcast([]byte(`{}`), "customer")

	// Sending to an unknown user drops the message silently.
	assert.NoError(t, hub.Send("ghost", []byte(`{}`)))
}
