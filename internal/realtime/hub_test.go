package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"

	"pilana/internal/logger"
)

func TestRevisionsPerTable(t *testing.T) {
	h := NewHub(logger.Nop())
	h.Changed("ponude", "insert", "a")
	h.Changed("ponude", "update", "a")
	h.Changed("trupci", "delete", "b")

	revs := h.Revisions()
	if revs["ponude"] != 2 {
		t.Fatalf("ponude revision = %d", revs["ponude"])
	}
	if revs["trupci"] != 1 {
		t.Fatalf("trupci revision = %d", revs["trupci"])
	}
	if _, ok := revs["dorada"]; ok {
		t.Fatalf("untouched table has a revision: %v", revs)
	}
}

func dial(t *testing.T, h *Hub) *ws.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)
	conn, _, err := ws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestServeWSBroadcast(t *testing.T) {
	h := NewHub(logger.Nop())
	h.Changed("blagajna", "insert", "x")
	conn := dial(t, h)

	var snap struct {
		Revisions map[string]uint64 `json:"revisions"`
	}
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snap.Revisions["blagajna"] != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}

	// the client is registered by the time its snapshot arrives
	h.Changed("blagajna", "delete", "x")
	var evt Event
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("read event: %v", err)
	}
	want := Event{Table: "blagajna", Action: "delete", ID: "x", Revision: 2}
	if evt != want {
		t.Fatalf("event = %+v, want %+v", evt, want)
	}
}

func TestConcurrentChangesArriveInOrder(t *testing.T) {
	h := NewHub(logger.Nop())
	conn := dial(t, h)
	var snap map[string]any
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Changed("pilana", "update", "p")
		}()
	}
	wg.Wait()

	for want := uint64(1); want <= n; want++ {
		var evt Event
		if err := conn.ReadJSON(&evt); err != nil {
			t.Fatalf("read event %d: %v", want, err)
		}
		if evt.Revision != want {
			t.Fatalf("got revision %d, want %d", evt.Revision, want)
		}
	}
}
