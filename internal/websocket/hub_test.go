package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tahcohcat/ttsstudio/internal/studio"
)

func TestPublishReachesConnectedClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	r := mux.NewRouter()
	RegisterRoutes(r, hub)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// registration happens on the hub goroutine; publish until the client sees it
	want := studio.Event{ID: "abc", Type: studio.EventCompleted, FileName: "a.mp3"}
	done := make(chan studio.Event, 1)
	go func() {
		var got studio.Event
		_, data, err := conn.ReadMessage()
		if err == nil && json.Unmarshal(data, &got) == nil {
			done <- got
		}
	}()

	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case got := <-done:
			if got.ID != want.ID || got.Type != want.Type || got.FileName != want.FileName {
				t.Errorf("got %+v", got)
			}
			return
		case <-tick.C:
			hub.Publish(want)
		case <-deadline:
			t.Fatal("event not received")
		}
	}
}

func TestPublishDoesNotBlockWithoutRun(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 200; i++ {
		hub.Publish(studio.Event{ID: "x"})
	}
}
