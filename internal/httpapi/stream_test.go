package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hearth.homes/internal/stream"
)

func TestStreamDeliversShareEvents(t *testing.T) {
	a := newTestAPI()
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/events", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stream status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	go func() {
		// Let the handler subscribe before publishing.
		time.Sleep(100 * time.Millisecond)
		a.stream.Publish(stream.ShareEvent{
			Action:    stream.ActionShared,
			HomeID:    "home-100",
			BuyerID:   "buyer-1",
			Scope:     []string{"photos"},
			Timestamp: time.Now().UTC(),
		})
	}()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var evt stream.ShareEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if evt.Action != stream.ActionShared || evt.HomeID != "home-100" {
			t.Fatalf("unexpected event: %+v", evt)
		}
		return
	}
}
