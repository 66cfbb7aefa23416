package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dsforge/internal/service"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestBroadcastReachesClient(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	reqCtx, cancelReq := context.WithCancel(context.Background())
	defer cancelReq()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(reqCtx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()

	waitFor(t, func() bool { return h.ClientCount() == 1 })
	h.Broadcast(service.Event{Type: service.EventRunStarted})
	waitFor(t, func() bool {
		return strings.Contains(rec.Body.String(), "run_started")
	})

	cancelReq()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after client disconnect")
	}
	waitFor(t, func() bool { return h.ClientCount() == 0 })
}

func TestShutdownReleasesConnectedClients(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()

	waitFor(t, func() bool { return h.ClientCount() == 1 })

	// Stop the hub while the client is still attached. The handler must
	// return promptly so server shutdown is not held up by open streams.
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after hub stopped")
	}
}

func TestServeAfterShutdown(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()
	<-h.done

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 after shutdown, got %d", rec.Code)
	}
}
