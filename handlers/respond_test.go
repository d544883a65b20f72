package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/writewithwrabit/tracker/tracker"
)

type headerCounter struct {
	*httptest.ResponseRecorder
	calls int
}

func (c *headerCounter) WriteHeader(code int) {
	c.calls++
	c.ResponseRecorder.WriteHeader(code)
}

// blockingStore never answers a read before the request gives up.
type blockingStore struct {
	*fakeStore
}

func (s blockingStore) Snapshot(ctx context.Context, fn func(tracker.Repository) error) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRespondErrorLeavesTimeoutToMiddleware(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	req := httptest.NewRequest(http.MethodGet, "/trackers/2025/10", nil).WithContext(ctx)
	w := &headerCounter{ResponseRecorder: httptest.NewRecorder()}

	respondError(w, req, ctx.Err())

	assert.Equal(t, 0, w.calls)
	assert.Empty(t, w.Body.String())
}

func TestTrackerTimeout(t *testing.T) {
	h := New(blockingStore{newFakeStore()}, time.UTC)
	router := h.Routes(RouterConfig{Verifier: stubVerifier{}, RequestTimeout: 20 * time.Millisecond})

	req := httptest.NewRequest(http.MethodGet, "/trackers/2025/10", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w := &headerCounter{ResponseRecorder: httptest.NewRecorder()}

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, 1, w.calls)
	assert.Empty(t, w.Body.String())
}
