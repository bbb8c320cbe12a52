package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tkonda/AgentAPI/internal/metrics"
)

type flushCountingWriter struct {
	*httptest.ResponseRecorder
	flushCount int
}

func (w *flushCountingWriter) Flush() {
	w.flushCount++
}

func TestWrapRecordsHandlerStatus(t *testing.T) {
	wrapped := Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(metrics.HttpRequestsTotal.WithLabelValues("/status/missing", "404"))

	req := httptest.NewRequest(http.MethodGet, "/status/missing", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	rec := httptest.NewRecorder()
	wrapped(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	after := testutil.ToFloat64(metrics.HttpRequestsTotal.WithLabelValues("/status/missing", "404"))
	if after-before != 1 {
		t.Errorf("Expected one request counted with status 404, got %v", after-before)
	}
}

func TestWrapKeepsWriterFlushable(t *testing.T) {
	wrapped := Wrap(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("Expected the wrapped writer to satisfy http.Flusher")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{\"node\":\"router\"}\n"))
		flusher.Flush()
		_, _ = w.Write([]byte("{\"node\":\"generate\"}\n"))
		flusher.Flush()
	})

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	req.RemoteAddr = "192.0.2.11:1234"
	rec := &flushCountingWriter{ResponseRecorder: httptest.NewRecorder()}
	wrapped(rec, req)

	if rec.flushCount != 2 {
		t.Errorf("Expected 2 flushes to reach the client writer, got %d", rec.flushCount)
	}
}
