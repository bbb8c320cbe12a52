package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type flushCountingWriter struct {
	http.ResponseWriter
	flushCount int
}

func (w *flushCountingWriter) Flush() {
	w.flushCount++
}

type plainWriter struct {
	http.ResponseWriter
}

func TestStatusRecorderRecordsStatus(t *testing.T) {
	underlying := httptest.NewRecorder()
	recorder := &HttpStatusRecorder{ResponseWriter: underlying, Status: 200}

	var w http.ResponseWriter = recorder
	w.WriteHeader(http.StatusNotFound)

	if recorder.Status != http.StatusNotFound {
		t.Errorf("Expected recorded status 404, got %d", recorder.Status)
	}
	if underlying.Code != http.StatusNotFound {
		t.Errorf("Expected underlying status 404, got %d", underlying.Code)
	}
}

func TestStatusRecorderForwardsFlush(t *testing.T) {
	underlying := &flushCountingWriter{ResponseWriter: httptest.NewRecorder()}
	recorder := &HttpStatusRecorder{ResponseWriter: underlying, Status: 200}

	flusher, ok := interface{}(recorder).(http.Flusher)
	if !ok {
		t.Fatal("Expected the recorder to satisfy http.Flusher")
	}
	flusher.Flush()
	flusher.Flush()

	if underlying.flushCount != 2 {
		t.Errorf("Expected 2 forwarded flushes, got %d", underlying.flushCount)
	}
}

func TestStatusRecorderFlushWithoutFlusher(t *testing.T) {
	underlying := &plainWriter{ResponseWriter: httptest.NewRecorder()}
	recorder := &HttpStatusRecorder{ResponseWriter: underlying, Status: 200}

	// Must not panic when the wrapped writer cannot flush.
	recorder.Flush()
}
