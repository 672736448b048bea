package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameportal/internal/testutil"
)

func TestLoggingRecordsRequest(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Annotate(r.Context(), "client_id", "abc")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/play/tap", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/api/v1/play/tap", line["path"])
	assert.InDelta(t, 201, line["status"], 0)
	assert.InDelta(t, 5, line["size"], 0)
	assert.Equal(t, "abc", line["client_id"])
}

func TestLoggingWarnsOnServerError(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
}

func TestAnnotateOutsideRequestIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Annotate(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "k", "v")
	})
}

func TestRecoveryCallsPanicHandler(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	var recovered any
	handler := Recovery(logger, func(w http.ResponseWriter, _ *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/explode", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "boom", recovered)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "/explode")
}
