package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.Use(RequestMetrics)
	r.Get("/game/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found"}`))
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/game/{id}", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/game/abc", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/game/{id}", line["path"])
	assert.EqualValues(t, 404, line["status"])
	assert.EqualValues(t, len(`{"error":"not_found"}`), line["bytes"])

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/game/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestGameCounters(t *testing.T) {
	before := testutil.ToFloat64(guesses.WithLabelValues("correct"))
	RecordGuess("correct")
	assert.Equal(t, before+1, testutil.ToFloat64(guesses.WithLabelValues("correct")))

	before = testutil.ToFloat64(gamesFinished.WithLabelValues("won"))
	RecordGameFinished("won")
	assert.Equal(t, before+1, testutil.ToFloat64(gamesFinished.WithLabelValues("won")))
}
