package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/intakelog/internal/adapter/memory"
	"github.com/heartmarshall/intakelog/internal/config"
	"github.com/heartmarshall/intakelog/internal/observability"
	"github.com/heartmarshall/intakelog/internal/service/intake"
	"github.com/heartmarshall/intakelog/internal/store"
	"github.com/heartmarshall/intakelog/internal/transport/rest"
)

type testServer struct {
	*httptest.Server
	store *store.Store
}

func newTestServer(t *testing.T, initialize bool, writeLimit int) *testServer {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics, err := observability.NewMetrics()
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2024, 5, 1, 14, 5, 0, 0, time.UTC) }
	st := store.New(log, func(context.Context) (store.Engine, error) { return memory.New(), nil },
		store.WithClock(clock),
		store.WithLocation(time.UTC),
		store.WithObserver(metrics.Store),
		store.WithListener(metrics.Store.OnEvent),
	)
	if initialize {
		require.NoError(t, st.Initialize(context.Background()))
	}
	t.Cleanup(func() { _ = st.Close() })

	svc := intake.NewService(log, st, config.IntakeConfig{Unit: "ml", MaxAmount: 5000, Location: time.UTC})

	handler := rest.NewRouter(rest.RouterDeps{
		Log:            log,
		Health:         rest.NewHealthHandler(st, config.EngineMemory, "test"),
		Intake:         rest.NewIntakeHandler(svc, log),
		Metrics:        metrics.Handler(),
		CORS:           config.CORSConfig{AllowedOrigins: "http://localhost:8080", AllowedMethods: "GET,POST,DELETE"},
		WriteRateLimit: writeLimit,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: st}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestRouter_AddListTotalClear(t *testing.T) {
	srv := newTestServer(t, true, 0)

	resp, body := srv.do(t, http.MethodPost, "/api/intake", `{"amount":12.5,"drinkType":"water"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var added rest.AddResponse
	require.NoError(t, json.Unmarshal([]byte(body), &added))
	assert.Positive(t, added.Record.ID)
	assert.Equal(t, "2024-05-01", added.Record.Date)
	assert.Equal(t, "02:05 PM", added.Record.Time)
	assert.Equal(t, "ml", added.Unit)
	require.Len(t, added.Records, 1)

	resp, body = srv.do(t, http.MethodPost, "/api/intake", `{"amount":"7.5"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = srv.do(t, http.MethodGet, "/api/intake", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history rest.HistoryResponse
	require.NoError(t, json.Unmarshal([]byte(body), &history))
	require.Len(t, history.Records, 2)
	assert.Less(t, history.Records[0].ID, history.Records[1].ID)
	assert.Nil(t, history.Records[1].DrinkType)

	resp, body = srv.do(t, http.MethodGet, "/api/intake/total?date=2024-05-01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var total rest.TotalResponse
	require.NoError(t, json.Unmarshal([]byte(body), &total))
	assert.Equal(t, 20.0, total.Amount)
	assert.Equal(t, 2, total.Count)

	resp, body = srv.do(t, http.MethodDelete, "/api/intake", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deleted":2}`, body)

	_, body = srv.do(t, http.MethodGet, "/api/intake", "")
	assert.Contains(t, body, `"records":[]`)
}

func TestRouter_ValidationRejectedBeforeStore(t *testing.T) {
	srv := newTestServer(t, true, 0)

	for _, amount := range []string{"0", "-3", `"NaN"`} {
		resp, body := srv.do(t, http.MethodPost, "/api/intake", `{"amount":`+amount+`}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}

	n, err := srv.store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRouter_UninitializedStore(t *testing.T) {
	srv := newTestServer(t, false, 0)

	resp, _ := srv.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, body := srv.do(t, http.MethodPost, "/api/intake", `{"amount":8}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, body)

	resp, _ = srv.do(t, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, true, 0)

	resp, body := srv.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"engine":"memory"`)

	srv.do(t, http.MethodPost, "/api/intake", `{"amount":3}`)

	resp, body = srv.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `intake_store_operations_total{operation="insert",status="success"} 1`)
	assert.Contains(t, body, "intake_records 1")
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, true, 0)

	resp, body := srv.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"not found"}`, body)

	resp, _ = srv.do(t, http.MethodPut, "/api/intake", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_WriteRateLimit(t *testing.T) {
	srv := newTestServer(t, true, 2)

	for i := 0; i < 2; i++ {
		resp, body := srv.do(t, http.MethodPost, "/api/intake", `{"amount":1}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	}

	resp, _ := srv.do(t, http.MethodPost, "/api/intake", `{"amount":1}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// Reads are not limited.
	resp, _ = srv.do(t, http.MethodGet, "/api/intake", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
