package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/intakelog/pkg/ctxutil"
)

func TestRequestID_Generates(t *testing.T) {
	var gotID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ctxutil.RequestIDFromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(gotID); err != nil {
		t.Fatalf("expected generated UUID, got %q", gotID)
	}
	if rec.Header().Get(RequestIDHeader) != gotID {
		t.Errorf("response header = %q, want %q", rec.Header().Get(RequestIDHeader), gotID)
	}
}

func TestRequestID_ReusesClientID(t *testing.T) {
	var gotID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ctxutil.RequestIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotID != "client-id-1" {
		t.Errorf("context ID = %q, want %q", gotID, "client-id-1")
	}
	if rec.Header().Get(RequestIDHeader) != "client-id-1" {
		t.Errorf("response header = %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestID_ReplacesOversizedID(t *testing.T) {
	var gotID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ctxutil.RequestIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if _, err := uuid.Parse(gotID); err != nil {
		t.Errorf("expected oversized ID to be replaced, got %q", gotID)
	}
}
