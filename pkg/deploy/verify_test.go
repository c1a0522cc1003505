package deploy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestVerifier_Check(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantOK  bool
	}{
		{"healthy", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, strings.Repeat("x", 200))
		}, true},
		{"thin content", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "tiny")
		}, false},
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, strings.Repeat("x", 200))
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			v := NewVerifier(1, time.Millisecond, zap.NewNop())
			if got := v.Check(context.Background(), srv.URL).OK(); got != tt.wantOK {
				t.Errorf("Check().OK() = %v, want %v", got, tt.wantOK)
			}
		})
	}
}

func TestVerifier_WaitForDeployment_EventualSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, strings.Repeat("x", 200))
	}))
	defer srv.Close()

	v := NewVerifier(8, time.Millisecond, zap.NewNop())
	result := v.WaitForDeployment(context.Background(), srv.URL)
	if !result.OK() {
		t.Errorf("result = %+v, want OK", result)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("probes = %d, want 3 (stop on first success)", got)
	}
}

func TestVerifier_WaitForDeployment_BoundedAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	v := NewVerifier(4, time.Millisecond, zap.NewNop())
	result := v.WaitForDeployment(context.Background(), srv.URL)
	if result.OK() {
		t.Error("result OK for an always-failing site")
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("probes = %d, want exactly 4", got)
	}
}

func TestVerifier_WaitForDeployment_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewVerifier(8, time.Hour, zap.NewNop())
	done := make(chan CheckResult, 1)
	go func() { done <- v.WaitForDeployment(ctx, srv.URL) }()

	select {
	case result := <-done:
		if result.OK() {
			t.Error("cancelled wait reported OK")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForDeployment did not return after cancellation")
	}
}
