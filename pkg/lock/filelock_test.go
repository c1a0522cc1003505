package lock

import (
	"context"
	"testing"
	"time"
)

func TestAcquireRelease(t *testing.T) {
	dir := t.TempDir()
	fl, err := Acquire(context.Background(), dir, "acme-site")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := fl.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}

func TestAcquire_HeldLockTimesOut(t *testing.T) {
	dir := t.TempDir()
	fl, err := Acquire(context.Background(), dir, "acme-site")
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	defer fl.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := Acquire(ctx, dir, "acme-site"); err == nil {
		t.Fatal("second Acquire() expected timeout while lock held")
	}
}

func TestAcquire_DifferentProjectsDoNotContend(t *testing.T) {
	dir := t.TempDir()
	a, err := Acquire(context.Background(), dir, "acme-site")
	if err != nil {
		t.Fatalf("Acquire(acme-site) error = %v", err)
	}
	defer a.Release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	b, err := Acquire(ctx, dir, "other-site")
	if err != nil {
		t.Fatalf("Acquire(other-site) error = %v", err)
	}
	b.Release()
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"acme-site", "acme-site"},
		{"", "unknown"},
		{"a/b\\c", "a_b_c"},
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRelease_Nil(t *testing.T) {
	var fl *FileLock
	if err := fl.Release(); err != nil {
		t.Errorf("Release() on nil lock = %v", err)
	}
}
