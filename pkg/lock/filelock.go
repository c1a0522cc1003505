// Package lock serializes deploys that target the same project. Two
// wrangler uploads racing on one Cloudflare Pages project can interleave
// their deployments, so each deploy holds a per-project file lock.
package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const (
	pollInterval     = 2 * time.Second
	maxIdentifierLen = 100
)

// FileLock is a held per-project lock. Release it when the deploy ends.
type FileLock struct {
	file *os.File
	path string
}

// sanitize cleans a project name for safe use as a lock filename.
func sanitize(id string) string {
	if id == "" {
		return "unknown"
	}
	result := strings.Map(func(r rune) rune {
		if r < 32 || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, id)
	if len(result) > maxIdentifierLen {
		result = result[:maxIdentifierLen]
	}
	return result
}

// Acquire takes the lock for project under dir, polling until the lock
// frees or ctx expires. Lock files live under dir with owner-only
// permissions.
func Acquire(ctx context.Context, dir, project string) (*FileLock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create lock directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, sanitize(project)+".lock")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	for {
		err = syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return &FileLock{file: file, path: path}, nil
		}
		select {
		case <-ctx.Done():
			file.Close()
			return nil, fmt.Errorf("waiting for deploy lock on %s: %w", project, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

// Release unlocks and closes the lock file.
func (l *FileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return fmt.Errorf("unlock %s: %w", l.path, unlockErr)
	}
	return closeErr
}
