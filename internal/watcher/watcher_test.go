package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelabs/ragdex/internal/core/domain"
)

func TestNewRequiresTrigger(t *testing.T) {
	_, err := New(time.Millisecond, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAddMissingRoot(t *testing.T) {
	w, err := New(time.Millisecond, func() {})
	require.NoError(t, err)
	defer w.Close()

	err = w.Add(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, domain.ErrMissingFile))
}

func TestDebouncedTrigger(t *testing.T) {
	dir := t.TempDir()

	var fires atomic.Int32
	w, err := New(50*time.Millisecond, func() { fires.Add(1) })
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	// A burst of writes collapses into one trigger.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte{byte(i)}, 0o600))
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fires.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Quiet period: no further triggers.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), fires.Load())

	cancel()
	<-done
}

func TestRunStopsOnContextCancel(t *testing.T) {
	w, err := New(time.Second, func() {})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
