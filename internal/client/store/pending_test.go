package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_Wait(t *testing.T) {
	p := newPending[int]()

	go p.resolve(42, nil)

	v, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	select {
	case <-p.Done():
	default:
		t.Fatal("Done must be closed after resolve")
	}
}

func TestPending_WaitError(t *testing.T) {
	p := newPending[string]()
	boom := errors.New("boom")
	p.resolve("", boom)

	_, err := p.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestPending_WaitContextCanceled(t *testing.T) {
	p := newPending[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Результат остается доступен после отмены ожидания
	p.resolve(7, nil)
	v, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
