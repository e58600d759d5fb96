package infrastructure

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 4)
	wp.Start()

	var counter int64
	for i := 0; i < 100; i++ {
		require.NoError(t, wp.Submit(func(ctx context.Context) error {
			atomic.AddInt64(&counter, 1)
			return nil
		}))
	}

	require.NoError(t, wp.Wait())
	assert.Equal(t, int64(100), atomic.LoadInt64(&counter))
}

func TestWorkerPool_ReturnsFirstError(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 1)
	wp.Start()

	boom := errors.New("boom")
	_ = wp.Submit(func(ctx context.Context) error { return boom })

	err := wp.Wait()
	assert.ErrorIs(t, err, boom)
}

func TestWorkerPool_ZeroWorkersFallsBackToOne(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 0)
	wp.Start()

	var ran atomic.Bool
	require.NoError(t, wp.Submit(func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}))
	require.NoError(t, wp.Wait())
	assert.True(t, ran.Load())
}

// BenchmarkWorkerPool_4Workers_FastTasks teste avec 4 workers
func BenchmarkWorkerPool_4Workers_FastTasks(b *testing.B) {
	wp := NewWorkerPool(context.Background(), 4)
	wp.Start()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = wp.Submit(func(ctx context.Context) error {
			_ = 1 + 1
			return nil
		})
	}
	_ = wp.Wait()
}
