package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := withRunID(WithSuppressHeader(context.Background()), 12345)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			assert.True(t, shouldSuppressHeader(ctx), "Goroutine %d: shouldSuppressHeader should be true", i)
			runID, ok := getRunID(ctx)
			assert.True(t, ok, "Goroutine %d: getRunID should return true", i)
			assert.Equal(t, int64(12345), runID)
		})
	}
	wg.Wait()
}

// TestContextDefaults tests the values of an empty context.
func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	_, ok := getRunID(ctx)
	assert.False(t, ok)

	// Values of the wrong type are ignored
	ctx = context.WithValue(ctx, suppressHeaderKey, "yes")
	ctx = context.WithValue(ctx, runIDKey, 7)
	assert.False(t, shouldSuppressHeader(ctx))
	_, ok = getRunID(ctx)
	assert.False(t, ok)
}

// TestContextIsolation tests that derived contexts do not leak into their parents.
func TestContextIsolation(t *testing.T) {
	base := context.Background()
	ctx1 := withRunID(base, 1)
	ctx2 := withRunID(base, 2)
	ctx3 := WithSuppressHeader(base)

	id1, _ := getRunID(ctx1)
	id2, _ := getRunID(ctx2)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
	assert.True(t, shouldSuppressHeader(ctx3))
	assert.False(t, shouldSuppressHeader(ctx1))
	_, ok := getRunID(ctx3)
	assert.False(t, ok)
}
