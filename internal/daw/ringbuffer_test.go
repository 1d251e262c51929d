package daw

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferPushPop(t *testing.T) {
	rb := newRingBuffer[int](4)

	assert.True(t, rb.push(1))
	assert.True(t, rb.push(2))

	v, ok := rb.pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = rb.pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = rb.pop()
	assert.False(t, ok)
}

func TestRingBufferFullDropsPush(t *testing.T) {
	rb := newRingBuffer[int](2) // rounds to 2

	assert.True(t, rb.push(1))
	assert.True(t, rb.push(2))
	assert.False(t, rb.push(3), "push on a full buffer must fail, not block")
}

func TestRingBufferDrainLatest(t *testing.T) {
	rb := newRingBuffer[int](8)
	rb.push(1)
	rb.push(2)
	rb.push(3)

	v, ok := rb.drainLatest()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = rb.drainLatest()
	assert.False(t, ok)
}

func TestRingBufferConcurrentSPSC(t *testing.T) {
	rb := newRingBuffer[int](1024)
	const n = 10000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for !rb.push(i) {
			}
		}
	}()

	received := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for len(received) < n {
			if v, ok := rb.pop(); ok {
				received = append(received, v)
			}
		}
	}()

	wg.Wait()
	require.Len(t, received, n)
	for i, v := range received {
		assert.Equal(t, i, v)
	}
}
