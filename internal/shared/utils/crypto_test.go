package utils

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	hashed, err := h.Hash(ctx, "MotDePasse1")
	require.NoError(t, err)
	assert.NotEqual(t, "MotDePasse1", hashed)

	ok, err := h.Compare(ctx, hashed, "MotDePasse1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(ctx, hashed, "autre")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	_, err := h.Compare(context.Background(), "pas-un-hash", "x")
	assert.Error(t, err)
}

func TestHasher_CancelledWhileWaiting(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	require.True(t, h.sem.TryAcquire(1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasher_ConcurrentUse(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Hash(context.Background(), "concurrent")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "JDUPONT", NormalizeKey("  jDupont "))
	assert.Nil(t, TrimOptional(nil))
	empty := "   "
	assert.Nil(t, TrimOptional(&empty))
	v := " a "
	assert.Equal(t, "a", *TrimOptional(&v))
}
