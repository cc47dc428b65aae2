package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNormalization(t *testing.T) {
	// Accent and casing variants share one entry.
	assert.Equal(t, Key("Quanto GASTEI este mês?", "s1"), Key("quanto gastei este mes?", "s1"))

	// Different scopes never collide.
	assert.NotEqual(t, Key("quanto gastei", "s1"), Key("quanto gastei", "s2"))
}

func TestGetSet(t *testing.T) {
	c := New(10, time.Minute)

	key := Key("quanto gastei", "s1")
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, "Você gastou R$ 190,90")
	answer, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Você gastou R$ 190,90", answer)
}

func TestTTLExpiry(t *testing.T) {
	c := New(10, time.Minute)
	current := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("k", "resposta")

	current = current.Add(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestAccessDoesNotExtendTTL(t *testing.T) {
	c := New(10, time.Minute)
	current := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("k", "resposta")

	// Repeated reads keep the entry hot for eviction, not for expiry.
	current = current.Add(45 * time.Second)
	_, ok := c.Get("k")
	require.True(t, ok)

	current = current.Add(30 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestSetWithTTLOverridesDefault(t *testing.T) {
	c := New(10, time.Hour)
	current := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("padrao", "resposta")
	c.SetWithTTL("curta", "resposta", time.Minute)

	// The short entry dies on its own clock; the default one survives.
	current = current.Add(2 * time.Minute)
	_, ok := c.Get("curta")
	assert.False(t, ok)
	_, ok = c.Get("padrao")
	assert.True(t, ok)

	// Zero falls back to the cache-wide TTL.
	c.SetWithTTL("padrao2", "resposta", 0)
	current = current.Add(30 * time.Minute)
	_, ok = c.Get("padrao2")
	assert.True(t, ok)
}

func TestBatchEviction(t *testing.T) {
	c := New(10, time.Hour)
	current := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), "resposta")
		current = current.Add(time.Second)
	}
	require.Equal(t, 10, c.Len())

	// Touch the two oldest so they survive the batch.
	c.Get("k0")
	c.Get("k1")
	current = current.Add(time.Second)

	// Inserting at capacity evicts the oldest-accessed 20% in one batch.
	c.Set("k10", "resposta")
	assert.Equal(t, 9, c.Len())

	_, ok := c.Get("k0")
	assert.True(t, ok)
	_, ok = c.Get("k1")
	assert.True(t, ok)
	_, ok = c.Get("k2")
	assert.False(t, ok)
	_, ok = c.Get("k3")
	assert.False(t, ok)
	_, ok = c.Get("k10")
	assert.True(t, ok)
}

func TestOverwriteExistingKey(t *testing.T) {
	c := New(2, time.Hour)

	c.Set("k", "primeira")
	c.Set("k", "segunda")

	answer, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "segunda", answer)
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := New(10, time.Hour)
	c.Set("k", "resposta")
	c.Clear()
	assert.Zero(t, c.Len())
}

func TestDefaults(t *testing.T) {
	c := New(0, 0)
	assert.Equal(t, DefaultCapacity, c.capacity)
	assert.Equal(t, DefaultTTL, c.ttl)
}
