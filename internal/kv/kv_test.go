package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openBackends returns one fresh Storage per backend.
func openBackends(t *testing.T) map[Backend]Storage {
	t.Helper()
	dir := t.TempDir()
	backends := map[Backend]Storage{}
	for _, b := range ValidBackends {
		s, err := Open(b, filepath.Join(dir, string(b)+".db"))
		require.NoError(t, err, "open %s", b)
		t.Cleanup(func() { s.Close() })
		backends[b] = s
	}
	return backends
}

func TestStorage_Contract(t *testing.T) {
	ctx := context.Background()

	for name, s := range openBackends(t) {
		t.Run(string(name), func(t *testing.T) {
			_, found, err := s.Get(ctx, KeySales)
			require.NoError(t, err)
			assert.False(t, found, "missing key should not be found")

			require.NoError(t, s.Set(ctx, KeySales, []byte(`[]`)))
			got, found, err := s.Get(ctx, KeySales)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, s.Set(ctx, KeySales, []byte(`[{"id":"sale_1"}]`)))
			got, _, err = s.Get(ctx, KeySales)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"sale_1"}]`, string(got), "Set should overwrite")

			require.NoError(t, s.Delete(ctx, KeySales))
			_, found, err = s.Get(ctx, KeySales)
			require.NoError(t, err)
			assert.False(t, found)

			assert.NoError(t, s.Delete(ctx, "never-written"), "deleting a missing key is a no-op")
		})
	}
}

func TestStorage_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, s := range openBackends(t) {
		t.Run(string(name), func(t *testing.T) {
			for i, key := range Keys {
				require.NoError(t, s.Set(ctx, key, []byte{byte('a' + i)}))
			}
			for i, key := range Keys {
				got, found, err := s.Get(ctx, key)
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, []byte{byte('a' + i)}, got)
			}
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'z'

	got, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestBolt_CancelledContext(t *testing.T) {
	b, err := OpenBolt(filepath.Join(t.TempDir(), "bolt.db"))
	require.NoError(t, err)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Set(ctx, "k", []byte("v")), context.Canceled)
	_, _, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", "")
	assert.ErrorContains(t, err, "unknown storage backend")
}
