package storage

import (
	"context"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type line struct {
	ID       int     `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// setupTestRedis creates a miniredis instance and a client connected to it
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	fs, err := NewFile(t.TempDir(), 0)
	require.NoError(t, err)

	_, client := setupTestRedis(t)

	return map[string]Store{
		"memory":   NewMemory(),
		"file":     fs,
		"redis":    NewRedis(client, WithKeyPrefix("test:")),
		"prefixed": Prefixed(NewMemory(), "session-1"),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var got []line
			ok, err := s.Get(ctx, "luxegear-cart", &got)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, got)

			want := []line{{ID: 1, Price: 100, Quantity: 2}, {ID: 7, Price: 9.5, Quantity: 1}}
			require.NoError(t, s.Set(ctx, "luxegear-cart", want))

			ok, err = s.Get(ctx, "luxegear-cart", &got)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, want, got)

			require.NoError(t, s.Set(ctx, "luxegear-coupon", "LUXE20"))
			code, err := GetOrDefault(ctx, s, "luxegear-coupon", "")
			require.NoError(t, err)
			assert.Equal(t, "LUXE20", code)

			require.NoError(t, s.Remove(ctx, "luxegear-cart"))
			require.NoError(t, s.Remove(ctx, "luxegear-cart"))
			ok, err = s.Get(ctx, "luxegear-cart", &got)
			require.NoError(t, err)
			assert.False(t, ok)

			discount, err := GetOrDefault(ctx, s, "luxegear-discount", 0)
			require.NoError(t, err)
			assert.Equal(t, 0, discount)
		})
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Set(ctx, "", 1), ErrInvalidKey)
			_, err := s.Get(ctx, "", new(int))
			assert.ErrorIs(t, err, ErrInvalidKey)
			assert.ErrorIs(t, s.Remove(ctx, ""), ErrInvalidKey)
		})
	}
}

func TestPrefixedIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a := Prefixed(base, "a")
	b := Prefixed(base, "b")

	require.NoError(t, a.Set(ctx, "luxegear-coupon", "GEAR10"))

	code, err := GetOrDefault(ctx, b, "luxegear-coupon", "")
	require.NoError(t, err)
	assert.Empty(t, code)

	ok, err := base.Get(ctx, "a:luxegear-coupon", &code)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "GEAR10", code)
}

func TestFileKeepsKeysInsideBaseDir(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFile(dir, 0)
	require.NoError(t, err)

	require.NoError(t, fs.Set(context.Background(), "../escape", "x"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "..%2Fescape.json", entries[0].Name())
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileRejectsOversizedValue(t *testing.T) {
	fs, err := NewFile(t.TempDir(), 8)
	require.NoError(t, err)

	err = fs.Set(context.Background(), "big", "this value is far too long")
	assert.Error(t, err)

	ok, err := fs.Get(context.Background(), "big", new(string))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewRedis(client, WithKeyPrefix("luxegear:"), WithTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "luxegear-wishlist", []int{1, 2}))
	assert.True(t, mr.Exists("luxegear:luxegear-wishlist"))
	assert.Equal(t, time.Hour, mr.TTL("luxegear:luxegear-wishlist"))

	mr.FastForward(2 * time.Hour)

	ok, err := s.Get(ctx, "luxegear-wishlist", new([]int))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDialRedis(t *testing.T) {
	mr, _ := setupTestRedis(t)

	s, err := DialRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "k", 42))
	n, err := GetOrDefault(context.Background(), s, "k", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = DialRedis(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestMemoryDecodeError(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", "text"))

	_, err := m.Get(ctx, "k", new(int))
	assert.Error(t, err)
	assert.Equal(t, 1, m.Len())
}
