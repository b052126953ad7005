package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
)

func newTestCache(t *testing.T, ttl time.Duration) (*VisibilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVisibilityCache(client, ttl), mr
}

func sampleStructure() *visibility.Structure {
	return &visibility.Structure{
		Companies: map[string]visibility.CompanyNode{
			"c1": {Name: "Empresa", Brands: map[string]visibility.BrandNode{
				"b1": {Name: "Marca", Branches: map[string]visibility.BranchNode{"s1": {Name: "Centro"}}},
			}},
		},
	}
}

func TestVisibilityCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)

	_, ok, err := c.Get(ctx, "u1", ver)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "u1", ver, sampleStructure()))
	assert.True(t, mr.Exists("visibility:structure:u1:1"))

	got, ok, err := c.Get(ctx, "u1", ver)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Centro", got.Companies["c1"].Brands["b1"].Branches["s1"].Name)
}

func TestVisibilityCache_BumpInvalida(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	ver, err := c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "u1", ver, sampleStructure()))

	require.NoError(t, c.Bump(ctx))

	ver, err = c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ver)
	_, ok, err := c.Get(ctx, "u1", ver)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Lectura que falla en N, Bump concurrente y escritura tardía del árbol viejo:
// la entrada queda bajo N y la versión vigente sigue sin acierto.
func TestVisibilityCache_SetTrasBumpNoSeSirve(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	readVer, err := c.Version(ctx)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, "u1", readVer)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Bump(ctx))

	stale := &visibility.Structure{HasFullAccess: true, Companies: map[string]visibility.CompanyNode{"old": {Name: "Vieja"}}}
	require.NoError(t, c.Set(ctx, "u1", readVer, stale))

	current, err := c.Version(ctx)
	require.NoError(t, err)
	got, ok, err := c.Get(ctx, "u1", current)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestVisibilityCache_BumpPublica(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()}).Subscribe(ctx, bumpChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Bump(ctx))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", msg.Payload)
}

func TestVisibilityCache_TTL(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()
	ver, err := c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "u1", ver, sampleStructure()))

	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, "u1", ver)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVisibilityCache_SinCliente(t *testing.T) {
	c := NewVisibilityCache(nil, time.Minute)
	ctx := context.Background()

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "u1", ver, sampleStructure()))
	_, ok, err := c.Get(ctx, "u1", ver)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Bump(ctx))
}
