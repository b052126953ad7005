// Package cache caché en Redis de la estructura de visibilidad, con claves versionadas.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/backoffice-api/internal/application/rolevisibility"
	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
)

const (
	versionKey  = "visibility:version"
	bumpChannel = "visibility.bump"
	keyPrefix   = "visibility:structure"
)

var _ rolevisibility.StructureCache = (*VisibilityCache)(nil)

// VisibilityCache guarda la estructura jerárquica por usuario. Un Bump cambia la versión
// y deja inalcanzables todas las entradas anteriores; el TTL las expira.
type VisibilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVisibilityCache client nil = caché deshabilitada (todas las operaciones son no-op).
func NewVisibilityCache(client *redis.Client, ttl time.Duration) *VisibilityCache {
	return &VisibilityCache{client: client, ttl: ttl}
}

// Version devuelve la versión vigente, inicializándola si falta.
func (c *VisibilityCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

func entryKey(userID string, ver int64) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, userID, ver)
}

// Get busca la estructura bajo la versión ver, leída antes con Version.
// Devuelve (nil, false, nil) si no hay entrada.
func (c *VisibilityCache) Get(ctx context.Context, userID string, ver int64) (*visibility.Structure, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	payload, err := c.client.Get(ctx, entryKey(userID, ver)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s visibility.Structure
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, false, fmt.Errorf("decode cached structure: %w", err)
	}
	return &s, true, nil
}

// Set guarda bajo la versión con la que se hizo el Get fallido. Si hubo un Bump
// entretanto, la entrada queda bajo una versión vieja y nunca se sirve.
func (c *VisibilityCache) Set(ctx context.Context, userID string, ver int64, s *visibility.Structure) error {
	if c == nil || c.client == nil || s == nil {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, entryKey(userID, ver), raw, c.ttl).Err()
}

// Bump invalida todas las estructuras incrementando la versión global y avisa por pub/sub.
func (c *VisibilityCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
}
