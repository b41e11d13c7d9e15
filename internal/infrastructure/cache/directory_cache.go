package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"freelancebid/internal/domain/entity"
	"freelancebid/internal/domain/repository"
	"freelancebid/pkg/logger"
)

const directoryKeyPrefix = "directory:user:"

// DirectoryCache is a read-through Redis cache in front of a UserDirectory.
// Redis failures are logged and the lookup falls through to the next directory.
type DirectoryCache struct {
	rdb  redis.Cmdable
	next repository.UserDirectory
	ttl  time.Duration
}

func NewDirectoryCache(rdb redis.Cmdable, next repository.UserDirectory, ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{
		rdb:  rdb,
		next: next,
		ttl:  ttl,
	}
}

func (c *DirectoryCache) LookupUsers(ctx context.Context, ids []string) (map[string]entity.UserIdentity, error) {
	identities := make(map[string]entity.UserIdentity, len(ids))
	if len(ids) == 0 {
		return identities, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = directoryKeyPrefix + id
	}

	missing := ids
	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		logger.Warn("Directory cache read failed, falling back to store: %v", err)
	} else {
		missing = missing[:0:0]
		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var identity entity.UserIdentity
			if err := json.Unmarshal([]byte(raw), &identity); err != nil {
				missing = append(missing, ids[i])
				continue
			}
			identities[ids[i]] = identity
		}
	}

	if len(missing) == 0 {
		return identities, nil
	}

	fetched, err := c.next.LookupUsers(ctx, missing)
	if err != nil {
		return nil, err
	}

	if len(fetched) == 0 {
		return identities, nil
	}

	pipe := c.rdb.Pipeline()
	for id, identity := range fetched {
		identities[id] = identity
		raw, err := json.Marshal(identity)
		if err != nil {
			continue
		}
		pipe.Set(ctx, directoryKeyPrefix+id, raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Directory cache write failed: %v", err)
	}

	return identities, nil
}
