package customdict

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding the custom words.
const DefaultKey = "improver:custom_dict"

// CustomDict stores custom dictionary words in a Redis set. Words are
// lowercased on the way in.
type CustomDict struct {
	client redis.Cmdable
	key    string
}

// New creates a CustomDict over client. An empty key selects DefaultKey.
func New(client redis.Cmdable, key string) *CustomDict {
	if key == "" {
		key = DefaultKey
	}
	return &CustomDict{client: client, key: key}
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, normalize(word)).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, normalize(word)).Err()
}

// Contains reports whether word is in the custom dictionary.
func (cd *CustomDict) Contains(ctx context.Context, word string) (bool, error) {
	return cd.client.SIsMember(ctx, cd.key, normalize(word)).Result()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}

// Ping checks the Redis connection.
func (cd *CustomDict) Ping(ctx context.Context) error {
	return cd.client.Ping(ctx).Err()
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
