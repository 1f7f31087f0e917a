package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

type (
	// MemoryRetriever is an in-process Retriever holding fragments per
	// collection
	MemoryRetriever struct {
		collections map[string][]string
		mu          sync.RWMutex
	}

	// RedisRetriever retrieves fragments from Redis lists, one list per
	// collection
	RedisRetriever struct {
		client *redis.Client
		prefix string
	}
)

const redisCollectionPrefix = "rag:"

func NewMemoryRetriever() *MemoryRetriever {
	return &MemoryRetriever{
		collections: map[string][]string{},
	}
}

// Add appends fragments to a collection
func (r *MemoryRetriever) Add(collection string, fragments ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[collection] = append(r.collections[collection], fragments...)
}

func (r *MemoryRetriever) Retrieve(
	_ context.Context, collection, query string, topK int,
) ([]string, error) {
	r.mu.RLock()
	fragments := r.collections[collection]
	r.mu.RUnlock()
	return rankFragments(fragments, query, topK), nil
}

func NewRedisRetriever(client *redis.Client) *RedisRetriever {
	return &RedisRetriever{
		client: client,
		prefix: redisCollectionPrefix,
	}
}

// Add appends fragments to a collection's list
func (r *RedisRetriever) Add(
	ctx context.Context, collection string, fragments ...string,
) error {
	values := make([]any, len(fragments))
	for i, f := range fragments {
		values[i] = f
	}
	return r.client.RPush(ctx, r.key(collection), values...).Err()
}

func (r *RedisRetriever) Retrieve(
	ctx context.Context, collection, query string, topK int,
) ([]string, error) {
	fragments, err := r.client.LRange(ctx, r.key(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("fragment lookup failed: %w", err)
	}
	return rankFragments(fragments, query, topK), nil
}

func (r *RedisRetriever) key(collection string) string {
	return r.prefix + collection
}

// rankFragments orders fragments by query term overlap, breaking ties by
// stored order, and returns at most topK of them
func rankFragments(fragments []string, query string, topK int) []string {
	terms := strings.Fields(strings.ToLower(query))

	type scored struct {
		fragment string
		score    int
		index    int
	}

	ranked := make([]scored, 0, len(fragments))
	for i, f := range fragments {
		lower := strings.ToLower(f)
		score := 0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				score++
			}
		}
		ranked = append(ranked, scored{fragment: f, score: score, index: i})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}

	result := make([]string, len(ranked))
	for i, s := range ranked {
		result[i] = s.fragment
	}
	return result
}
