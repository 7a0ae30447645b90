package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
)

type CacheManager struct {
	client *redis.Client
	ctx    context.Context
}

// SubmissionStatsData is the cached aggregate view of a user's NCA submissions
type SubmissionStatsData struct {
	ByAuthority map[string]int64 `json:"by_authority"`
	ByStatus    map[string]int64 `json:"by_status"`
	Total       int64            `json:"total"`
	CachedAt    time.Time        `json:"cached_at"`
}

var (
	globalCacheManager *CacheManager
	SubmissionStatsTTL = 10 * time.Minute
)

// InitCacheManager initializes the global cache manager
func InitCacheManager() error {
	cfg := config.GetConfig()

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	// Create Redis client
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	globalCacheManager = &CacheManager{
		client: client,
		ctx:    ctx,
	}

	log.Printf("✅ Redis Cache Manager initialized successfully - %s:%s DB:%d",
		cfg.RedisHost, cfg.RedisPort, redisDB)

	return nil
}

// GetCacheManager returns the global cache manager instance
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		if err := InitCacheManager(); err != nil {
			log.Printf("❌ Failed to initialize cache manager: %v", err)
			return nil
		}
	}
	return globalCacheManager
}

// GenerateSubmissionStatsKey generates a cache key for a user's submission stats
func GenerateSubmissionStatsKey(userID uuid.UUID) string {
	return fmt.Sprintf("subs:stats:user:%s", userID)
}

// SetSubmissionStats caches a user's submission statistics
func (cm *CacheManager) SetSubmissionStats(userID uuid.UUID, data *SubmissionStatsData) error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}

	key := GenerateSubmissionStatsKey(userID)
	data.CachedAt = time.Now()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %v", err)
	}

	if err := cm.client.Set(cm.ctx, key, jsonData, SubmissionStatsTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %v", err)
	}

	return nil
}

// GetSubmissionStats retrieves cached submission statistics for a user
func (cm *CacheManager) GetSubmissionStats(userID uuid.UUID) (*SubmissionStatsData, bool) {
	if cm == nil || cm.client == nil {
		return nil, false
	}

	key := GenerateSubmissionStatsKey(userID)

	result, err := cm.client.Get(cm.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false
		}
		log.Printf("❌ Cache error: %v", err)
		return nil, false
	}

	var data SubmissionStatsData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		log.Printf("❌ Failed to unmarshal cache data: %v", err)
		return nil, false
	}

	return &data, true
}

// InvalidateSubmissionStats drops the cached statistics for a user.
// Called after every submission write so stale aggregates never outlive
// the TTL by more than one request.
func (cm *CacheManager) InvalidateSubmissionStats(userID uuid.UUID) error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}

	key := GenerateSubmissionStatsKey(userID)
	if err := cm.client.Del(cm.ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %v", key, err)
	}

	return nil
}

// InvalidateAllSubmissionStats invalidates every cached submission aggregate
func (cm *CacheManager) InvalidateAllSubmissionStats() error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}

	return cm.invalidateByPattern("subs:stats:*")
}

// invalidateByPattern invalidates cache entries matching a pattern
func (cm *CacheManager) invalidateByPattern(pattern string) error {
	iter := cm.client.Scan(cm.ctx, 0, pattern, 0).Iterator()
	var keys []string

	for iter.Next(cm.ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %v", err)
	}

	if len(keys) > 0 {
		if err := cm.client.Del(cm.ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete keys: %v", err)
		}
		log.Printf("🗑️  Cache invalidated: %d keys matching pattern '%s'", len(keys), pattern)
	}

	return nil
}

// TestConnection tests the Redis connection
func (cm *CacheManager) TestConnection() error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}

	return cm.client.Ping(cm.ctx).Err()
}

// Close closes the cache manager connection
func (cm *CacheManager) Close() error {
	if cm != nil && cm.client != nil {
		return cm.client.Close()
	}
	return nil
}
