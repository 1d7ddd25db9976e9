package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// SubHeaderKey caches the my-page header of a user
func SubHeaderKey(userID uint) string {
	return "subheader:user:" + strconv.FormatUint(uint64(userID), 10)
}

// MileageUsageKey caches one page of the usage history
func MileageUsageKey(userID uint, page int) string {
	return MileageUsagePrefix(userID) + "page:" + strconv.Itoa(page)
}

// MileageUsagePrefix matches every cached usage page of a user
func MileageUsagePrefix(userID uint) string {
	return "mileage:user:" + strconv.FormatUint(uint64(userID), 10) + ":"
}

// WishlistKey caches one page of the wishlist
func WishlistKey(userID uint, page int) string {
	return WishlistPrefix(userID) + "page:" + strconv.Itoa(page)
}

// WishlistPrefix matches every cached wishlist page of a user
func WishlistPrefix(userID uint) string {
	return "wishlist:user:" + strconv.FormatUint(uint64(userID), 10) + ":"
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves as a permanent miss.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// DeleteCachePrefix deletes every key starting with prefix, walking the keyspace with SCAN
func DeleteCachePrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	if rdb == nil {
		return nil
	}
	var keys []string // Keys to delete
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return DeleteCache(ctx, rdb, keys...)
}
