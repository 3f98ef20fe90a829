package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisFloorCache keeps the current floor and bid count per auction so the
// public listing does not hit MySQL on every poll. MySQL stays authoritative;
// entries expire so a stale cache self-heals.
type RedisFloorCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFloorCache(client *redis.Client) *RedisFloorCache {
	return &RedisFloorCache{
		client: client,
		ttl:    time.Hour,
	}
}

func floorKey(auctionID string) string {
	return fmt.Sprintf("auction:%s:floor", auctionID)
}

func (r *RedisFloorCache) SetFloor(ctx context.Context, auctionID string, currentBid float64, totalBids int) error {
	key := floorKey(auctionID)
	if err := r.client.HSet(ctx, key,
		"current_bid", strconv.FormatFloat(currentBid, 'f', 2, 64),
		"total_bids", totalBids,
	).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, r.ttl).Err()
}

func (r *RedisFloorCache) GetFloor(ctx context.Context, auctionID string) (float64, int, bool, error) {
	result, err := r.client.HMGet(ctx, floorKey(auctionID), "current_bid", "total_bids").Result()
	if err != nil {
		return 0, 0, false, err
	}
	if result[0] == nil || result[1] == nil {
		return 0, 0, false, nil
	}

	currentBid, err := strconv.ParseFloat(result[0].(string), 64)
	if err != nil {
		return 0, 0, false, err
	}
	totalBids, err := strconv.Atoi(result[1].(string))
	if err != nil {
		return 0, 0, false, err
	}
	return currentBid, totalBids, true, nil
}

func (r *RedisFloorCache) Evict(ctx context.Context, auctionID string) error {
	return r.client.Del(ctx, floorKey(auctionID)).Err()
}
