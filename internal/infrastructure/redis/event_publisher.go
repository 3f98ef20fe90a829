package redis

import (
	"context"
	"encoding/json"

	"dealership/internal/domain"

	"github.com/go-redis/redis/v8"
)

// auctionEventsChannel is shared by all instances; events carry their
// auction id so listeners can fan out per auction.
const auctionEventsChannel = "auction_events"

type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (r *RedisEventPublisher) PublishAuctionEvent(ctx context.Context, event *domain.AuctionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, auctionEventsChannel, payload).Err()
}
