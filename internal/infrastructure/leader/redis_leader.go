package leader

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderKey = "sweep_leader"

// Both scripts check ownership first so an instance can never extend or
// delete a leadership it already lost.
const (
	extendScript = `
        if redis.call("GET", KEYS[1]) == ARGV[1] then
            return redis.call("EXPIRE", KEYS[1], ARGV[2])
        end
        return 0
    `
	releaseScript = `
        if redis.call("GET", KEYS[1]) == ARGV[1] then
            return redis.call("DEL", KEYS[1])
        end
        return 0
    `
)

// RedisLeaderElection elects the single instance that runs the scheduled
// auction sweep. Any instance may still trigger a sweep on demand; the CAS
// status transition keeps concurrent sweeps safe, leadership just avoids
// redundant work.
type RedisLeaderElection struct {
	client *redis.Client
	ttl    time.Duration

	mu            sync.Mutex
	stopHeartbeat context.CancelFunc
}

func NewRedisLeaderElection(client *redis.Client, ttl time.Duration) *RedisLeaderElection {
	return &RedisLeaderElection{
		client: client,
		ttl:    ttl,
	}
}

// BecomeLeader attempts to take the leadership key. On success a heartbeat
// goroutine keeps the key alive until the leadership is lost or released.
func (r *RedisLeaderElection) BecomeLeader(ctx context.Context, instanceID string) (bool, error) {
	acquired, err := r.client.SetNX(ctx, leaderKey, instanceID, r.ttl).Result()
	if err != nil || !acquired {
		return false, err
	}

	hbCtx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	if r.stopHeartbeat != nil {
		r.stopHeartbeat()
	}
	r.stopHeartbeat = cancel
	r.mu.Unlock()

	go r.heartbeat(hbCtx, instanceID)
	return true, nil
}

func (r *RedisLeaderElection) IsLeader(ctx context.Context, instanceID string) (bool, error) {
	currentLeader, err := r.client.Get(ctx, leaderKey).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return currentLeader == instanceID, nil
}

// ReleaseLeadership stops the heartbeat and deletes the key if this instance
// still holds it. Safe to call when not leading.
func (r *RedisLeaderElection) ReleaseLeadership(ctx context.Context, instanceID string) error {
	r.mu.Lock()
	if r.stopHeartbeat != nil {
		r.stopHeartbeat()
		r.stopHeartbeat = nil
	}
	r.mu.Unlock()

	return r.client.Eval(ctx, releaseScript, []string{leaderKey}, instanceID).Err()
}

// heartbeat extends the key at a third of its TTL and exits as soon as the
// extension is refused, fails, or the leadership is released.
func (r *RedisLeaderElection) heartbeat(ctx context.Context, instanceID string) {
	ticker := time.NewTicker(r.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evalCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			result, err := r.client.Eval(evalCtx, extendScript, []string{leaderKey},
				instanceID, int(r.ttl.Seconds())).Result()
			cancel()

			if err != nil {
				return
			}
			if extended, ok := result.(int64); !ok || extended == 0 {
				return
			}
		}
	}
}
