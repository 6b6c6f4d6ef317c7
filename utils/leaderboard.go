package utils

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "antaria:leaderboard:balance"

// Leaderboard keeps a Redis sorted set of balances so rankings survive
// without a full store scan. When Redis is not configured every method is a
// no-op or falls back to sorting the in-memory store, so the rest of the
// engine never has to care.
type Leaderboard struct {
	client *redis.Client
	store  *Store
}

// NewLeaderboard connects to redisURL, or returns a fallback-only instance
// when the URL is empty or unreachable.
func NewLeaderboard(store *Store, redisURL string) *Leaderboard {
	lb := &Leaderboard{store: store}
	if redisURL == "" {
		return lb
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[leaderboard] bad REDIS_URL, running without redis: %v", err)
		return lb
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[leaderboard] redis unreachable, running without it: %v", err)
		_ = client.Close()
		return lb
	}
	lb.client = client
	log.Printf("[leaderboard] redis connected")
	return lb
}

// Update records an account's new balance. Safe on a nil receiver.
func (lb *Leaderboard) Update(accountID int64, balance float64) {
	if lb == nil || lb.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := lb.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  balance,
		Member: strconv.FormatInt(accountID, 10),
	}).Err()
	if err != nil {
		log.Printf("[leaderboard] zadd failed: %v", err)
	}
}

// Top returns the n richest accounts, preferring the Redis ranking and
// falling back to the store when Redis is absent or errors.
func (lb *Leaderboard) Top(n int) []LeaderboardEntry {
	if lb == nil || lb.client == nil {
		return lb.fallback(n)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	zs, err := lb.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		log.Printf("[leaderboard] zrevrange failed, using store: %v", err)
		return lb.fallback(n)
	}
	out := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		id, err := strconv.ParseInt(z.Member.(string), 10, 64)
		if err != nil {
			continue
		}
		entry := LeaderboardEntry{AccountID: id, Balance: z.Score}
		if acct, ok := lb.store.Get(id); ok {
			entry.Username = acct.Username
		}
		out = append(out, entry)
	}
	return out
}

func (lb *Leaderboard) fallback(n int) []LeaderboardEntry {
	if lb == nil || lb.store == nil {
		return nil
	}
	return lb.store.TopBalances(n)
}

// Close releases the Redis connection if one was opened.
func (lb *Leaderboard) Close() {
	if lb != nil && lb.client != nil {
		_ = lb.client.Close()
	}
}
