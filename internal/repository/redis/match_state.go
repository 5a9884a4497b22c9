package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key patterns for Redis match state.
func stateKey(matchID string) string { return "match:" + matchID + ":state" }

const leaderboardKey = "leaderboard:wins"

// Live state entries expire on their own so an abandoned match does not
// linger forever.
const stateTTL = 24 * time.Hour

// SetMatchState stores the live match state JSON.
func (c *Client) SetMatchState(ctx context.Context, matchID string, state json.RawMessage) error {
	return c.rdb.Set(ctx, stateKey(matchID), []byte(state), stateTTL).Err()
}

// GetMatchState retrieves the live match state JSON.
func (c *Client) GetMatchState(ctx context.Context, matchID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, stateKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get match state: %w", err)
	}
	return json.RawMessage(data), nil
}

// DeleteMatchState removes the live state for a match (on match end).
func (c *Client) DeleteMatchState(ctx context.Context, matchID string) error {
	return c.rdb.Del(ctx, stateKey(matchID)).Err()
}

// RecordWin increments the winning side's entry on the leaderboard.
func (c *Client) RecordWin(ctx context.Context, winner string) error {
	return c.rdb.ZIncrBy(ctx, leaderboardKey, 1, winner).Err()
}

// Leaderboard returns win counts per side, highest first.
func (c *Client) Leaderboard(ctx context.Context) (map[string]int64, error) {
	entries, err := c.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	board := make(map[string]int64, len(entries))
	for _, e := range entries {
		name, ok := e.Member.(string)
		if !ok {
			continue
		}
		board[name] = int64(e.Score)
	}
	return board, nil
}
