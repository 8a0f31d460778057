package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"take5/internal/model"
)

type RedisConfig struct {
	URL       string
	KeyPrefix string
	// GameTTL bounds how long per-game standings are kept; zero keeps them forever.
	GameTTL time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:       "redis://localhost:6379/0",
		KeyPrefix: "take5:",
		GameTTL:   30 * 24 * time.Hour,
	}
}

// RedisStore keeps running per-player totals in two hashes.
type RedisStore struct {
	client *redis.Client
	cfg    RedisConfig
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(cfg RedisConfig, logger *slog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg, logger), nil
}

// NewRedisStoreWithClient wraps an existing client (for testing)
func NewRedisStoreWithClient(client *redis.Client, cfg RedisConfig, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, cfg: cfg, logger: logger}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) gamesKey() string { return s.cfg.KeyPrefix + "games" }
func (s *RedisStore) playedKey() string { return s.cfg.KeyPrefix + "stats:games" }
func (s *RedisStore) scoreKey() string { return s.cfg.KeyPrefix + "stats:score" }
func (s *RedisStore) gameKey(id string) string { return s.cfg.KeyPrefix + "game:" + id }

// RecordGameResult adds a finished game to the totals. Recording the same
// game twice is a no-op. The game is marked as recorded in the same
// transaction that writes the totals, so a failed write can be retried.
func (s *RedisStore) RecordGameResult(ctx context.Context, gameID string, standings []model.Standing) error {
	data, err := json.Marshal(standings)
	if err != nil {
		return err
	}

	recorded := false
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		seen, err := tx.SIsMember(ctx, s.gamesKey(), gameID).Result()
		if err != nil {
			return err
		}
		if seen {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SAdd(ctx, s.gamesKey(), gameID)
			for _, st := range standings {
				pipe.HIncrBy(ctx, s.playedKey(), st.Name, 1)
				pipe.HIncrBy(ctx, s.scoreKey(), st.Name, int64(st.Score))
			}
			pipe.Set(ctx, s.gameKey(gameID), data, s.cfg.GameTTL)
			return nil
		})
		if err != nil {
			return err
		}
		recorded = true
		return nil
	}, s.gamesKey())
	if err != nil {
		return fmt.Errorf("record game %s: %w", gameID, err)
	}

	if !recorded {
		s.logger.Warn("game result already recorded", slog.String("game_id", gameID))
		return nil
	}
	s.logger.Info("game result recorded",
		slog.String("game_id", gameID),
		slog.Int("player_count", len(standings)),
	)
	return nil
}

// GameStandings returns the stored standings of one game.
func (s *RedisStore) GameStandings(ctx context.Context, gameID string) ([]model.Standing, error) {
	data, err := s.client.Get(ctx, s.gameKey(gameID)).Bytes()
	if err != nil {
		return nil, err
	}
	var standings []model.Standing
	if err := json.Unmarshal(data, &standings); err != nil {
		return nil, err
	}
	return standings, nil
}

func (s *RedisStore) Stats(ctx context.Context) ([]model.PlayerStat, error) {
	played, err := s.client.HGetAll(ctx, s.playedKey()).Result()
	if err != nil {
		return nil, err
	}
	scores, err := s.client.HGetAll(ctx, s.scoreKey()).Result()
	if err != nil {
		return nil, err
	}

	stats := make([]model.PlayerStat, 0, len(played))
	for name, games := range played {
		st := model.PlayerStat{Name: name}
		if st.TotalGames, err = strconv.Atoi(games); err != nil {
			return nil, fmt.Errorf("games for %s: %w", name, err)
		}
		if st.TotalScore, err = strconv.Atoi(scores[name]); err != nil {
			return nil, fmt.Errorf("score for %s: %w", name, err)
		}
		stats = append(stats, st)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalScore != stats[j].TotalScore {
			return stats[i].TotalScore < stats[j].TotalScore
		}
		return stats[i].Name < stats[j].Name
	})
	return stats, nil
}
