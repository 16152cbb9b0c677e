package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// BoardCache wraps a board repository with a Redis cache of single board
// documents. Saves write through; reads fill on a miss. Every entry carries the
// board's UpdatedAt as a version and an entry is never replaced by an older
// one, so a slow reader cannot put back a document a save already replaced.
// Membership listings always go to the base store.
type BoardCache struct {
	base   BoardRepositoryInterface
	redis  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

var _ BoardRepositoryInterface = (*BoardCache)(nil)

func NewBoardCache(base BoardRepositoryInterface, client *redis.Client, ttl time.Duration, logger *log.Logger) *BoardCache {
	if base == nil {
		panic("repository.NewBoardCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardCache{base: base, redis: client, ttl: ttl, logger: logger}
}

func (c *BoardCache) Create(ctx context.Context, board *model.Board) error {
	if err := c.base.Create(ctx, board); err != nil {
		return err
	}
	c.store(ctx, board)
	return nil
}

func (c *BoardCache) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	if board, ok := c.load(ctx, id); ok {
		return board, nil
	}

	board, err := c.base.GetByID(ctx, id)
	if err != nil || board == nil {
		return board, err
	}

	c.store(ctx, board)
	return board, nil
}

func (c *BoardCache) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	return c.base.GetOwned(ctx, ownerID)
}

func (c *BoardCache) GetShared(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	return c.base.GetShared(ctx, userID)
}

// Save writes the saved document to the cache. A failed save evicts instead,
// so the next read goes to the store.
func (c *BoardCache) Save(ctx context.Context, board *model.Board) error {
	if err := c.base.Save(ctx, board); err != nil {
		c.evict(ctx, board.ID)
		return err
	}
	c.store(ctx, board)
	return nil
}

func (c *BoardCache) load(ctx context.Context, id uuid.UUID) (*model.Board, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, boardCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).WithField("board_id", id).Warn("board cache read failed")
			c.evict(ctx, id)
		}
		return nil, false
	}
	var board model.Board
	if err := json.Unmarshal(data, &board); err != nil {
		c.evict(ctx, id)
		return nil, false
	}
	return &board, true
}

func (c *BoardCache) store(ctx context.Context, board *model.Board) {
	if c.redis == nil || c.ttl < time.Millisecond {
		return
	}
	data, err := json.Marshal(board)
	if err != nil {
		return
	}
	keys := []string{boardCacheKey(board.ID), boardVersionKey(board.ID)}
	err = storeIfNewer.Run(ctx, c.redis, keys, data, board.UpdatedAt.UnixMicro(), c.ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.WithError(err).WithField("board_id", board.ID).Warn("board cache write failed")
		c.evict(ctx, board.ID)
	}
}

func (c *BoardCache) evict(ctx context.Context, id uuid.UUID) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, boardCacheKey(id), boardVersionKey(id)).Err()
}

// storeIfNewer sets KEYS[1] to ARGV[1] and KEYS[2] to the version ARGV[2],
// both expiring after ARGV[3] ms, unless the cached version is newer.
var storeIfNewer = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if current and tonumber(current) > tonumber(ARGV[2]) then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

func boardCacheKey(id uuid.UUID) string {
	return "board:" + id.String()
}

func boardVersionKey(id uuid.UUID) string {
	return "board:" + id.String() + ":version"
}
