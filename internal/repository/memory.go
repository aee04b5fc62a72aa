package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type memoryEntry struct {
	game      entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.Mutex
	games map[string]*memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository keeps games in process memory with the same expiry rules as redis.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]*memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookupLocked(game.ID); ok {
		return fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	that.storeLocked(game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookupLocked(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return copyGame(&entry.game), nil
}

func (that *memoryGame) Update(_ context.Context, id string, fn func(game *entity.Game) error) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookupLocked(id)
	if !ok {
		return apperror.ErrGameNotFound
	}

	game := copyGame(&entry.game)
	if err := fn(game); err != nil {
		return err
	}

	that.storeLocked(game)

	return nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookupLocked(id); !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

func (that *memoryGame) lookupLocked(id string) (*memoryEntry, bool) {
	entry, ok := that.games[id]
	if !ok {
		return nil, false
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		delete(that.games, id)
		return nil, false
	}

	return entry, true
}

func (that *memoryGame) storeLocked(game *entity.Game) {
	entry := &memoryEntry{game: *copyGame(game)}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.games[game.ID] = entry
}

func copyGame(game *entity.Game) *entity.Game {
	cp := *game
	cp.Snapshots = append([]entity.Board(nil), game.Snapshots...)
	return &cp
}
