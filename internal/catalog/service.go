package catalog

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
)

// Cache is the optional snapshot cache in front of the upstream API.
type Cache interface {
	Get(ctx context.Context) ([]models.Game, error)
	Set(ctx context.Context, games []models.Game) error
}

// Service holds the current Steam game snapshot and notifies subscribers
// when it changes. Instances are constructed at startup and injected; there
// is no package-level singleton.
type Service struct {
	client *Client
	cache  Cache

	mu     sync.RWMutex
	games  []models.Game
	loaded bool
	subs   []func([]models.Game)
}

func NewService(client *Client, cache Cache) *Service {
	return &Service{client: client, cache: cache}
}

// Subscribe registers a handler called with the new snapshot after every
// refresh. Not safe to call concurrently with Refresh.
func (s *Service) Subscribe(fn func([]models.Game)) {
	s.subs = append(s.subs, fn)
}

// Load populates the snapshot from the cache when possible, falling back to
// a full upstream refresh.
func (s *Service) Load(ctx context.Context) error {
	if s.cache != nil {
		if games, err := s.cache.Get(ctx); err == nil && len(games) > 0 {
			s.swap(games, true)
			return nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the upstream list, transforms it, and publishes the new
// snapshot. On upstream failure the fallback placeholder is published and
// the error returned; the snapshot stays marked as not loaded so a later
// Load tries again.
func (s *Service) Refresh(ctx context.Context) error {
	raw, err := s.client.FetchGames(ctx)
	if err != nil {
		s.swap(fallbackGames(), false)
		return err
	}

	games := transform(raw)
	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, games); cacheErr != nil {
			log.Printf("catalog cache set: %v", cacheErr)
		}
	}
	s.swap(games, true)
	return nil
}

func (s *Service) swap(games []models.Game, loaded bool) {
	s.mu.Lock()
	s.games = games
	s.loaded = loaded
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(games)
	}
}

// Games returns the current snapshot.
func (s *Service) Games() []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Game, len(s.games))
	copy(out, s.games)
	return out
}

// Loaded reports whether the snapshot came from a successful fetch rather
// than the offline fallback.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// GameByID finds a game, tolerating both "steam_<id>" and bare "<id>" forms.
func (s *Service) GameByID(id string) (models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bare := strings.TrimPrefix(id, "steam_")
	for _, g := range s.games {
		if g.ID == id || g.SteamID == id || g.SteamID == bare || g.ID == "steam_"+id {
			return g, true
		}
	}
	return models.Game{}, false
}

// Top returns the limit highest-rated games.
func (s *Service) Top(limit int) []models.Game {
	games := s.Games()
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Rating > games[j].Rating
	})
	if limit > 0 && limit < len(games) {
		games = games[:limit]
	}
	return games
}
