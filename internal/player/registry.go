package player

import (
	"sync"

	"github.com/kamstrup/intmap"
)

// Player is one connected client and the outcome of its latest session.
type Player struct {
	ID        uint64
	Name      string
	Playing   bool
	Games     int
	LastScore int
	BestScore int
}

// Registry tracks connected players by id.
type Registry struct {
	mu      sync.RWMutex
	players *intmap.Map[uint64, *Player]
	nextID  uint64
}

func NewRegistry() *Registry {
	return &Registry{
		players: intmap.New[uint64, *Player](64),
	}
}

// Add registers a new player and returns it with a fresh id.
func (r *Registry) Add(name string) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p := &Player{ID: r.nextID, Name: name}
	r.players.Put(p.ID, p)
	return p
}

func (r *Registry) Remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players.Del(id)
}

// Get returns a copy of the player, if present.
func (r *Registry) Get(id uint64) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players.Get(id)
	if !ok {
		return Player{}, false
	}
	return *p, true
}

func (r *Registry) SetName(id uint64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players.Get(id); ok && name != "" {
		p.Name = name
	}
}

// StartGame marks the player as playing.
func (r *Registry) StartGame(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players.Get(id); ok {
		p.Playing = true
		p.Games++
	}
}

// EndGame records a finished session's score.
func (r *Registry) EndGame(id uint64, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players.Get(id); ok {
		p.Playing = false
		p.LastScore = score
		if score > p.BestScore {
			p.BestScore = score
		}
	}
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players.Len()
}

func (r *Registry) CountPlaying() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	r.players.ForEach(func(_ uint64, p *Player) bool {
		if p.Playing {
			count++
		}
		return true
	})
	return count
}
