package server

import (
	"sort"
	"sync"
)

// PresenceRegistry maps a user id to their single live connection. A
// reconnect overwrites the prior mapping. Entries are volatile; the
// registry starts empty on every process restart.
type PresenceRegistry struct {
	mu       sync.RWMutex
	sessions map[int]*Client
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		sessions: make(map[int]*Client),
	}
}

// Register inserts or overwrites the mapping for userId. It reports
// whether a previous connection was replaced.
func (p *PresenceRegistry) Register(userId int, c *Client) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, replaced := p.sessions[userId]
	p.sessions[userId] = c
	return replaced
}

// Unregister removes the mapping for userId if present. Removing an
// absent entry is a no-op.
func (p *PresenceRegistry) Unregister(userId int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.sessions, userId)
}

func (p *PresenceRegistry) Lookup(userId int) (*Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.sessions[userId]
	return c, ok
}

// LookupMany returns the connections for the given user ids in input
// order. Offline users are silently omitted.
func (p *PresenceRegistry) LookupMany(userIds []int) []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clients := make([]*Client, 0, len(userIds))
	for _, id := range userIds {
		if c, ok := p.sessions[id]; ok {
			clients = append(clients, c)
		}
	}

	return clients
}

// OnlineUserIds returns the ids of all registered users in ascending
// order.
func (p *PresenceRegistry) OnlineUserIds() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]int, 0, len(p.sessions))
	for id := range p.sessions {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}
