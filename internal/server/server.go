package server

import (
	"log"
	"sync"

	"github.com/semz-ui/mercial-backend/internal/database"
	"github.com/semz-ui/mercial-backend/internal/stats"
	"github.com/teris-io/shortid"
)

// ChatServer owns the realtime state of the process: the set of live
// connections and the presence registry mapping users to them. All
// durable state lives behind the repository.
type ChatServer struct {
	log         *log.Logger
	db          database.MessengerRepository
	stats       stats.StatsProvider
	presence    *PresenceRegistry
	clients     map[*Client]struct{}
	clientsLock sync.Mutex
	// genExternalId is swappable in tests
	genExternalId func() (string, error)
}

func NewChatServer(logger *log.Logger, db database.MessengerRepository, su stats.StatsProvider) (*ChatServer, error) {
	sid, err := shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		return nil, err
	}

	su.RegisterMetric("NumActiveClients")
	su.RegisterMetric("NumOnlineUsers")
	su.RegisterMetric("NumMessagesSent")
	su.RegisterMetric("NumMessagesSeen")

	return &ChatServer{
		log:           logger,
		db:            db,
		stats:         su,
		presence:      NewPresenceRegistry(),
		clients:       make(map[*Client]struct{}),
		genExternalId: sid.Generate,
	}, nil
}

// RegisterClient adds a connection to the server. Connections with a
// known user are entered into the presence registry; the updated online
// set is broadcast to every live connection either way.
func (cs *ChatServer) RegisterClient(c *Client) {
	cs.clientsLock.Lock()
	cs.clients[c] = struct{}{}
	cs.clientsLock.Unlock()
	cs.stats.Incr("NumActiveClients")

	if c.registered {
		cs.log.Printf("registering presence for user %d", c.userId)
		if !cs.presence.Register(c.userId, c) {
			cs.stats.Incr("NumOnlineUsers")
		}
	}

	cs.broadcastOnlineUsers()
}

// UnregisterClient removes a connection. The presence entry is only
// removed when it still points at this connection, so a reconnect that
// already overwrote the mapping is left intact.
func (cs *ChatServer) UnregisterClient(c *Client) {
	cs.clientsLock.Lock()
	if _, ok := cs.clients[c]; !ok {
		cs.clientsLock.Unlock()
		return
	}
	delete(cs.clients, c)
	cs.clientsLock.Unlock()
	cs.stats.Decr("NumActiveClients")

	if c.registered {
		if cur, ok := cs.presence.Lookup(c.userId); ok && cur == c {
			cs.log.Printf("removing presence for user %d", c.userId)
			cs.presence.Unregister(c.userId)
			cs.stats.Decr("NumOnlineUsers")
		}
	}

	cs.broadcastOnlineUsers()
}

// broadcastOnlineUsers pushes the current online-user set to all live
// connections, registered or not.
func (cs *ChatServer) broadcastOnlineUsers() {
	ev := OnlineUsersEvent(cs.presence.OnlineUserIds())

	cs.clientsLock.Lock()
	defer cs.clientsLock.Unlock()
	for c := range cs.clients {
		c.queueEvent(ev)
	}
}

// Shutdown stops every live connection.
func (cs *ChatServer) Shutdown() {
	cs.log.Println("shutting down chat server")

	cs.clientsLock.Lock()
	defer cs.clientsLock.Unlock()
	for c := range cs.clients {
		c.stopClient()
	}
}
