package boardhub

import (
	"sort"
	"sync"
)

// Registry is the single source of truth for which connections are
// live and which rooms each has joined. Alongside the connection set it
// keeps a secondary index from room id to the connections currently in
// that room, maintained on every join/leave/remove, so broadcasts and
// presence scans touch only the room's connections instead of every
// live one.
//
// Connection handlers run on their own goroutines, so every operation
// takes the mutex.
type Registry struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}
	rooms map[int64]map[*Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[*Conn]struct{}),
		rooms: make(map[int64]map[*Conn]struct{}),
	}
}

// Admit registers a new connection with an empty room set. Admission
// gating happened earlier, at identity verification; Admit itself never
// fails.
func (r *Registry) Admit(userID string) *Conn {
	c := newConn(userID)
	r.mu.Lock()
	r.conns[c] = struct{}{}
	r.mu.Unlock()
	return c
}

// JoinRoom adds the room to the connection's room set. Joining a room
// already joined is a no-op, not an error.
func (r *Registry) JoinRoom(c *Conn, roomID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c]; !ok {
		return
	}
	if _, ok := c.rooms[roomID]; ok {
		return
	}
	c.rooms[roomID] = struct{}{}
	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[*Conn]struct{})
		r.rooms[roomID] = members
	}
	members[c] = struct{}{}
}

// LeaveRoom removes the room from the connection's room set. Leaving a
// room that was never joined is a no-op.
func (r *Registry) LeaveRoom(c *Conn, roomID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := c.rooms[roomID]; !ok {
		return
	}
	delete(c.rooms, roomID)
	r.dropFromIndex(c, roomID)
}

// Remove deletes the connection and returns the rooms it had joined,
// so the caller can rebroadcast presence to each of them.
func (r *Registry) Remove(c *Conn) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c]; !ok {
		return nil
	}
	delete(r.conns, c)
	joined := make([]int64, 0, len(c.rooms))
	for roomID := range c.rooms {
		joined = append(joined, roomID)
		r.dropFromIndex(c, roomID)
	}
	c.rooms = make(map[int64]struct{})
	sort.Slice(joined, func(i, j int) bool { return joined[i] < joined[j] })
	return joined
}

func (r *Registry) dropFromIndex(c *Conn, roomID int64) {
	if members, ok := r.rooms[roomID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
}

// ConnsInRoom snapshots the connections currently in a room.
func (r *Registry) ConnsInRoom(roomID int64) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[roomID]
	conns := make([]*Conn, 0, len(members))
	for c := range members {
		conns = append(conns, c)
	}
	return conns
}

// ConnsForUser snapshots the connections owned by userID that are in
// the given room. Zero, one, or many: a user with several tabs in the
// same room has one entry per tab.
func (r *Registry) ConnsForUser(roomID int64, userID string) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var conns []*Conn
	for c := range r.rooms[roomID] {
		if c.UserID == userID {
			conns = append(conns, c)
		}
	}
	return conns
}

// UserIDsInRoom returns the distinct users present in a room, sorted
// for deterministic presence snapshots.
func (r *Registry) UserIDsInRoom(roomID int64) []string {
	r.mu.RLock()
	seen := make(map[string]struct{})
	for c := range r.rooms[roomID] {
		seen[c.UserID] = struct{}{}
	}
	r.mu.RUnlock()

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Rooms returns the room set of one connection.
func (r *Registry) Rooms(c *Conn) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	joined := make([]int64, 0, len(c.rooms))
	for roomID := range c.rooms {
		joined = append(joined, roomID)
	}
	sort.Slice(joined, func(i, j int) bool { return joined[i] < joined[j] })
	return joined
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
