package boardhub

import (
	"log"

	"drawspace/backend/internal/models"
)

// placeholderName is used for users whose profile lookup failed.
// Presence degrades per-entry instead of aborting the whole snapshot.
const placeholderName = "Unknown"

// ProfileSource resolves user IDs to display metadata in one batched
// call. storage.Service satisfies it.
type ProfileSource interface {
	GetUsersByIDs(ids []string) ([]models.User, error)
}

// Presence derives the participant list of a room from the registry.
// Snapshots are recomputed on demand and never cached: the registry is
// the only state consulted.
type Presence struct {
	registry *Registry
	profiles ProfileSource
}

func NewPresence(registry *Registry, profiles ProfileSource) *Presence {
	return &Presence{registry: registry, profiles: profiles}
}

// Resolve returns the deduplicated, userID-ordered participant list
// for a room. A user holding several connections in the room appears
// once.
func (p *Presence) Resolve(roomID int64) []models.RoomUser {
	ids := p.registry.UserIDsInRoom(roomID)
	if len(ids) == 0 {
		return []models.RoomUser{}
	}

	names := make(map[string]string, len(ids))
	profiles, err := p.profiles.GetUsersByIDs(ids)
	if err != nil {
		log.Printf("boardhub: profile lookup for room %d failed: %v", roomID, err)
	} else {
		for _, u := range profiles {
			names[u.ID] = u.Name
		}
	}

	users := make([]models.RoomUser, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok || name == "" {
			name = placeholderName
		}
		users = append(users, models.RoomUser{ID: id, Name: name})
	}
	return users
}
