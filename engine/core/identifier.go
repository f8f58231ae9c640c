package core

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	identifierMu sync.Mutex
	owners       []interface{}
)

// IdentifierAquireNewID hands out the lowest free id for the owner.
func IdentifierAquireNewID(owner interface{}) uint32 {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	for i := range owners {
		// Existing free spot. Take it.
		if owners[i] == nil {
			owners[i] = owner
			return uint32(i)
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	owners = append(owners, owner)
	return uint32(len(owners) - 1)
}

func IdentifierReleaseID(id uint32) error {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if int(id) >= len(owners) {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d): %w", id, len(owners), ErrInvalidID)
	}
	// Just zero out the entry, making it available for use.
	owners[id] = nil
	return nil
}

// NewResourceName returns a unique name for generated resources, e.g. "texture.5f0c...".
func NewResourceName(prefix string) string {
	return fmt.Sprintf("%s.%s", prefix, uuid.New().String())
}
