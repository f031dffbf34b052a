package store

import (
	"errors"

	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/roads"
)

// ErrNotFound reports a lookup for a name the store has never saved.
var ErrNotFound = errors.New("store: not found")

// Storage defines the interface for map and session persistence.
type Storage interface {
	SaveMap(name string, snap *grid.Snapshot) error
	LoadMap(name string) (*grid.Snapshot, error)
	ListMaps() []string
	DeleteMap(name string) error
	SaveSession(s *roads.Session) error
	LoadSession(id string) (*roads.Session, error)
	Close() error
}
