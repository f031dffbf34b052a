package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/roads"
)

// JSONStore persists maps and sessions in a single local JSON file.
// Every mutation rewrites the whole file; the store is meant for one
// process at a time.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

type jsonData struct {
	Maps     map[string]*grid.Snapshot `json:"maps"`
	Sessions map[string]*roads.Session `json:"sessions"`
}

// NewJSONStore opens or creates the store file at filePath.
func NewJSONStore(filePath string) (*JSONStore, error) {
	s := &JSONStore{
		filePath: filePath,
		data: &jsonData{
			Maps:     make(map[string]*grid.Snapshot),
			Sessions: make(map[string]*roads.Session),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := s.loadFromFile(); err != nil {
			return nil, fmt.Errorf("load store: %w", err)
		}
	} else {
		if err := s.saveToFile(); err != nil {
			return nil, fmt.Errorf("create store file: %w", err)
		}
	}

	return s, nil
}

func (s *JSONStore) loadFromFile() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, s.data); err != nil {
		return err
	}
	if s.data.Maps == nil {
		s.data.Maps = make(map[string]*grid.Snapshot)
	}
	if s.data.Sessions == nil {
		s.data.Sessions = make(map[string]*roads.Session)
	}
	return nil
}

func (s *JSONStore) saveToFile() error {
	s.mutex.RLock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0644)
}

// SaveMap stores a snapshot under name, overwriting any previous one.
func (s *JSONStore) SaveMap(name string, snap *grid.Snapshot) error {
	s.mutex.Lock()
	s.data.Maps[name] = snap
	s.mutex.Unlock()

	return s.saveToFile()
}

// LoadMap returns the snapshot saved under name.
func (s *JSONStore) LoadMap(name string) (*grid.Snapshot, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snap, ok := s.data.Maps[name]
	if !ok {
		return nil, fmt.Errorf("%w: map %q", ErrNotFound, name)
	}
	return snap, nil
}

// ListMaps returns the saved map names in sorted order.
func (s *JSONStore) ListMaps() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	names := make([]string, 0, len(s.data.Maps))
	for name := range s.data.Maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeleteMap removes a saved map.
func (s *JSONStore) DeleteMap(name string) error {
	s.mutex.Lock()
	_, ok := s.data.Maps[name]
	delete(s.data.Maps, name)
	s.mutex.Unlock()

	if !ok {
		return fmt.Errorf("%w: map %q", ErrNotFound, name)
	}
	return s.saveToFile()
}

// SaveSession stores a placement session keyed by its id.
func (s *JSONStore) SaveSession(sess *roads.Session) error {
	s.mutex.Lock()
	s.data.Sessions[sess.ID] = sess
	s.mutex.Unlock()

	return s.saveToFile()
}

// LoadSession returns the session with the given id.
func (s *JSONStore) LoadSession(id string) (*roads.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sess, ok := s.data.Sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %q", ErrNotFound, id)
	}
	return sess, nil
}

// Close closes the store (no-op for the JSON store).
func (s *JSONStore) Close() error {
	return nil
}
