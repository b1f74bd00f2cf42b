// Package savefile persists the progress record. The record is encoded as
// YAML and stored through gdata, which picks the platform's data
// directory. Failures never stop the game: loading falls back to defaults
// and saving logs and continues with the in-memory record.
package savefile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickrogue/internal/progress"
)

// AppName is the gdata application directory.
const AppName = "brickrogue"

const recordProperty = "progress"

// Store loads and saves the progress record.
type Store interface {
	Load() (*progress.SaveState, error)
	Save(*progress.SaveState) error
	Reset() (*progress.SaveState, error)
}

// GdataStore keeps one record per profile in a gdata manager. A nil
// manager runs in memory-only mode: loads return defaults and saves are
// dropped.
type GdataStore struct {
	m      *gdata.Manager
	object string
}

// Open opens the gdata manager for the application and returns the store
// for the given profile.
func Open(profile string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("savefile: open data dir: %w", err)
	}
	return NewGdataStore(m, profile), nil
}

// NewGdataStore wraps an existing manager.
func NewGdataStore(m *gdata.Manager, profile string) *GdataStore {
	return &GdataStore{m: m, object: ObjectName(profile)}
}

// Load reads the record and merges it over the defaults. A missing
// record is not an error. A corrupt one returns defaults and the error.
func (s *GdataStore) Load() (*progress.SaveState, error) {
	if s.m == nil || !s.m.ObjectPropExists(s.object, recordProperty) {
		return progress.DefaultSave(), nil
	}
	data, err := s.m.LoadObjectProp(s.object, recordProperty)
	if err != nil {
		return progress.DefaultSave(), fmt.Errorf("savefile: load %s: %w", s.object, err)
	}
	return Decode(data)
}

// Save writes the record.
func (s *GdataStore) Save(state *progress.SaveState) error {
	if s.m == nil {
		return nil
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.m.SaveObjectProp(s.object, recordProperty, data); err != nil {
		return fmt.Errorf("savefile: save %s: %w", s.object, err)
	}
	return nil
}

// Reset overwrites the record with defaults and returns them.
func (s *GdataStore) Reset() (*progress.SaveState, error) {
	def := progress.DefaultSave()
	return def, s.Save(def)
}

// MemoryStore keeps the encoded record in memory. It is used for SSH
// sessions without a profile and in tests.
type MemoryStore struct {
	data []byte
	// FailSaves makes Save return an error, to exercise degraded paths.
	FailSaves bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the stored record, or returns defaults when empty.
func (s *MemoryStore) Load() (*progress.SaveState, error) {
	if len(s.data) == 0 {
		return progress.DefaultSave(), nil
	}
	return Decode(s.data)
}

// Save encodes and keeps the record.
func (s *MemoryStore) Save(state *progress.SaveState) error {
	if s.FailSaves {
		return errors.New("savefile: memory store is read-only")
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// Reset clears the stored record.
func (s *MemoryStore) Reset() (*progress.SaveState, error) {
	s.data = nil
	return progress.DefaultSave(), nil
}

// SetRaw replaces the stored bytes.
func (s *MemoryStore) SetRaw(data []byte) {
	s.data = data
}

// Encode serializes a record.
func Encode(state *progress.SaveState) ([]byte, error) {
	data, err := yaml.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("savefile: encode: %w", err)
	}
	return data, nil
}

// Decode parses a record over the defaults, so fields added later keep
// their default values when reading older records.
func Decode(data []byte) (*progress.SaveState, error) {
	state := progress.DefaultSave()
	if err := yaml.Unmarshal(data, state); err != nil {
		return progress.DefaultSave(), fmt.Errorf("savefile: decode: %w", err)
	}
	state.Normalize()
	return state, nil
}

// LoadOrDefault loads the record, logging and returning defaults on failure.
func LoadOrDefault(s Store, logger *log.Logger) *progress.SaveState {
	state, err := s.Load()
	if err != nil {
		logger.Warn("Could not load progress, using defaults", "error", err)
		return progress.DefaultSave()
	}
	return state
}

// SaveOrLog saves the record and logs a failure. The in-memory record is
// left as is either way.
func SaveOrLog(s Store, state *progress.SaveState, logger *log.Logger) bool {
	if err := s.Save(state); err != nil {
		logger.Warn("Could not save progress", "error", err)
		return false
	}
	return true
}

// ObjectName maps a profile name onto a file-safe gdata object name.
func ObjectName(profile string) string {
	profile = strings.ToLower(strings.TrimSpace(profile))
	if profile == "" {
		profile = "default"
	}
	var sb strings.Builder
	sb.WriteString("save_")
	for _, r := range profile {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
