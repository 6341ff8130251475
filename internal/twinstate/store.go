package twinstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/signals"
)

// #region state

// HourBucket accumulates productivity per hour of day.
type HourBucket struct {
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// State is the persisted incremental twin state. The JSON field layout is
// a durable contract shared with existing state files and dashboard
// readers.
type State struct {
	Events             int                   `json:"events"`
	HourlyProductivity map[string]HourBucket `json:"hourly_productivity"`
	LastMode           *string               `json:"last_mode"`
	ModeTransitions    map[string]int        `json:"mode_transitions"`
}

// defaultState returns the empty counters used for first writes and for
// recovery from unreadable state files.
func defaultState() State {
	return State{
		HourlyProductivity: map[string]HourBucket{},
		ModeTransitions:    map[string]int{},
	}
}

// #endregion state

// #region store

// Store owns one on-disk state file. Apply serializes its
// read-modify-write behind a mutex and replaces the file atomically, so
// concurrent readers never see a half-written state.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store over the given state file path. The file is
// created on first Apply.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// #endregion store

// #region apply

// Apply folds one live observation into the persisted counters: bump the
// hour's productivity bucket, count the mode transition from the previous
// observation, and advance the event counter. A missing or corrupt state
// file starts fresh rather than failing.
func (s *Store) Apply(obs observation.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()

	sig := signals.Extract(obs)
	prod := signals.ProductivityScore(sig)

	hourKey := strconv.Itoa(obs.TS.Hour())
	bucket := state.HourlyProductivity[hourKey]
	bucket.Sum += prod
	bucket.Count++
	state.HourlyProductivity[hourKey] = bucket

	mode := obs.Mode
	if mode == "" {
		mode = "unknown"
	}
	if state.LastMode != nil {
		state.ModeTransitions[*state.LastMode+"->"+mode]++
	}
	state.LastMode = &mode
	state.Events++

	return s.write(state)
}

// Load returns the current persisted state, or fresh defaults when the
// file is missing or unreadable. Availability of the live counters wins
// over strict durability.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return defaultState()
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return defaultState()
	}
	if state.HourlyProductivity == nil {
		state.HourlyProductivity = map[string]HourBucket{}
	}
	if state.ModeTransitions == nil {
		state.ModeTransitions = map[string]int{}
	}
	return state
}

// write persists the state via a temp file and rename.
func (s *Store) write(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// #endregion apply
