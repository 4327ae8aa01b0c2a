package state

import (
	"sync"

	"github.com/rook-computer/doodler/internal/walk"
)

type Phase int

const (
	WELCOME Phase = iota
	IDLE
	DRAWING
)

func (phase Phase) String() string {
	switch phase {
	case WELCOME:
		return "welcome"
	case IDLE:
		return "idle"
	case DRAWING:
		return "drawing"
	default:
		return "unknown"
	}
}

func (phase Phase) MarshalText() ([]byte, error) {
	return []byte(phase.String()), nil
}

// Theme mirrors the colours of the drawing in progress so the settings page
// can match it.
type Theme struct {
	Background string `json:"background"`
	Line       string `json:"line"`
}

type WalkInfo struct {
	Drawings  int             `json:"drawings"`
	Segments  int             `json:"segments"`
	Remaining int             `json:"remaining"`
	Origin    walk.Point      `json:"origin"`
	Viewport  walk.Dimensions `json:"viewport"`
}

type State struct {
	Phase Phase    `json:"phase"`
	Theme Theme    `json:"theme"`
	Walk  WalkInfo `json:"walk"`
	// SettingsURL is shown on the welcome screen.
	SettingsURL string `json:"settingsUrl"`
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: WELCOME}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) UpdateTheme(theme Theme) {
	store.mu.Lock()
	store.state.Theme = theme
	store.mu.Unlock()
}

func (store *Store) UpdateWalk(info WalkInfo) {
	store.mu.Lock()
	store.state.Walk = info
	store.mu.Unlock()
}

func (store *Store) SetSettingsURL(url string) {
	store.mu.Lock()
	store.state.SettingsURL = url
	store.mu.Unlock()
}
