package settings

import (
	"fmt"
	"sync"
)

type Key string

const (
	BackgroundColor           Key = "backgroundColor"
	LineColor                 Key = "lineColor"
	LineCount                 Key = "lineCount"
	LineWidth                 Key = "lineWidth"
	MaxLineLength             Key = "maxLineLength"
	AllowDifferentLineLengths Key = "allowDifferentLineLengths"
	AllowDiagonals            Key = "allowDiagonals"
	BeginInCenter             Key = "beginInCenter"
	OutsideResetsToBeginning  Key = "outsideResetsToBeginning"
	Mirror                    Key = "mirror"
	DrawLive                  Key = "drawLive"
)

// Keys lists every setting in declaration order.
var Keys = []Key{
	BackgroundColor,
	LineColor,
	LineCount,
	LineWidth,
	MaxLineLength,
	AllowDifferentLineLengths,
	AllowDiagonals,
	BeginInCenter,
	OutsideResetsToBeginning,
	Mirror,
	DrawLive,
}

// Diagonals controls whether a segment may change both axes at once.
type Diagonals string

const (
	DiagonalsNo   Diagonals = "no"
	DiagonalsYes  Diagonals = "yes"
	DiagonalsOnly Diagonals = "only"
)

type Settings struct {
	BackgroundColor           string    `json:"backgroundColor"`
	LineColor                 string    `json:"lineColor"`
	LineCount                 int       `json:"lineCount"`
	LineWidth                 float64   `json:"lineWidth"`
	MaxLineLength             int       `json:"maxLineLength"`
	AllowDifferentLineLengths bool      `json:"allowDifferentLineLengths"`
	AllowDiagonals            Diagonals `json:"allowDiagonals"`
	BeginInCenter             bool      `json:"beginInCenter"`
	OutsideResetsToBeginning  bool      `json:"outsideResetsToBeginning"`
	Mirror                    bool      `json:"mirror"`
	DrawLive                  bool      `json:"drawLive"`
}

// DefaultsFor returns the startup values for a width x height screen. The
// line count scales with the screen so the walk covers it regardless of size.
func DefaultsFor(width, height int) Settings {
	return Settings{
		BackgroundColor:           "#ffffff",
		LineColor:                 "#000000",
		LineCount:                 max(1, width*height/4),
		LineWidth:                 1,
		MaxLineLength:             1,
		AllowDifferentLineLengths: true,
		AllowDiagonals:            DiagonalsYes,
		BeginInCenter:             true,
		OutsideResetsToBeginning:  true,
		Mirror:                    true,
		DrawLive:                  false,
	}
}

// Defaults are the values for a 1920x1080 screen, used until the real size
// is known.
func Defaults() Settings {
	return DefaultsFor(DefaultWidth, DefaultHeight)
}

const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Store holds the live settings. Writers are the settings UI; the renderer
// takes a Snapshot at the start of every draw.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

func NewStore() *Store {
	return &Store{settings: Defaults()}
}

func NewStoreWith(initial Settings) *Store {
	return &Store{settings: initial}
}

func (store *Store) Snapshot() Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// Get returns the current value for key. It panics on unknown keys.
func (store *Store) Get(key Key) any {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings.value(key)
}

// Set overwrites the value for key. Unknown keys and values of the wrong type
// are programming errors and panic.
func (store *Store) Set(key Key, value any) {
	store.mu.Lock()
	defer store.mu.Unlock()
	next := store.settings
	if err := next.assign(key, value); err != nil {
		panic(err)
	}
	store.settings = next
}

// Update sets several values under one lock, so readers see either none or
// all of them. Like Set it panics on unknown keys or wrong types, and then
// leaves the store untouched.
func (store *Store) Update(values map[Key]any) {
	store.mu.Lock()
	defer store.mu.Unlock()
	next := store.settings
	for key, value := range values {
		if err := next.assign(key, value); err != nil {
			panic(err)
		}
	}
	store.settings = next
}

// Replace swaps in a complete set of values at once.
func (store *Store) Replace(next Settings) {
	store.mu.Lock()
	store.settings = next
	store.mu.Unlock()
}

func (s Settings) value(key Key) any {
	switch key {
	case BackgroundColor:
		return s.BackgroundColor
	case LineColor:
		return s.LineColor
	case LineCount:
		return s.LineCount
	case LineWidth:
		return s.LineWidth
	case MaxLineLength:
		return s.MaxLineLength
	case AllowDifferentLineLengths:
		return s.AllowDifferentLineLengths
	case AllowDiagonals:
		return s.AllowDiagonals
	case BeginInCenter:
		return s.BeginInCenter
	case OutsideResetsToBeginning:
		return s.OutsideResetsToBeginning
	case Mirror:
		return s.Mirror
	case DrawLive:
		return s.DrawLive
	}
	panic(fmt.Errorf("%w: %q", ErrUnknownKey, key))
}

func (s *Settings) assign(key Key, value any) error {
	var ok bool
	switch key {
	case BackgroundColor:
		s.BackgroundColor, ok = value.(string)
	case LineColor:
		s.LineColor, ok = value.(string)
	case LineCount:
		s.LineCount, ok = value.(int)
	case LineWidth:
		switch v := value.(type) {
		case float64:
			s.LineWidth, ok = v, true
		case int:
			s.LineWidth, ok = float64(v), true
		}
	case MaxLineLength:
		s.MaxLineLength, ok = value.(int)
	case AllowDifferentLineLengths:
		s.AllowDifferentLineLengths, ok = value.(bool)
	case AllowDiagonals:
		switch v := value.(type) {
		case Diagonals:
			s.AllowDiagonals, ok = v, true
		case string:
			s.AllowDiagonals, ok = Diagonals(v), true
		}
	case BeginInCenter:
		s.BeginInCenter, ok = value.(bool)
	case OutsideResetsToBeginning:
		s.OutsideResetsToBeginning, ok = value.(bool)
	case Mirror:
		s.Mirror, ok = value.(bool)
	case DrawLive:
		s.DrawLive, ok = value.(bool)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if !ok {
		return fmt.Errorf("setting %q: unexpected value type %T", key, value)
	}
	return nil
}
