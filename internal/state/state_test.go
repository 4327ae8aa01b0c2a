package state

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewStoreStartsAtWelcome(t *testing.T) {
	if got := NewStore().Snapshot().Phase; got != WELCOME {
		t.Errorf("Expected WELCOME, got %v", got)
	}
}

func TestStoreUpdates(t *testing.T) {
	store := NewStore()
	store.SetPhase(DRAWING)
	store.UpdateTheme(Theme{Background: "#ffffff", Line: "#000000"})
	store.UpdateWalk(WalkInfo{Drawings: 1, Segments: 3, Remaining: 2})

	snap := store.Snapshot()
	if snap.Phase != DRAWING {
		t.Errorf("Expected DRAWING, got %v", snap.Phase)
	}
	if snap.Theme.Line != "#000000" {
		t.Errorf("Expected line colour #000000, got %q", snap.Theme.Line)
	}
	if snap.Walk.Segments != 3 || snap.Walk.Remaining != 2 {
		t.Errorf("Unexpected walk info %+v", snap.Walk)
	}
}

func TestPhaseMarshalsAsText(t *testing.T) {
	data, err := json.Marshal(State{Phase: IDLE})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"phase":"idle"`) {
		t.Errorf("Expected phase as text, got %s", data)
	}
}
