package ui

import (
	"testing"

	"snake-controller/game/event"
)

// Without Initialize the decorator must still pass every message through.
func TestSound_ForwardsWithoutSpeaker(t *testing.T) {
	var kinds []event.Kind
	inner := event.PortFunc(func(e event.Event) {
		kinds = append(kinds, e.Kind())
	})

	s := NewSound(inner, nil)
	s.Send(event.ScoreIncrement{})
	s.Send(event.ScoreIncrement{})
	s.Send(event.LoseNotification{})
	s.Close()

	want := []event.Kind{event.KindScoreIncrement, event.KindScoreIncrement, event.KindLoseNotification}
	if len(kinds) != len(want) {
		t.Fatalf("forwarded %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("forwarded %v, want %v", kinds, want)
		}
	}
}
