package pet

import (
	"testing"
	"time"
)

func TestTaskCooldownRemaining(t *testing.T) {
	now := time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)
	def, ok := Tasks["walk"]
	if !ok {
		t.Fatal("walk task missing from catalog")
	}

	// Never completed: no cooldown.
	if _, active := TaskCooldownRemaining(nil, def, now); active {
		t.Fatal("cooldown active with no history")
	}

	states := MarkTaskCompleted(nil, "walk", now)
	remaining, active := TaskCooldownRemaining(states, def, now.Add(def.Cooldown/2))
	if !active {
		t.Fatal("cooldown inactive halfway through")
	}
	if remaining != def.Cooldown/2 {
		t.Fatalf("remaining = %v, want %v", remaining, def.Cooldown/2)
	}

	if _, active := TaskCooldownRemaining(states, def, now.Add(def.Cooldown)); active {
		t.Fatal("cooldown still active at expiry")
	}
}

func TestMarkTaskCompleted_UpdatesExistingEntry(t *testing.T) {
	now := time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)

	states := MarkTaskCompleted(nil, "walk", now)
	states = MarkTaskCompleted(states, "walk", now.Add(2*time.Hour))
	if len(states) != 1 {
		t.Fatalf("state entries = %d, want 1", len(states))
	}
	if !states[0].LastCompletedAt.Equal(now.Add(2 * time.Hour)) {
		t.Fatalf("timestamp not updated: %v", states[0].LastCompletedAt)
	}

	states = MarkTaskCompleted(states, "brush_coat", now)
	if len(states) != 2 {
		t.Fatalf("state entries = %d, want 2", len(states))
	}
}
