package pet

import (
	"testing"
	"time"
)

func newTestPet(now time.Time) Pet {
	p := New("Mochi", SpeciesCat, now)
	return p
}

func TestApplyDecay_NoWholeUnitIsNoOp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPet(now)

	got := ApplyDecay(p, now.Add(30*time.Minute), 1, DefaultTuning())
	if got.Stats != p.Stats {
		t.Fatalf("stats changed for partial unit: %+v", got.Stats)
	}
	if !got.LastTickAt.Equal(p.LastTickAt) {
		t.Fatalf("LastTickAt advanced for partial unit")
	}
}

func TestApplyDecay_OneUnitDrainsRateTable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tuning := DefaultTuning()
	p := newTestPet(now)

	later := now.Add(time.Hour)
	got := ApplyDecay(p, later, 1, tuning)

	if got.Stats.Hunger != StatMax-tuning.HungerPerUnit {
		t.Fatalf("hunger = %d, want %d", got.Stats.Hunger, StatMax-tuning.HungerPerUnit)
	}
	if got.Stats.Energy != StatMax-tuning.EnergyPerUnit {
		t.Fatalf("energy = %d, want %d", got.Stats.Energy, StatMax-tuning.EnergyPerUnit)
	}
	if got.Stats.Cleanliness != StatMax-tuning.CleanlinessPerUnit {
		t.Fatalf("cleanliness = %d, want %d", got.Stats.Cleanliness, StatMax-tuning.CleanlinessPerUnit)
	}
	if got.Stats.Happiness != StatMax-tuning.HappinessPerUnit {
		t.Fatalf("happiness = %d, want %d", got.Stats.Happiness, StatMax-tuning.HappinessPerUnit)
	}
	if got.Stats.Health != StatMax {
		t.Fatalf("health drained without neglect: %d", got.Stats.Health)
	}
	if !got.LastTickAt.Equal(later) {
		t.Fatalf("LastTickAt = %v, want %v", got.LastTickAt, later)
	}
}

func TestApplyDecay_RepeatedCallSameNowIsIdentical(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPet(now)
	later := now.Add(5 * time.Hour)

	once := ApplyDecay(p, later, 1, DefaultTuning())
	twice := ApplyDecay(once, later, 1, DefaultTuning())

	if once.Stats != twice.Stats {
		t.Fatalf("double decay: first %+v, second %+v", once.Stats, twice.Stats)
	}
	if !twice.LastTickAt.Equal(once.LastTickAt) {
		t.Fatalf("LastTickAt moved on redundant call")
	}
}

func TestApplyDecay_StatsNeverLeaveRange(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPet(now)

	// A month unattended: everything bottoms out but never goes negative.
	got := ApplyDecay(p, now.Add(30*24*time.Hour), 1, DefaultTuning())
	for name, v := range map[string]int{
		"hunger":      got.Stats.Hunger,
		"happiness":   got.Stats.Happiness,
		"health":      got.Stats.Health,
		"energy":      got.Stats.Energy,
		"cleanliness": got.Stats.Cleanliness,
	} {
		if v < StatMin || v > StatMax {
			t.Fatalf("%s = %d out of range", name, v)
		}
	}
}

func TestApplyDecay_HealthDrainsOnlyUnderNeglect(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tuning := DefaultTuning()
	p := newTestPet(now)
	p.Stats.Hunger = tuning.HungerNeglectBelow - 1

	got := ApplyDecay(p, now.Add(time.Hour), 1, tuning)
	if got.Stats.Health != StatMax-tuning.HealthPerUnit {
		t.Fatalf("health = %d, want %d", got.Stats.Health, StatMax-tuning.HealthPerUnit)
	}
}

func TestApplyDecay_MultiplierScalesElapsedTimeOnly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tuning := DefaultTuning()
	p := newTestPet(now)

	// 30 real minutes at 24x is 12 decay units.
	accelerated := ApplyDecay(p, now.Add(30*time.Minute), DefaultDemoDecayMultiplier, tuning)
	want := clampStat(StatMax - 12*tuning.HungerPerUnit)
	if accelerated.Stats.Hunger != want {
		t.Fatalf("hunger = %d, want %d", accelerated.Stats.Hunger, want)
	}

	// The same wall-clock span at 1x stays below one unit.
	plain := ApplyDecay(p, now.Add(30*time.Minute), 1, tuning)
	if plain.Stats.Hunger != StatMax {
		t.Fatalf("multiplier leaked into the 1x path: hunger = %d", plain.Stats.Hunger)
	}
}

func TestApplyDecay_ZeroLastTickFallsBackToCreation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPet(now)
	p.LastTickAt = time.Time{}
	p.LastUpdated = time.Time{}

	got := ApplyDecay(p, now.Add(2*time.Hour), 1, DefaultTuning())
	if got.Stats.Hunger == StatMax {
		t.Fatalf("decay skipped despite creation-time fallback")
	}
}
