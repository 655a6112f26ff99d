package pet

import (
	"testing"
	"time"
)

func TestStageForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want Stage
	}{
		{0, StageBaby},
		{19, StageBaby},
		{20, StageYoung},
		{59, StageYoung},
		{60, StageAdult},
		{119, StageAdult},
		{120, StageMature},
		{100000, StageMature},
	}
	for _, tc := range cases {
		if got := StageForXP(tc.xp); got != tc.want {
			t.Fatalf("StageForXP(%d) = %v, want %v", tc.xp, got, tc.want)
		}
	}
}

func TestCheckEvolution_EmitsCrossingOnce(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := newTestPet(now)
	p.XP = 25

	p, event := CheckEvolution(p, now)
	if event == nil {
		t.Fatal("no event for Baby -> Young crossing")
	}
	if event.FromStage != StageBaby || event.ToStage != StageYoung {
		t.Fatalf("event = %+v", event)
	}
	if p.Stage != StageYoung {
		t.Fatalf("stage cache not synced: %v", p.Stage)
	}

	// Repeated checks on the synced pet stay silent.
	for i := 0; i < 3; i++ {
		var again *EvolutionEvent
		p, again = CheckEvolution(p, now)
		if again != nil {
			t.Fatalf("event re-emitted on check %d: %+v", i, again)
		}
	}
}

func TestCheckEvolution_AckSuppressesReplayAfterReload(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := newTestPet(now)
	p.XP = 25

	synced, event := CheckEvolution(p, now)
	if event == nil {
		t.Fatal("no crossing event")
	}
	acked := AcknowledgeEvolution(synced, event.ID, now)

	// Simulate a reload that lost the stage cache but kept the ack id.
	reloaded := acked
	reloaded.Stage = StageBaby
	_, replay := CheckEvolution(reloaded, now)
	if replay != nil {
		t.Fatalf("acknowledged event re-emitted: %+v", replay)
	}
}

func TestCheckEvolution_DeterministicEventID(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := newTestPet(now)
	p.XP = 25

	_, first := CheckEvolution(p, now)
	_, second := CheckEvolution(p, now.Add(time.Hour))
	if first == nil || second == nil {
		t.Fatal("missing events")
	}
	if first.ID != second.ID {
		t.Fatalf("event ids differ: %q vs %q", first.ID, second.ID)
	}
}

func TestCheckEvolution_MatureIsTerminal(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := newTestPet(now)
	p.XP = 500
	p.Stage = StageMature

	p.AddXP(1000)
	if _, event := CheckEvolution(p, now); event != nil {
		t.Fatalf("event past terminal stage: %+v", event)
	}
}

func TestAddXP_NeverDecreases(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := newTestPet(now)
	p.AddXP(10)
	p.AddXP(-5)
	p.AddXP(0)
	if p.XP != 10 {
		t.Fatalf("xp = %d, want 10", p.XP)
	}
}
