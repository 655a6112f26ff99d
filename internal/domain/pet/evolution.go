package pet

import (
	"fmt"
	"time"
)

// StageForXP is the single source of truth for the age stage. The Stage
// field on the pet is a cache of this function's output.
func StageForXP(xp int) Stage {
	stage := StageBaby
	for i, threshold := range stageThresholds {
		if xp >= threshold {
			stage = Stage(i)
		}
	}
	return stage
}

func evolutionEventID(petID string, from, to Stage) string {
	return fmt.Sprintf("evo-%s-%d-%d", petID, from, to)
}

// CheckEvolution detects a threshold crossing between the cached stage and
// the XP-derived stage. The cached stage is always re-synced; the event is
// emitted only when a crossing happened and it has not been acknowledged
// yet. Event ids are deterministic per (pet, from, to) so a reload or a
// repeated tick recomputes the same id and the acknowledgment guard holds.
// StageMature is terminal: with no higher threshold there is nothing left
// to cross.
func CheckEvolution(p Pet, now time.Time) (Pet, *EvolutionEvent) {
	derived := StageForXP(p.XP)
	if p.Stage == derived {
		return p, nil
	}

	from := p.Stage
	next := p
	next.Stage = derived

	id := evolutionEventID(p.ID, from, derived)
	if p.LastEvolutionAckID == id {
		return next, nil
	}
	return next, &EvolutionEvent{
		ID:        id,
		FromStage: from,
		ToStage:   derived,
		XP:        p.XP,
		CrossedAt: now,
	}
}

// AcknowledgeEvolution stamps the event id so the transition is not
// announced again.
func AcknowledgeEvolution(p Pet, eventID string, now time.Time) Pet {
	if eventID == "" {
		return p
	}
	next := p
	next.LastEvolutionAckID = eventID
	next.Touch(now)
	return next
}
