package slotstate

import (
	"time"

	"pawledger/internal/domain/pet"
)

// Normalize back-fills fields older saves may be missing: nil collections
// become empty ones, a missing last-tick timestamp falls back to the last
// mutation or creation time, ledger records get repaired ids/amounts, and
// legacy quest sentinels become the tagged claimed status. The stage cache
// is only clamped, never re-derived — re-deriving here would swallow the
// crossing event CheckEvolution detects from the cache mismatch.
func Normalize(state pet.SlotState, now time.Time) pet.SlotState {
	if state.Pet != nil {
		p := *state.Pet
		if p.Inventory == nil {
			p.Inventory = map[string]int{}
		}
		if p.Tricks == nil {
			p.Tricks = []string{}
		}
		if p.Badges == nil {
			p.Badges = []string{}
		}
		if p.LastTickAt.IsZero() {
			if !p.LastUpdated.IsZero() {
				p.LastTickAt = p.LastUpdated
			} else {
				p.LastTickAt = p.CreatedAt
			}
		}
		if p.Stage < pet.StageBaby || p.Stage > pet.StageMature {
			p.Stage = pet.StageForXP(p.XP)
		}
		if p.Coins < 0 {
			p.Coins = 0
		}
		p.Stats = p.Stats.Clamp()
		state.Pet = &p
	}

	fallback := now
	if state.Pet != nil && !state.Pet.CreatedAt.IsZero() {
		fallback = state.Pet.CreatedAt
	}
	for i := range state.Expenses {
		state.Expenses[i] = pet.RepairExpense(state.Expenses[i], fallback)
	}
	for i := range state.Income {
		state.Income[i] = pet.RepairIncome(state.Income[i], fallback)
	}

	state.Quests = pet.NormalizeQuests(state.Quests)
	if state.Badges == nil {
		state.Badges = []string{}
	}
	if state.TaskState == nil {
		state.TaskState = []pet.TaskState{}
	}
	return state
}
