package slotstate

import (
	"time"

	"pawledger/internal/domain/pet"
)

// Multiplier picks the decay time scale for a slot. Demo slots run on an
// accelerated clock; the rate table itself is never touched.
func Multiplier(meta pet.SlotMeta, demoMultiplier float64) float64 {
	if meta.Demo && demoMultiplier > 0 {
		return demoMultiplier
	}
	return 1
}

// Settle applies pending decay to the slot's pet. Safe to call from every
// entry point (load, tick, action): ApplyDecay's whole-unit guard makes
// redundant calls no-ops.
func Settle(state pet.SlotState, now time.Time, tuning pet.Tuning, demoMultiplier float64) pet.SlotState {
	if state.Pet == nil {
		return state
	}
	settled := pet.ApplyDecay(*state.Pet, now, Multiplier(state.Meta, demoMultiplier), tuning)
	state.Pet = &settled
	return state
}
