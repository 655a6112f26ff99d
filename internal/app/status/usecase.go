package status

import (
	"context"
	"errors"
	"time"

	"pawledger/internal/app/ports"
	"pawledger/internal/app/shared/slotstate"
	"pawledger/internal/app/slots"
	"pawledger/internal/domain/pet"
)

var (
	ErrInvalidRequest = errors.New("invalid status request")
	ErrNoPet          = errors.New("slot has no pet")
)

type UseCase struct {
	Repo                ports.SlotRepository
	Tuning              pet.Tuning
	DemoDecayMultiplier float64
	Now                 func() time.Time
}

type Response struct {
	Pet           pet.Pet      `json:"pet"`
	StatusEffects []string     `json:"status_effects"`
	Stage         string       `json:"stage"`
	Quests        pet.QuestSet `json:"quests"`
}

// Observe returns a read-only view with pending decay settled in memory.
// Nothing is persisted; the next mutating call settles and stores the same
// decay thanks to the whole-unit guard.
func (u UseCase) Observe(ctx context.Context, slot int) (Response, error) {
	if !slots.ValidSlot(slot) {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	state, err := u.Repo.Get(ctx, slot)
	if err != nil {
		return Response{}, err
	}
	state = slotstate.Normalize(state, now)
	if state.Pet == nil {
		return Response{}, ErrNoPet
	}
	state = slotstate.Settle(state, now, u.Tuning, u.DemoDecayMultiplier)

	return Response{
		Pet:           *state.Pet,
		StatusEffects: deriveStatusEffects(state.Pet.Stats),
		Stage:         pet.StageForXP(state.Pet.XP).String(),
		Quests:        pet.QuestsFor(state.Quests, now),
	}, nil
}
