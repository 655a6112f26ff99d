package progress

import (
	"context"
	"errors"
	"strings"
	"time"

	"pawledger/internal/app/ports"
	"pawledger/internal/app/shared/persist"
	"pawledger/internal/app/shared/slotstate"
	"pawledger/internal/app/slots"
	"pawledger/internal/domain/pet"
)

var (
	ErrInvalidRequest = errors.New("invalid progression request")
	ErrNoPet          = errors.New("slot has no pet")
)

type UseCase struct {
	TxManager           ports.TxManager
	Repo                ports.SlotRepository
	Tuning              pet.Tuning
	DemoDecayMultiplier float64
	Now                 func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

type GiveXPRequest struct {
	Slot   int
	Amount int
}

type CheckResponse struct {
	Pet   pet.Pet             `json:"pet"`
	Event *pet.EvolutionEvent `json:"event,omitempty"`
}

// GiveXP credits XP and immediately runs the crossing check so the caller
// gets any evolution event in the same response.
func (u UseCase) GiveXP(ctx context.Context, req GiveXPRequest) (CheckResponse, error) {
	if !slots.ValidSlot(req.Slot) || req.Amount <= 0 {
		return CheckResponse{}, ErrInvalidRequest
	}
	now := u.now()
	var out CheckResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.loadSettled(txCtx, req.Slot, now)
		if err != nil {
			return err
		}
		p := *state.Pet
		p.AddXP(req.Amount)
		p.Touch(now)

		p, event := pet.CheckEvolution(p, now)
		state.Pet = &p

		agg := pet.AggregateFor(p, state.Expenses, state.Income)
		newBadges := pet.EvaluateBadges(agg, p.Badges)
		if len(newBadges) > 0 {
			awarded := pet.AwardBadges(p, newBadges, now)
			state.Pet = &awarded
			state.Badges = awarded.Badges
		}

		state.Meta.LastPlayed = now
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = CheckResponse{Pet: *state.Pet, Event: event}
		return nil
	})
	if err != nil {
		return CheckResponse{}, err
	}
	return out, nil
}

// CheckEvolution re-runs crossing detection. The synced stage cache is
// persisted so repeated checks stay silent once the event has been seen.
func (u UseCase) CheckEvolution(ctx context.Context, slot int) (CheckResponse, error) {
	if !slots.ValidSlot(slot) {
		return CheckResponse{}, ErrInvalidRequest
	}
	now := u.now()
	var out CheckResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.loadSettled(txCtx, slot, now)
		if err != nil {
			return err
		}
		p, event := pet.CheckEvolution(*state.Pet, now)
		if p.Stage != state.Pet.Stage {
			state.Pet = &p
			if err := persist.Write(txCtx, u.Repo, state); err != nil {
				return err
			}
		}
		out = CheckResponse{Pet: p, Event: event}
		return nil
	})
	if err != nil {
		return CheckResponse{}, err
	}
	return out, nil
}

type AckRequest struct {
	Slot    int
	EventID string
}

// AcknowledgeEvolution stamps the event id so the transition notification
// is never replayed.
func (u UseCase) AcknowledgeEvolution(ctx context.Context, req AckRequest) (pet.Pet, error) {
	req.EventID = strings.TrimSpace(req.EventID)
	if !slots.ValidSlot(req.Slot) || req.EventID == "" {
		return pet.Pet{}, ErrInvalidRequest
	}
	now := u.now()
	var out pet.Pet
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.loadSettled(txCtx, req.Slot, now)
		if err != nil {
			return err
		}
		p := pet.AcknowledgeEvolution(*state.Pet, req.EventID, now)
		state.Pet = &p
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return pet.Pet{}, err
	}
	return out, nil
}

func (u UseCase) loadSettled(ctx context.Context, slot int, now time.Time) (pet.SlotState, error) {
	state, err := u.Repo.Get(ctx, slot)
	if err != nil {
		return pet.SlotState{}, err
	}
	state = slotstate.Normalize(state, now)
	if state.Pet == nil {
		return pet.SlotState{}, ErrNoPet
	}
	return slotstate.Settle(state, now, u.Tuning, u.DemoDecayMultiplier), nil
}
