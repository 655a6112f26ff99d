package store

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
	ErrInvalidRequest = errors.New("invalid purchase request")
	ErrNoPet          = errors.New("slot has no pet")
)

type UseCase struct {
	TxManager           ports.TxManager
	Repo                ports.SlotRepository
	Metrics             ports.CareMetrics
	Tuning              pet.Tuning
	DemoDecayMultiplier float64
	Now                 func() time.Time
}

type Request struct {
	Slot   int
	ItemID string
}

type Response struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message,omitempty"`
	Pet       pet.Pet            `json:"pet"`
	Expense   *pet.ExpenseRecord `json:"expense,omitempty"`
	NewBadges []string           `json:"new_badges,omitempty"`
}

// Execute buys one item into the pet's inventory. An unaffordable purchase
// leaves coins, inventory and ledgers exactly as they were.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.ItemID = strings.TrimSpace(req.ItemID)
	if !slots.ValidSlot(req.Slot) || req.ItemID == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.Repo.Get(txCtx, req.Slot)
		if err != nil {
			return err
		}
		state = slotstate.Normalize(state, now)
		if state.Pet == nil {
			return ErrNoPet
		}
		state = slotstate.Settle(state, now, u.Tuning, u.DemoDecayMultiplier)

		outcome := pet.BuyItem(*state.Pet, req.ItemID, now)
		if !outcome.Success {
			if err := persist.Write(txCtx, u.Repo, state); err != nil {
				return err
			}
			out = Response{Success: false, Message: outcome.Message, Pet: *state.Pet}
			return nil
		}

		state.Pet = &outcome.Pet
		if outcome.Expense != nil {
			state.Expenses = pet.MergeExpenses(state.Expenses, []pet.ExpenseRecord{*outcome.Expense})
		}

		agg := pet.AggregateFor(*state.Pet, state.Expenses, state.Income)
		newBadges := pet.EvaluateBadges(agg, state.Pet.Badges)
		if len(newBadges) > 0 {
			awarded := pet.AwardBadges(*state.Pet, newBadges, now)
			state.Pet = &awarded
			state.Badges = awarded.Badges
		}

		state.Meta.LastPlayed = now
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = Response{
			Success:   true,
			Pet:       *state.Pet,
			Expense:   outcome.Expense,
			NewBadges: newBadges,
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		if out.Success {
			u.Metrics.RecordSuccess(string(pet.ActionPurchase))
		} else {
			u.Metrics.RecordRejected(string(pet.ActionPurchase))
		}
	}
	return out, nil
}
