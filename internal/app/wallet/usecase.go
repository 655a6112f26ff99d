package wallet

import (
	"context"
	"errors"
	"time"

	"pawledger/internal/app/ports"
	"pawledger/internal/app/shared/persist"
	"pawledger/internal/app/shared/slotstate"
	"pawledger/internal/app/slots"
	"pawledger/internal/domain/pet"
)

var (
	ErrInvalidRequest     = errors.New("invalid wallet request")
	ErrNoPet              = errors.New("slot has no pet")
	ErrAllowanceNotDue    = errors.New("allowance already claimed this week")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrUnknownIncomeLabel = errors.New("income label required")
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

type GiveCoinsRequest struct {
	Slot   int
	Amount int
	Source pet.IncomeSource
	Label  string
}

type Response struct {
	Pet    pet.Pet          `json:"pet"`
	Income pet.IncomeRecord `json:"income"`
}

// GiveCoins credits the balance and appends the matching income record.
// Negative amounts are coerced by the record constructor; the credit uses
// the coerced value so balance and ledger always agree.
func (u UseCase) GiveCoins(ctx context.Context, req GiveCoinsRequest) (Response, error) {
	if !slots.ValidSlot(req.Slot) || req.Amount == 0 || req.Source == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.Label == "" {
		return Response{}, ErrUnknownIncomeLabel
	}
	now := u.now()
	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.loadSettled(txCtx, req.Slot, now)
		if err != nil {
			return err
		}
		income := pet.NewIncome(req.Amount, req.Source, req.Label, now)
		p := *state.Pet
		p.AddCoins(income.Amount)
		p.Touch(now)
		state.Pet = &p
		state.Income = pet.MergeIncome(state.Income, []pet.IncomeRecord{income})
		state.Meta.LastPlayed = now
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = Response{Pet: p, Income: income}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// ClaimAllowance pays the weekly pocket money once per window, measured as
// a pure timestamp comparison against the last claim.
func (u UseCase) ClaimAllowance(ctx context.Context, slot int) (Response, error) {
	if !slots.ValidSlot(slot) {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()
	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.loadSettled(txCtx, slot, now)
		if err != nil {
			return err
		}
		if last := state.Meta.LastAllowanceClaim; last != nil {
			if now.Sub(*last) < pet.AllowanceWindowDays*24*time.Hour {
				return ErrAllowanceNotDue
			}
		}
		income := pet.NewIncome(pet.AllowanceAmount, pet.SourceAllowance, "Weekly allowance", now)
		p := *state.Pet
		p.AddCoins(income.Amount)
		p.Touch(now)
		claimedAt := now
		state.Pet = &p
		state.Income = pet.MergeIncome(state.Income, []pet.IncomeRecord{income})
		state.Meta.LastAllowanceClaim = &claimedAt
		state.Meta.LastPlayed = now
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = Response{Pet: p, Income: income}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// CheckIn grants the daily check-in bonus once per calendar date.
func (u UseCase) CheckIn(ctx context.Context, slot int) (Response, error) {
	if !slots.ValidSlot(slot) {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()
	today := pet.DateKey(now)
	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.loadSettled(txCtx, slot, now)
		if err != nil {
			return err
		}
		if state.Meta.LastCheckIn == today {
			return ErrAlreadyCheckedIn
		}
		income := pet.NewIncome(pet.CheckInRewardCoins, pet.SourceCheckIn, "Daily check-in", now)
		p := *state.Pet
		p.AddCoins(income.Amount)
		p.Stats.Happiness += pet.CheckInHappinessGain
		p.Stats = p.Stats.Clamp()
		p.Touch(now)
		state.Pet = &p
		state.Income = pet.MergeIncome(state.Income, []pet.IncomeRecord{income})
		state.Meta.LastCheckIn = today
		state.Meta.LastPlayed = now
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = Response{Pet: p, Income: income}
		return nil
	})
	if err != nil {
		return Response{}, err
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
