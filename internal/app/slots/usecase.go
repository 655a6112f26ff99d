package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawledger/internal/app/ports"
	"pawledger/internal/app/shared/persist"
	"pawledger/internal/app/shared/slotstate"
	"pawledger/internal/domain/pet"
)

var (
	ErrInvalidSlot    = errors.New("invalid slot number")
	ErrInvalidRequest = errors.New("invalid slot request")
	ErrPetExists      = fmt.Errorf("slot already holds a pet: %w", ports.ErrConflict)
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

func ValidSlot(slot int) bool {
	return slot >= 1 && slot <= pet.MaxSlots
}

type CreatePetRequest struct {
	Slot            int
	Name            string
	Species         pet.Species
	Demo            bool
	DemoSeedVersion int
}

// CreatePet initializes a slot around a fresh pet with the default quest
// set. A slot that already holds a pet is left untouched.
func (u UseCase) CreatePet(ctx context.Context, req CreatePetRequest) (pet.SlotState, error) {
	if !ValidSlot(req.Slot) {
		return pet.SlotState{}, ErrInvalidSlot
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || !pet.ValidSpecies(req.Species) {
		return pet.SlotState{}, ErrInvalidRequest
	}

	now := u.now()
	var out pet.SlotState
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		prior, err := u.Repo.Get(txCtx, req.Slot)
		if err == nil && prior.Pet != nil {
			return ErrPetExists
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		p := pet.New(req.Name, req.Species, now)
		state := pet.SlotState{
			Pet:       &p,
			Expenses:  []pet.ExpenseRecord{},
			Income:    []pet.IncomeRecord{},
			Quests:    pet.DefaultDailyQuests(pet.DateKey(now)),
			Badges:    []string{},
			TaskState: []pet.TaskState{},
			Meta: pet.SlotMeta{
				CreatedAt:       now,
				LastPlayed:      now,
				SlotNumber:      req.Slot,
				Demo:            req.Demo,
				DemoSeedVersion: req.DemoSeedVersion,
			},
		}
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = state
		return nil
	})
	if err != nil {
		return pet.SlotState{}, err
	}
	return out, nil
}

// SaveParams carries one save-all call. Record slices are merged by id into
// the stored logs; nil metadata pointers mean "keep the persisted value",
// non-nil ones overwrite. That pass-through-or-override contract lets call
// sites update only the fields they care about.
type SaveParams struct {
	Slot      int
	Pet       *pet.Pet
	Expenses  []pet.ExpenseRecord
	Income    []pet.IncomeRecord
	Quests    *pet.QuestSet
	Badges    []string
	TaskState []pet.TaskState

	Demo               *bool
	DemoSeedVersion    *int
	LastAllowanceClaim *time.Time
	LastCheckIn        *string
	GuideChecklist     *pet.GuideChecklist
}

// SaveAll merges the params into the slot's persisted state and writes it
// back through the retention tiers.
func (u UseCase) SaveAll(ctx context.Context, params SaveParams) error {
	if !ValidSlot(params.Slot) {
		return ErrInvalidSlot
	}
	now := u.now()
	return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		prior, err := u.Repo.Get(txCtx, params.Slot)
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) {
				return err
			}
			prior = pet.SlotState{
				Meta: pet.SlotMeta{CreatedAt: now, SlotNumber: params.Slot},
			}
		}
		prior = slotstate.Normalize(prior, now)
		next := mergeSave(prior, params, now)
		return persist.Write(txCtx, u.Repo, next)
	})
}

func mergeSave(prior pet.SlotState, params SaveParams, now time.Time) pet.SlotState {
	next := prior
	if params.Pet != nil {
		next.Pet = params.Pet
	}
	next.Expenses = pet.MergeExpenses(prior.Expenses, params.Expenses)
	next.Income = pet.MergeIncome(prior.Income, params.Income)
	if params.Quests != nil {
		next.Quests = *params.Quests
	}
	if params.Badges != nil {
		next.Badges = params.Badges
	}
	if params.TaskState != nil {
		next.TaskState = params.TaskState
	}
	if params.GuideChecklist != nil {
		next.GuideChecklist = params.GuideChecklist
	}
	if params.Demo != nil {
		next.Meta.Demo = *params.Demo
	}
	if params.DemoSeedVersion != nil {
		next.Meta.DemoSeedVersion = *params.DemoSeedVersion
	}
	if params.LastAllowanceClaim != nil {
		next.Meta.LastAllowanceClaim = params.LastAllowanceClaim
	}
	if params.LastCheckIn != nil {
		next.Meta.LastCheckIn = *params.LastCheckIn
	}
	next.Meta.SlotNumber = prior.Meta.SlotNumber
	if next.Meta.SlotNumber == 0 {
		next.Meta.SlotNumber = params.Slot
	}
	if next.Meta.CreatedAt.IsZero() {
		next.Meta.CreatedAt = now
	}
	next.Meta.LastPlayed = now
	return next
}

// LoadAll returns the slot with schema back-fills applied and pending decay
// settled. The settled snapshot is written back best-effort so the next
// load does not re-derive the same decay; a failed write-back only costs
// that optimization.
func (u UseCase) LoadAll(ctx context.Context, slot int) (pet.SlotState, error) {
	if !ValidSlot(slot) {
		return pet.SlotState{}, ErrInvalidSlot
	}
	now := u.now()
	var out pet.SlotState
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.Repo.Get(txCtx, slot)
		if err != nil {
			return err
		}
		state = slotstate.Normalize(state, now)
		before := state.Pet
		state = slotstate.Settle(state, now, u.Tuning, u.DemoDecayMultiplier)
		if state.Pet != nil && before != nil && !state.Pet.LastTickAt.Equal(before.LastTickAt) {
			_ = persist.Write(txCtx, u.Repo, state)
		}
		out = state
		return nil
	})
	if err != nil {
		return pet.SlotState{}, err
	}
	return out, nil
}

// DeleteSlot unconditionally clears the slot.
func (u UseCase) DeleteSlot(ctx context.Context, slot int) error {
	if !ValidSlot(slot) {
		return ErrInvalidSlot
	}
	return u.Repo.Delete(ctx, slot)
}

func (u UseCase) ListSlots(ctx context.Context) ([]pet.SlotMeta, error) {
	return u.Repo.ListMeta(ctx)
}
