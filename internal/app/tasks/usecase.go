package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawledger/internal/app/ports"
	"pawledger/internal/app/shared/persist"
	"pawledger/internal/app/shared/slotstate"
	"pawledger/internal/app/slots"
	"pawledger/internal/domain/pet"
)

var (
	ErrInvalidRequest = errors.New("invalid task request")
	ErrNoPet          = errors.New("slot has no pet")
	ErrUnknownTask    = errors.New("unknown task")
	ErrCooldownActive = errors.New("task cooldown active")
)

// CooldownActiveError carries the wait time for the HTTP layer.
type CooldownActiveError struct {
	TaskID           string
	RemainingSeconds int
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("task %s on cooldown for %ds", e.TaskID, e.RemainingSeconds)
}

func (e *CooldownActiveError) Unwrap() error { return ErrCooldownActive }

type UseCase struct {
	TxManager           ports.TxManager
	Repo                ports.SlotRepository
	Tuning              pet.Tuning
	DemoDecayMultiplier float64
	Now                 func() time.Time
}

type CompleteRequest struct {
	Slot   int
	TaskID string
}

type CompleteResponse struct {
	Pet       pet.Pet          `json:"pet"`
	Income    pet.IncomeRecord `json:"income"`
	TaskState []pet.TaskState  `json:"task_state"`
}

// Complete finishes a chore, pays its pocket-money reward and stamps the
// cooldown. The cooldown is a timestamp comparison, nothing scheduled.
func (u UseCase) Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error) {
	req.TaskID = strings.TrimSpace(req.TaskID)
	if !slots.ValidSlot(req.Slot) || req.TaskID == "" {
		return CompleteResponse{}, ErrInvalidRequest
	}
	def, ok := pet.Tasks[req.TaskID]
	if !ok {
		return CompleteResponse{}, ErrUnknownTask
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	var out CompleteResponse
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

		if remaining, active := pet.TaskCooldownRemaining(state.TaskState, def, now); active {
			return &CooldownActiveError{
				TaskID:           def.ID,
				RemainingSeconds: int((remaining + time.Second - 1) / time.Second),
			}
		}

		income := pet.NewIncome(def.RewardCoins, pet.SourceTask, def.Name, now)
		p := *state.Pet
		p.AddCoins(income.Amount)
		p.Touch(now)
		state.Pet = &p
		state.Income = pet.MergeIncome(state.Income, []pet.IncomeRecord{income})
		state.TaskState = pet.MarkTaskCompleted(state.TaskState, def.ID, now)
		state.Meta.LastPlayed = now
		if err := persist.Write(txCtx, u.Repo, state); err != nil {
			return err
		}
		out = CompleteResponse{Pet: p, Income: income, TaskState: state.TaskState}
		return nil
	})
	if err != nil {
		return CompleteResponse{}, err
	}
	return out, nil
}
