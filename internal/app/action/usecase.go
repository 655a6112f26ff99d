package action

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
	ErrInvalidRequest = errors.New("invalid action request")
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
	Slot int
	Kind pet.ActionKind
	// Ref names the food item for feed, the activity for paid outings.
	Ref string
}

type Response struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message,omitempty"`
	Pet       pet.Pet            `json:"pet"`
	NewBadges []string           `json:"new_badges,omitempty"`
	Quests    pet.QuestSet       `json:"quests"`
	Expense   *pet.ExpenseRecord `json:"expense,omitempty"`
}

// Execute settles pending decay, resolves one care action atomically and
// persists the merged result. A validation failure leaves the stored state
// untouched apart from the decay settlement, which is owed regardless.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Ref = strings.TrimSpace(req.Ref)
	if !slots.ValidSlot(req.Slot) || !isCareAction(req.Kind) {
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

		outcome := resolve(*state.Pet, req, now)
		if !outcome.Success {
			// Persist the decay settlement only; the action itself
			// left the pet unchanged.
			if err := persist.Write(txCtx, u.Repo, state); err != nil {
				return err
			}
			out = Response{Success: false, Message: outcome.Message, Pet: *state.Pet, Quests: state.Quests}
			return nil
		}

		state.Pet = &outcome.Pet
		if outcome.Expense != nil {
			state.Expenses = pet.MergeExpenses(state.Expenses, []pet.ExpenseRecord{*outcome.Expense})
		}
		state.Quests = pet.UpdateQuestProgress(pet.QuestsFor(state.Quests, now), string(req.Kind))

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
			NewBadges: newBadges,
			Quests:    state.Quests,
			Expense:   outcome.Expense,
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
			u.Metrics.RecordSuccess(string(req.Kind))
		} else {
			u.Metrics.RecordRejected(string(req.Kind))
		}
	}
	return out, nil
}

func resolve(p pet.Pet, req Request, now time.Time) pet.ActionOutcome {
	switch req.Kind {
	case pet.ActionFeed:
		return pet.Feed(p, req.Ref, now)
	case pet.ActionClean:
		return pet.Clean(p, now)
	case pet.ActionRest:
		return pet.Rest(p, now)
	case pet.ActionVet:
		return pet.VetVisit(p, now)
	case pet.ActionActivity:
		return pet.DoActivity(p, req.Ref, now)
	default:
		return pet.ActionOutcome{Success: false, Pet: p, Message: "unsupported action"}
	}
}

func isCareAction(kind pet.ActionKind) bool {
	switch kind {
	case pet.ActionFeed, pet.ActionClean, pet.ActionRest, pet.ActionVet, pet.ActionActivity:
		return true
	default:
		return false
	}
}
