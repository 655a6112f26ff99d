package quest

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
	ErrInvalidRequest = errors.New("invalid quest request")
	ErrNoPet          = errors.New("slot has no pet")
	ErrNotClaimable   = errors.New("quest is not claimable")
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

// Get returns today's quest set, replacing a stale one with fresh defaults
// and persisting the replacement.
func (u UseCase) Get(ctx context.Context, slot int) (pet.QuestSet, error) {
	if !slots.ValidSlot(slot) {
		return pet.QuestSet{}, ErrInvalidRequest
	}
	now := u.now()
	var out pet.QuestSet
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.Repo.Get(txCtx, slot)
		if err != nil {
			return err
		}
		state = slotstate.Normalize(state, now)
		fresh := pet.QuestsFor(state.Quests, now)
		if fresh.LastReset != state.Quests.LastReset {
			state.Quests = fresh
			if err := persist.Write(txCtx, u.Repo, state); err != nil {
				return err
			}
		}
		out = fresh
		return nil
	})
	if err != nil {
		return pet.QuestSet{}, err
	}
	return out, nil
}

type ClaimRequest struct {
	Slot    int
	QuestID string
}

type ClaimResponse struct {
	Reward pet.QuestReward  `json:"reward"`
	Pet    pet.Pet          `json:"pet"`
	Quests pet.QuestSet     `json:"quests"`
	Income pet.IncomeRecord `json:"income"`
}

// Claim pays out a completed quest exactly once per reset cycle: the engine
// authorizes the reward, this use case credits coins and XP and appends the
// income record.
func (u UseCase) Claim(ctx context.Context, req ClaimRequest) (ClaimResponse, error) {
	req.QuestID = strings.TrimSpace(req.QuestID)
	if !slots.ValidSlot(req.Slot) || req.QuestID == "" {
		return ClaimResponse{}, ErrInvalidRequest
	}
	now := u.now()
	var out ClaimResponse
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

		quests := pet.QuestsFor(state.Quests, now)
		quests, reward := pet.ClaimQuestReward(quests, req.QuestID, now)
		if reward == nil {
			// No write here: the error rolls the tx back, and the next
			// Get persists any rollover.
			return ErrNotClaimable
		}

		p := *state.Pet
		p.AddCoins(reward.Coins)
		p.AddXP(reward.XP)
		p.Touch(now)
		income := pet.NewIncome(reward.Coins, pet.SourceQuest, "Quest reward: "+req.QuestID, now)

		state.Pet = &p
		state.Quests = quests
		state.Income = pet.MergeIncome(state.Income, []pet.IncomeRecord{income})

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
		out = ClaimResponse{Reward: *reward, Pet: *state.Pet, Quests: quests, Income: income}
		return nil
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	return out, nil
}
