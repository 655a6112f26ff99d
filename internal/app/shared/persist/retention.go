package persist

import (
	"context"
	"errors"

	"pawledger/internal/app/ports"
	"pawledger/internal/domain/pet"
)

var retentionTiers = [...]int{
	pet.DefaultRetentionCap,
	pet.ReducedRetentionCap,
	pet.MinimalRetentionCap,
}

// Write stores the slot, degrading through the retention tiers when the
// repository reports a capacity failure. If even the minimal tier does not
// fit, the write is abandoned without error: the in-memory state stays
// authoritative for the session and nothing here is fatal.
func Write(ctx context.Context, repo ports.SlotRepository, state pet.SlotState) error {
	for _, cap := range retentionTiers {
		attempt := state
		attempt.Expenses = pet.PruneExpenses(state.Expenses, cap)
		attempt.Income = pet.PruneIncome(state.Income, cap)
		err := repo.Put(ctx, attempt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrCapacity) {
			return err
		}
	}
	return nil
}
