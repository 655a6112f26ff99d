package ports

import (
	"context"

	"pawledger/internal/domain/pet"
)

// SlotRepository is the persistence boundary for the three save slots.
// Get returns ErrNotFound for an empty slot and also for a slot whose
// stored payload can no longer be decoded: a corrupt slot presents as
// empty, never as an error the caller has to handle.
type SlotRepository interface {
	Get(ctx context.Context, slot int) (pet.SlotState, error)
	Put(ctx context.Context, state pet.SlotState) error
	Delete(ctx context.Context, slot int) error
	ListMeta(ctx context.Context) ([]pet.SlotMeta, error)
}
