package memory

import (
	"context"
	"sort"

	"pawledger/internal/adapter/repo/slotjson"
	"pawledger/internal/app/ports"
	"pawledger/internal/domain/pet"
)

type SlotRepo struct {
	store *Store
}

func NewSlotRepo(store *Store) SlotRepo {
	return SlotRepo{store: store}
}

func (r SlotRepo) Get(_ context.Context, slot int) (pet.SlotState, error) {
	r.store.mu.RLock()
	payload, ok := r.store.payloads[slot]
	r.store.mu.RUnlock()
	if !ok {
		return pet.SlotState{}, ports.ErrNotFound
	}
	state, err := slotjson.Unmarshal(payload)
	if err != nil {
		return pet.SlotState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r SlotRepo) Put(_ context.Context, state pet.SlotState) error {
	payload, err := slotjson.Marshal(state)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.MaxPayloadBytes > 0 && len(payload) > r.store.MaxPayloadBytes {
		return ports.ErrCapacity
	}
	r.store.payloads[state.Meta.SlotNumber] = payload
	return nil
}

func (r SlotRepo) Delete(_ context.Context, slot int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.payloads, slot)
	return nil
}

func (r SlotRepo) ListMeta(_ context.Context) ([]pet.SlotMeta, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	slotNumbers := make([]int, 0, len(r.store.payloads))
	for n := range r.store.payloads {
		slotNumbers = append(slotNumbers, n)
	}
	sort.Ints(slotNumbers)
	out := make([]pet.SlotMeta, 0, len(slotNumbers))
	for _, n := range slotNumbers {
		state, err := slotjson.Unmarshal(r.store.payloads[n])
		if err != nil {
			continue
		}
		out = append(out, state.Meta)
	}
	return out, nil
}

var _ ports.SlotRepository = SlotRepo{}
