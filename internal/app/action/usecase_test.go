package action

import (
	"context"
	"errors"
	"testing"
	"time"

	metricsinmem "pawledger/internal/adapter/metrics/inmemory"
	"pawledger/internal/adapter/repo/memory"
	"pawledger/internal/app/slots"
	"pawledger/internal/domain/pet"
)

type fixture struct {
	uc      UseCase
	slotsUC slots.UseCase
	metrics *metricsinmem.Recorder
}

func newFixture(now time.Time) fixture {
	store := memory.NewStore()
	repo := memory.NewSlotRepo(store)
	recorder := metricsinmem.NewRecorder()
	nowFn := func() time.Time { return now }
	return fixture{
		uc: UseCase{
			TxManager: memory.TxManager{},
			Repo:      repo,
			Metrics:   recorder,
			Tuning:    pet.DefaultTuning(),
			Now:       nowFn,
		},
		slotsUC: slots.UseCase{
			TxManager: memory.TxManager{},
			Repo:      repo,
			Tuning:    pet.DefaultTuning(),
			Now:       nowFn,
		},
		metrics: recorder,
	}
}

func (f fixture) seedPet(t *testing.T, slot int) pet.SlotState {
	t.Helper()
	state, err := f.slotsUC.CreatePet(context.Background(), slots.CreatePetRequest{
		Slot: slot, Name: "Mochi", Species: pet.SpeciesCat,
	})
	if err != nil {
		t.Fatalf("seed pet: %v", err)
	}
	return state
}

func TestExecute_VetVisitPersistsExpenseAndQuestProgress(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.seedPet(t, 1)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, Request{Slot: 1, Kind: pet.ActionVet})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Success {
		t.Fatalf("vet visit rejected: %s", resp.Message)
	}
	if resp.Expense == nil || resp.Expense.Category != pet.CategoryHealth {
		t.Fatalf("expense = %+v", resp.Expense)
	}
	// health_first needs 50 health spend, first_purchase any spend.
	if len(resp.NewBadges) != 2 || resp.NewBadges[0] != "first_purchase" || resp.NewBadges[1] != "health_first" {
		t.Fatalf("new badges = %v", resp.NewBadges)
	}

	stored, err := f.slotsUC.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored.Expenses) != 1 {
		t.Fatalf("stored expenses = %d, want 1", len(stored.Expenses))
	}
	if !stored.Pet.HasBadge("health_first") {
		t.Fatalf("badge not persisted: %v", stored.Pet.Badges)
	}

	snap := f.metrics.Snapshot()
	if snap.ActionSuccess != 1 || snap.ByKind["vet"] != 1 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestExecute_FeedAdvancesFeedQuest(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.seedPet(t, 1)
	ctx := context.Background()

	// Stock up first, then feed three times to complete the quest.
	seed, err := f.slotsUC.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := *seed.Pet
	p.AddItem("kibble", 3)
	if err := f.slotsUC.SaveAll(ctx, slots.SaveParams{Slot: 1, Pet: &p}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var resp Response
	for i := 0; i < 3; i++ {
		resp, err = f.uc.Execute(ctx, Request{Slot: 1, Kind: pet.ActionFeed, Ref: "kibble"})
		if err != nil || !resp.Success {
			t.Fatalf("feed %d: err=%v success=%v msg=%s", i, err, resp.Success, resp.Message)
		}
	}
	for _, q := range resp.Quests.Daily {
		if q.ID == "feed_three" && q.Progress != 3 {
			t.Fatalf("feed quest progress = %d, want 3", q.Progress)
		}
	}
	if resp.Pet.Inventory["kibble"] != 0 {
		t.Fatalf("inventory = %d, want 0", resp.Pet.Inventory["kibble"])
	}
}

func TestExecute_RejectionKeepsStateButSettlesDecay(t *testing.T) {
	created := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	f := newFixture(created)
	f.seedPet(t, 1)
	ctx := context.Background()

	// Two hours later a feed with an empty pantry is rejected; the decay
	// owed for those hours is still settled and persisted.
	later := created.Add(2 * time.Hour)
	f.uc.Now = func() time.Time { return later }

	resp, err := f.uc.Execute(ctx, Request{Slot: 1, Kind: pet.ActionFeed, Ref: "kibble"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Success {
		t.Fatal("feed succeeded with empty inventory")
	}

	f.slotsUC.Now = func() time.Time { return later }
	stored, err := f.slotsUC.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tuning := pet.DefaultTuning()
	want := pet.StatMax - 2*tuning.HungerPerUnit
	if stored.Pet.Stats.Hunger != want {
		t.Fatalf("hunger = %d, want %d", stored.Pet.Stats.Hunger, want)
	}
	if len(stored.Expenses) != 0 {
		t.Fatalf("rejected action wrote a record: %+v", stored.Expenses)
	}

	snap := f.metrics.Snapshot()
	if snap.ActionRejected != 1 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestExecute_EmptySlotAndBadInput(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := context.Background()

	if _, err := f.uc.Execute(ctx, Request{Slot: 0, Kind: pet.ActionFeed}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("invalid slot err = %v", err)
	}
	if _, err := f.uc.Execute(ctx, Request{Slot: 1, Kind: "purchase"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("non-care kind err = %v", err)
	}

	_, err := f.uc.Execute(ctx, Request{Slot: 1, Kind: pet.ActionClean})
	if err == nil {
		t.Fatal("empty slot accepted")
	}
	snap := f.metrics.Snapshot()
	if snap.ActionFailure != 1 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestExecute_ActivityTeachesTrickAndBooksEntertainment(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.seedPet(t, 1)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, Request{Slot: 1, Kind: pet.ActionActivity, Ref: "training"})
	if err != nil || !resp.Success {
		t.Fatalf("activity: err=%v success=%v msg=%s", err, resp.Success, resp.Message)
	}
	if !resp.Pet.HasTrick("sit") {
		t.Fatalf("tricks = %v", resp.Pet.Tricks)
	}
	if resp.Expense == nil || resp.Expense.Category != pet.CategoryEntertainment {
		t.Fatalf("expense = %+v", resp.Expense)
	}
	for _, q := range resp.Quests.Daily {
		if q.ID == "go_play" && q.Progress != 1 {
			t.Fatalf("play quest progress = %d, want 1", q.Progress)
		}
	}
}
