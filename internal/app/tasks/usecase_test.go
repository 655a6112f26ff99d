package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawledger/internal/adapter/repo/memory"
	"pawledger/internal/app/slots"
	"pawledger/internal/domain/pet"
)

func newFixture(t *testing.T, now time.Time) (UseCase, slots.UseCase) {
	t.Helper()
	repo := memory.NewSlotRepo(memory.NewStore())
	nowFn := func() time.Time { return now }
	uc := UseCase{
		TxManager: memory.TxManager{},
		Repo:      repo,
		Tuning:    pet.DefaultTuning(),
		Now:       nowFn,
	}
	slotsUC := slots.UseCase{
		TxManager: memory.TxManager{},
		Repo:      repo,
		Tuning:    pet.DefaultTuning(),
		Now:       nowFn,
	}
	if _, err := slotsUC.CreatePet(context.Background(), slots.CreatePetRequest{
		Slot: 1, Name: "Mochi", Species: pet.SpeciesCat,
	}); err != nil {
		t.Fatalf("seed pet: %v", err)
	}
	return uc, slotsUC
}

func TestComplete_PaysRewardAndStampsCooldown(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	uc, slotsUC := newFixture(t, now)
	ctx := context.Background()

	def := pet.Tasks["walk"]
	resp, err := uc.Complete(ctx, CompleteRequest{Slot: 1, TaskID: "walk"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Pet.Coins != pet.StartingCoins+def.RewardCoins {
		t.Fatalf("coins = %d", resp.Pet.Coins)
	}
	if resp.Income.Source != pet.SourceTask || resp.Income.Amount != def.RewardCoins {
		t.Fatalf("income = %+v", resp.Income)
	}

	stored, err := slotsUC.LoadAll(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored.TaskState) != 1 || !stored.TaskState[0].LastCompletedAt.Equal(now) {
		t.Fatalf("task state = %+v", stored.TaskState)
	}
}

func TestComplete_CooldownRejectsWithRemaining(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	uc, _ := newFixture(t, now)
	ctx := context.Background()

	if _, err := uc.Complete(ctx, CompleteRequest{Slot: 1, TaskID: "fill_water"}); err != nil {
		t.Fatalf("first completion: %v", err)
	}

	// An hour into a four-hour cooldown.
	uc.Now = func() time.Time { return now.Add(time.Hour) }
	_, err := uc.Complete(ctx, CompleteRequest{Slot: 1, TaskID: "fill_water"})
	if !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("err = %v, want ErrCooldownActive", err)
	}
	var cdErr *CooldownActiveError
	if !errors.As(err, &cdErr) {
		t.Fatalf("err %T does not carry cooldown details", err)
	}
	if cdErr.RemainingSeconds != int(3*time.Hour/time.Second) {
		t.Fatalf("remaining = %ds", cdErr.RemainingSeconds)
	}

	// Past the cooldown the task pays again.
	uc.Now = func() time.Time { return now.Add(4 * time.Hour) }
	if _, err := uc.Complete(ctx, CompleteRequest{Slot: 1, TaskID: "fill_water"}); err != nil {
		t.Fatalf("post-cooldown completion: %v", err)
	}
}

func TestComplete_UnknownTask(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	uc, _ := newFixture(t, now)

	if _, err := uc.Complete(context.Background(), CompleteRequest{Slot: 1, TaskID: "mow_lawn"}); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("err = %v, want ErrUnknownTask", err)
	}
}
