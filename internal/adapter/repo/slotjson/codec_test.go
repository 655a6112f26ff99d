package slotjson

import (
	"testing"
	"time"

	"pawledger/internal/domain/pet"
)

func TestRoundTripKeepsSlotState(t *testing.T) {
	now := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)
	p := pet.New("Mochi", pet.SpeciesCat, now)
	p.Stats.Hunger = 63
	p.AddItem("kibble", 2)

	state := pet.SlotState{
		Pet:      &p,
		Expenses: []pet.ExpenseRecord{pet.NewExpense(25, pet.CategoryFood, "Bag of Kibble", now)},
		Income:   []pet.IncomeRecord{pet.NewIncome(50, pet.SourceAllowance, "Weekly allowance", now)},
		Quests:   pet.DefaultDailyQuests(pet.DateKey(now)),
		Badges:   []string{"first_purchase"},
		Meta:     pet.SlotMeta{SlotNumber: 2, CreatedAt: now, Demo: true},
	}

	data, err := Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Pet == nil || got.Pet.ID != p.ID || got.Pet.Stats.Hunger != 63 {
		t.Fatalf("pet = %+v", got.Pet)
	}
	if got.Pet.Inventory["kibble"] != 2 {
		t.Fatalf("inventory = %v", got.Pet.Inventory)
	}
	if len(got.Expenses) != 1 || got.Expenses[0].ID != state.Expenses[0].ID {
		t.Fatalf("expenses = %+v", got.Expenses)
	}
	if got.Meta.SlotNumber != 2 || !got.Meta.Demo {
		t.Fatalf("meta = %+v", got.Meta)
	}
}

func TestUnmarshal_MissingStatsDefaultTo100(t *testing.T) {
	// An older save that predates the energy and cleanliness stats.
	data := []byte(`{
		"pet": {
			"id": "p1",
			"name": "Mochi",
			"species": "cat",
			"xp": 5,
			"stats": {"hunger": 40, "happiness": 70, "health": 90},
			"coins": 120
		},
		"meta": {"slot_number": 1}
	}`)

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Pet.Stats.Hunger != 40 || got.Pet.Stats.Happiness != 70 || got.Pet.Stats.Health != 90 {
		t.Fatalf("present stats mangled: %+v", got.Pet.Stats)
	}
	if got.Pet.Stats.Energy != pet.StatMax || got.Pet.Stats.Cleanliness != pet.StatMax {
		t.Fatalf("absent stats not defaulted: %+v", got.Pet.Stats)
	}
}

func TestUnmarshal_EmptySlotHasNoPet(t *testing.T) {
	got, err := Unmarshal([]byte(`{"meta": {"slot_number": 3}}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Pet != nil {
		t.Fatalf("pet = %+v, want nil", got.Pet)
	}
	if got.Meta.SlotNumber != 3 {
		t.Fatalf("meta = %+v", got.Meta)
	}
}

func TestUnmarshal_CorruptPayloadErrors(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"pet": [1,2,3]`)); err == nil {
		t.Fatal("corrupt payload accepted")
	}
}
