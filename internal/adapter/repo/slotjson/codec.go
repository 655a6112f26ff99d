package slotjson

import (
	"encoding/json"
	"time"

	"pawledger/internal/domain/pet"
)

// Marshal encodes a slot for storage.
func Marshal(state pet.SlotState) ([]byte, error) {
	return json.Marshal(state)
}

// Unmarshal decodes a stored slot, back-filling gaps left by schema
// evolution: stats absent from the payload default to 100 (older saves
// predate some stats), missing collections become empty, and a missing
// last-tick timestamp is filled in later by normalization.
func Unmarshal(data []byte) (pet.SlotState, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return pet.SlotState{}, err
	}
	return p.toDomain(), nil
}

type payload struct {
	Pet            *petPayload         `json:"pet"`
	Expenses       []pet.ExpenseRecord `json:"expenses"`
	Income         []pet.IncomeRecord  `json:"income"`
	Quests         pet.QuestSet        `json:"quests"`
	Badges         []string            `json:"badges"`
	TaskState      []pet.TaskState     `json:"task_state"`
	GuideChecklist *pet.GuideChecklist `json:"guide_checklist,omitempty"`
	Meta           pet.SlotMeta        `json:"meta"`
}

type petPayload struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Species            pet.Species    `json:"species"`
	XP                 int            `json:"xp"`
	Stage              pet.Stage      `json:"age_stage"`
	Stats              statsPayload   `json:"stats"`
	Coins              int            `json:"coins"`
	LifetimeEarnings   int            `json:"lifetime_earnings"`
	Inventory          map[string]int `json:"inventory"`
	Tricks             []string       `json:"tricks"`
	Badges             []string       `json:"badges"`
	CreatedAt          time.Time      `json:"created_at"`
	LastUpdated        time.Time      `json:"last_updated"`
	LastTickAt         time.Time      `json:"last_tick_at"`
	LastEvolutionAckID string         `json:"last_evolution_ack_id,omitempty"`
}

type statsPayload struct {
	Hunger      *int `json:"hunger"`
	Happiness   *int `json:"happiness"`
	Health      *int `json:"health"`
	Energy      *int `json:"energy"`
	Cleanliness *int `json:"cleanliness"`
}

func statOrDefault(v *int) int {
	if v == nil {
		return pet.StatMax
	}
	return *v
}

func (p payload) toDomain() pet.SlotState {
	state := pet.SlotState{
		Expenses:       p.Expenses,
		Income:         p.Income,
		Quests:         p.Quests,
		Badges:         p.Badges,
		TaskState:      p.TaskState,
		GuideChecklist: p.GuideChecklist,
		Meta:           p.Meta,
	}
	if p.Pet != nil {
		state.Pet = &pet.Pet{
			ID:      p.Pet.ID,
			Name:    p.Pet.Name,
			Species: p.Pet.Species,
			XP:      p.Pet.XP,
			Stage:   p.Pet.Stage,
			Stats: pet.Stats{
				Hunger:      statOrDefault(p.Pet.Stats.Hunger),
				Happiness:   statOrDefault(p.Pet.Stats.Happiness),
				Health:      statOrDefault(p.Pet.Stats.Health),
				Energy:      statOrDefault(p.Pet.Stats.Energy),
				Cleanliness: statOrDefault(p.Pet.Stats.Cleanliness),
			},
			Coins:              p.Pet.Coins,
			LifetimeEarnings:   p.Pet.LifetimeEarnings,
			Inventory:          p.Pet.Inventory,
			Tricks:             p.Pet.Tricks,
			Badges:             p.Pet.Badges,
			CreatedAt:          p.Pet.CreatedAt,
			LastUpdated:        p.Pet.LastUpdated,
			LastTickAt:         p.Pet.LastTickAt,
			LastEvolutionAckID: p.Pet.LastEvolutionAckID,
		}
	}
	return state
}
