package pet

import (
	"time"

	"github.com/google/uuid"
)

func New(name string, species Species, now time.Time) Pet {
	return Pet{
		ID:      uuid.NewString(),
		Name:    name,
		Species: species,
		XP:      0,
		Stage:   StageBaby,
		Stats: Stats{
			Hunger:      StatMax,
			Happiness:   StatMax,
			Health:      StatMax,
			Energy:      StatMax,
			Cleanliness: StatMax,
		},
		Coins:       StartingCoins,
		Inventory:   map[string]int{},
		Tricks:      []string{},
		Badges:      []string{},
		CreatedAt:   now,
		LastUpdated: now,
		LastTickAt:  now,
	}
}

func clampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

// Clamp normalizes every stat into [0,100].
func (s Stats) Clamp() Stats {
	s.Hunger = clampStat(s.Hunger)
	s.Happiness = clampStat(s.Happiness)
	s.Health = clampStat(s.Health)
	s.Energy = clampStat(s.Energy)
	s.Cleanliness = clampStat(s.Cleanliness)
	return s
}

// AddItem stocks the inventory. The map is cloned before the write: a Pet
// value copy shares the map storage, and action outcomes must be snapshots.
func (p *Pet) AddItem(itemID string, amount int) {
	if amount <= 0 || itemID == "" {
		return
	}
	p.Inventory = cloneInventory(p.Inventory)
	p.Inventory[itemID] += amount
}

// ConsumeItem removes stock, cloning the map before the write for the same
// snapshot reason as AddItem.
func (p *Pet) ConsumeItem(itemID string, amount int) bool {
	if amount <= 0 || itemID == "" {
		return false
	}
	current := p.Inventory[itemID]
	if current < amount {
		return false
	}
	p.Inventory = cloneInventory(p.Inventory)
	p.Inventory[itemID] = current - amount
	return true
}

func cloneInventory(inv map[string]int) map[string]int {
	out := make(map[string]int, len(inv)+1)
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// AddCoins credits the balance and the lifetime counter. Non-positive
// amounts are ignored.
func (p *Pet) AddCoins(amount int) {
	if amount <= 0 {
		return
	}
	p.Coins += amount
	p.LifetimeEarnings += amount
}

// SpendCoins debits the balance, refusing to go negative.
func (p *Pet) SpendCoins(amount int) bool {
	if amount <= 0 || p.Coins < amount {
		return false
	}
	p.Coins -= amount
	return true
}

// AddXP never decreases the accumulated value.
func (p *Pet) AddXP(amount int) {
	if amount <= 0 {
		return
	}
	p.XP += amount
}

func (p *Pet) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

func (p *Pet) HasTrick(name string) bool {
	for _, t := range p.Tricks {
		if t == name {
			return true
		}
	}
	return false
}

func (p *Pet) LearnTrick(name string) {
	if name == "" || p.HasTrick(name) {
		return
	}
	p.Tricks = append(p.Tricks, name)
}

func (p *Pet) Touch(now time.Time) {
	p.LastUpdated = now
}
