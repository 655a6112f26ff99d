package status

import "pawledger/internal/domain/pet"

const (
	hungryBelow  = 30
	tiredBelow   = 25
	dirtyBelow   = 30
	sickBelow    = 40
	unhappyBelow = 30
)

func deriveStatusEffects(s pet.Stats) []string {
	effects := make([]string, 0, 5)
	if s.Hunger <= hungryBelow {
		effects = append(effects, "HUNGRY")
	}
	if s.Energy <= tiredBelow {
		effects = append(effects, "TIRED")
	}
	if s.Cleanliness <= dirtyBelow {
		effects = append(effects, "DIRTY")
	}
	if s.Health <= sickBelow {
		effects = append(effects, "SICK")
	}
	if s.Happiness <= unhappyBelow {
		effects = append(effects, "UNHAPPY")
	}
	return effects
}
