package pet

import "time"

// ApplyDecay settles elapsed time against the pet's stats. It is pure and
// deterministic given (pet.LastTickAt, now, multiplier): whole decay units
// elapsed since the last tick are computed, each unit drains the rate table
// once, and every stat is clamped into [0,100].
//
// The multiplier scales elapsed time only (demo acceleration); the rate
// table is never altered. If fewer than one whole unit elapsed the pet is
// returned unchanged, LastTickAt included, which makes redundant calls from
// load, periodic tick and visibility-regain no-ops instead of double-decays.
func ApplyDecay(p Pet, now time.Time, multiplier float64, tuning Tuning) Pet {
	if multiplier <= 0 {
		multiplier = 1
	}
	last := p.LastTickAt
	if last.IsZero() {
		last = p.LastUpdated
	}
	if last.IsZero() {
		last = p.CreatedAt
	}
	if last.IsZero() || !now.After(last) {
		return p
	}

	scaled := time.Duration(float64(now.Sub(last)) * multiplier)
	units := int(scaled / DecayUnit)
	if units <= 0 {
		return p
	}

	next := p
	stats := next.Stats
	for i := 0; i < units; i++ {
		stats.Hunger -= tuning.HungerPerUnit
		stats.Energy -= tuning.EnergyPerUnit
		stats.Cleanliness -= tuning.CleanlinessPerUnit
		stats.Happiness -= tuning.HappinessPerUnit
		stats = stats.Clamp()

		// Neglect consequence: health drains only once core care stats
		// have fallen below their thresholds.
		if stats.Hunger < tuning.HungerNeglectBelow ||
			stats.Cleanliness < tuning.CleanlinessNeglectBelow ||
			stats.Energy < tuning.EnergyNeglectBelow {
			stats.Health -= tuning.HealthPerUnit
			stats = stats.Clamp()
		}

		if statsBottomedOut(stats) {
			break
		}
	}
	next.Stats = stats
	next.LastTickAt = now
	return next
}

func statsBottomedOut(s Stats) bool {
	return s.Hunger == StatMin &&
		s.Energy == StatMin &&
		s.Cleanliness == StatMin &&
		s.Happiness == StatMin &&
		s.Health == StatMin
}
