package pet

import "time"

type ActionKind string

const (
	ActionFeed     ActionKind = "feed"
	ActionClean    ActionKind = "clean"
	ActionRest     ActionKind = "rest"
	ActionVet      ActionKind = "vet"
	ActionActivity ActionKind = "activity"
	ActionPurchase ActionKind = "purchase"
)

// ActionOutcome is the result of resolving one action. On failure the input
// pet is returned untouched; on success at most one ledger record is
// produced so callers can append it without re-deriving cost.
type ActionOutcome struct {
	Success bool
	Pet     Pet
	Expense *ExpenseRecord
	Message string
}

func fail(p Pet, msg string) ActionOutcome {
	return ActionOutcome{Success: false, Pet: p, Message: msg}
}

// Feed consumes one unit of the referenced food item and restores hunger
// plus a smaller happiness bonus. It writes no expense record: the cost was
// already recorded when the item was purchased, and recording it again
// would double-count in spending reports.
func Feed(p Pet, itemID string, now time.Time) ActionOutcome {
	item, ok := FoodItems[itemID]
	if !ok {
		return fail(p, "unknown food item")
	}
	if p.Inventory[itemID] <= 0 {
		return fail(p, item.Name+" is out of stock — buy more at the store")
	}

	next := p
	if !next.ConsumeItem(itemID, 1) {
		return fail(p, item.Name+" is out of stock — buy more at the store")
	}
	next.Stats.Hunger += item.HungerGain
	next.Stats.Happiness += item.HappinessGain
	next.Stats = next.Stats.Clamp()
	next.AddXP(FeedXPGain)
	next.Touch(now)
	return ActionOutcome{Success: true, Pet: next}
}

// Clean is free: stats only, no ledger record.
func Clean(p Pet, now time.Time) ActionOutcome {
	next := p
	next.Stats.Cleanliness += CleanCleanlinessGain
	next.Stats.Happiness += CleanHappinessGain
	next.Stats = next.Stats.Clamp()
	next.AddXP(CleanXPGain)
	next.Touch(now)
	return ActionOutcome{Success: true, Pet: next}
}

// Rest is free: stats only, no ledger record.
func Rest(p Pet, now time.Time) ActionOutcome {
	next := p
	next.Stats.Energy += RestEnergyGain
	next.Stats.Hunger -= RestHungerCost
	next.Stats = next.Stats.Clamp()
	next.AddXP(RestXPGain)
	next.Touch(now)
	return ActionOutcome{Success: true, Pet: next}
}

// VetVisit is a paid health restoration.
func VetVisit(p Pet, now time.Time) ActionOutcome {
	if p.Coins < VetVisitCost {
		return fail(p, "not enough coins for a vet visit")
	}
	next := p
	next.Stats.Health += VetVisitHealthGain
	next.Stats = next.Stats.Clamp()
	next.SpendCoins(VetVisitCost)
	next.AddXP(VetXPGain)
	next.Touch(now)
	expense := NewExpense(VetVisitCost, CategoryHealth, "Vet visit", now)
	return ActionOutcome{Success: true, Pet: next, Expense: &expense}
}

// DoActivity resolves a paid outing. Training activities also teach a trick.
func DoActivity(p Pet, activityID string, now time.Time) ActionOutcome {
	activity, ok := Activities[activityID]
	if !ok {
		return fail(p, "unknown activity")
	}
	if p.Coins < activity.Cost {
		return fail(p, "not enough coins for "+activity.Name)
	}

	next := p
	next.Stats.Happiness += activity.HappinessGain
	next.Stats.Energy -= activity.EnergyCost
	next.Stats = next.Stats.Clamp()
	next.SpendCoins(activity.Cost)
	next.AddXP(activity.XPGain)
	next.LearnTrick(activity.TeachesTrick)
	next.Touch(now)
	expense := NewExpense(activity.Cost, CategoryEntertainment, activity.Name, now)
	return ActionOutcome{Success: true, Pet: next, Expense: &expense}
}

// BuyFood purchases one unit of a food item into inventory, recording the
// expense at purchase time.
func BuyFood(p Pet, itemID string, now time.Time) ActionOutcome {
	item, ok := FoodItems[itemID]
	if !ok {
		return fail(p, "unknown food item")
	}
	if p.Coins < item.Price {
		return fail(p, "not enough coins for "+item.Name)
	}

	next := p
	next.SpendCoins(item.Price)
	next.AddItem(itemID, 1)
	next.Touch(now)
	expense := NewExpense(item.Price, CategoryFood, item.Name, now)
	return ActionOutcome{Success: true, Pet: next, Expense: &expense}
}

// BuyItem purchases a toy or accessory. Non-consumables apply their
// happiness bonus immediately and still land in inventory.
func BuyItem(p Pet, itemID string, now time.Time) ActionOutcome {
	if _, isFood := FoodItems[itemID]; isFood {
		return BuyFood(p, itemID, now)
	}
	item, ok := StoreItems[itemID]
	if !ok {
		return fail(p, "unknown store item")
	}
	if p.Coins < item.Price {
		return fail(p, "not enough coins for "+item.Name)
	}

	next := p
	next.SpendCoins(item.Price)
	next.AddItem(itemID, 1)
	next.Stats.Happiness += item.HappinessGain
	next.Stats = next.Stats.Clamp()
	next.Touch(now)
	expense := NewExpense(item.Price, item.Category, item.Name, now)
	return ActionOutcome{Success: true, Pet: next, Expense: &expense}
}
