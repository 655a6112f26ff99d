package pet

import "time"

// BadgeAggregate is the state badge rules run over. It is rebuilt from the
// ledger on every significant event, which keeps evaluation idempotent
// without tracking what changed.
type BadgeAggregate struct {
	TotalSpend      int
	SpendByCategory map[ExpenseCategory]int
	QuestsClaimed   int
	Stage           Stage
}

// AggregateFor derives the badge aggregate from a slot's ledgers and pet.
func AggregateFor(p Pet, expenses []ExpenseRecord, income []IncomeRecord) BadgeAggregate {
	agg := BadgeAggregate{
		SpendByCategory: map[ExpenseCategory]int{},
		Stage:           StageForXP(p.XP),
	}
	for _, e := range expenses {
		agg.TotalSpend += e.Amount
		agg.SpendByCategory[e.Category] += e.Amount
	}
	for _, in := range income {
		if in.Source == SourceQuest {
			agg.QuestsClaimed++
		}
	}
	return agg
}

var BadgeDefs = map[string]BadgeDef{
	"first_purchase": {Name: "First Purchase", Description: "Spend your first coins", Category: "spending"},
	"smart_shopper":  {Name: "Smart Shopper", Description: "Spend 200 coins on care", Category: "spending"},
	"big_spender":    {Name: "Big Spender", Description: "Spend 500 coins on care", Category: "spending"},
	"foodie":         {Name: "Foodie", Description: "Spend 100 coins on food", Category: "spending"},
	"health_first":   {Name: "Health First", Description: "Spend 50 coins on health care", Category: "spending"},
	"quest_starter":  {Name: "Quest Starter", Description: "Claim your first quest reward", Category: "quests"},
	"quest_regular":  {Name: "Quest Regular", Description: "Claim 5 quest rewards", Category: "quests"},
	"quest_master":   {Name: "Quest Master", Description: "Claim 15 quest rewards", Category: "quests"},
	"growing_up":     {Name: "Growing Up", Description: "Reach the Young stage", Category: "growth"},
	"all_grown":      {Name: "All Grown", Description: "Reach the Adult stage", Category: "growth"},
	"fully_mature":   {Name: "Fully Mature", Description: "Reach the Mature stage", Category: "growth"},
}

type badgeRule struct {
	id    string
	check func(BadgeAggregate) bool
}

// Rule order fixes the order newly earned ids are reported in.
var badgeRules = []badgeRule{
	{"first_purchase", func(a BadgeAggregate) bool { return a.TotalSpend > 0 }},
	{"smart_shopper", func(a BadgeAggregate) bool { return a.TotalSpend >= 200 }},
	{"big_spender", func(a BadgeAggregate) bool { return a.TotalSpend >= 500 }},
	{"foodie", func(a BadgeAggregate) bool { return a.SpendByCategory[CategoryFood] >= 100 }},
	{"health_first", func(a BadgeAggregate) bool { return a.SpendByCategory[CategoryHealth] >= 50 }},
	{"quest_starter", func(a BadgeAggregate) bool { return a.QuestsClaimed >= 1 }},
	{"quest_regular", func(a BadgeAggregate) bool { return a.QuestsClaimed >= 5 }},
	{"quest_master", func(a BadgeAggregate) bool { return a.QuestsClaimed >= 15 }},
	{"growing_up", func(a BadgeAggregate) bool { return a.Stage >= StageYoung }},
	{"all_grown", func(a BadgeAggregate) bool { return a.Stage >= StageAdult }},
	{"fully_mature", func(a BadgeAggregate) bool { return a.Stage >= StageMature }},
}

// EvaluateBadges returns only ids that pass their threshold and are not in
// the earned set. It never mutates anything, so it is safe to run after
// every significant event.
func EvaluateBadges(agg BadgeAggregate, earned []string) []string {
	earnedSet := make(map[string]struct{}, len(earned))
	for _, id := range earned {
		earnedSet[id] = struct{}{}
	}
	newly := []string{}
	for _, rule := range badgeRules {
		if _, has := earnedSet[rule.id]; has {
			continue
		}
		if rule.check(agg) {
			newly = append(newly, rule.id)
		}
	}
	return newly
}

// AwardBadges set-union inserts the ids. Re-adding a present id is a no-op;
// the pet is only touched when something was actually added.
func AwardBadges(p Pet, ids []string, now time.Time) Pet {
	next := p
	added := false
	for _, id := range ids {
		if id == "" || next.HasBadge(id) {
			continue
		}
		next.Badges = append(next.Badges, id)
		added = true
	}
	if added {
		next.Touch(now)
	}
	return next
}
