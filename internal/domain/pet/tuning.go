package pet

import "time"

const (
	StatMin = 0
	StatMax = 100

	DecayUnit = time.Hour

	DefaultDemoDecayMultiplier = 24.0

	StartingCoins = 1000

	DefaultRetentionCap  = 1000
	ReducedRetentionCap  = 500
	MinimalRetentionCap  = 100
	AllowanceAmount      = 50
	AllowanceWindowDays  = 7
	CheckInRewardCoins   = 10
	CheckInHappinessGain = 5

	MaxSlots = 3
)

// Stage XP thresholds. StageForXP walks these in order.
var stageThresholds = [...]int{0, 20, 60, 120}

// Tuning holds per-unit decay rates and neglect thresholds. Defaults are the
// shipped behavior; the config layer may override any field.
type Tuning struct {
	HungerPerUnit      int `yaml:"hunger_per_unit"`
	EnergyPerUnit      int `yaml:"energy_per_unit"`
	CleanlinessPerUnit int `yaml:"cleanliness_per_unit"`
	HappinessPerUnit   int `yaml:"happiness_per_unit"`
	HealthPerUnit      int `yaml:"health_per_unit"`

	// Health only drains while at least one of these is breached.
	HungerNeglectBelow      int `yaml:"hunger_neglect_below"`
	CleanlinessNeglectBelow int `yaml:"cleanliness_neglect_below"`
	EnergyNeglectBelow      int `yaml:"energy_neglect_below"`
}

func DefaultTuning() Tuning {
	return Tuning{
		HungerPerUnit:      4,
		EnergyPerUnit:      3,
		CleanlinessPerUnit: 2,
		HappinessPerUnit:   2,
		HealthPerUnit:      3,

		HungerNeglectBelow:      20,
		CleanlinessNeglectBelow: 15,
		EnergyNeglectBelow:      10,
	}
}

// FoodItem is a purchasable consumable. Buying records the expense; feeding
// later consumes one unit without a second ledger entry.
type FoodItem struct {
	ID            string
	Name          string
	Price         int
	HungerGain    int
	HappinessGain int
}

// StoreItem is any non-food purchasable (toys, accessories).
type StoreItem struct {
	ID            string
	Name          string
	Price         int
	Category      ExpenseCategory
	HappinessGain int
}

// Activity is a paid outing. Some activities teach a trick.
type Activity struct {
	ID            string
	Name          string
	Cost          int
	HappinessGain int
	EnergyCost    int
	XPGain        int
	TeachesTrick  string
}

// TaskDef is a chore the owner can complete for pocket money, gated by a
// per-task cooldown.
type TaskDef struct {
	ID          string
	Name        string
	RewardCoins int
	Cooldown    time.Duration
}

var FoodItems = map[string]FoodItem{
	"kibble":     {ID: "kibble", Name: "Bag of Kibble", Price: 25, HungerGain: 30, HappinessGain: 5},
	"treat":      {ID: "treat", Name: "Crunchy Treat", Price: 10, HungerGain: 10, HappinessGain: 10},
	"gourmet":    {ID: "gourmet", Name: "Gourmet Meal", Price: 60, HungerGain: 60, HappinessGain: 15},
	"vegetables": {ID: "vegetables", Name: "Fresh Vegetables", Price: 20, HungerGain: 25, HappinessGain: 2},
}

var StoreItems = map[string]StoreItem{
	"ball":     {ID: "ball", Name: "Bouncy Ball", Price: 30, Category: CategoryToys, HappinessGain: 15},
	"plushie":  {ID: "plushie", Name: "Plush Companion", Price: 45, Category: CategoryToys, HappinessGain: 20},
	"collar":   {ID: "collar", Name: "Smart Collar", Price: 80, Category: CategoryAccessories, HappinessGain: 10},
	"blanket":  {ID: "blanket", Name: "Cozy Blanket", Price: 35, Category: CategoryAccessories, HappinessGain: 10},
	"scratchy": {ID: "scratchy", Name: "Scratching Post", Price: 55, Category: CategoryToys, HappinessGain: 18},
}

var Activities = map[string]Activity{
	"park":     {ID: "park", Name: "Trip to the Park", Cost: 15, HappinessGain: 20, EnergyCost: 15, XPGain: 5},
	"grooming": {ID: "grooming", Name: "Grooming Salon", Cost: 40, HappinessGain: 10, EnergyCost: 5, XPGain: 5},
	"agility":  {ID: "agility", Name: "Agility Class", Cost: 50, HappinessGain: 15, EnergyCost: 25, XPGain: 15, TeachesTrick: "jump"},
	"training": {ID: "training", Name: "Obedience Training", Cost: 35, HappinessGain: 5, EnergyCost: 20, XPGain: 10, TeachesTrick: "sit"},
	"swimming": {ID: "swimming", Name: "Swimming Lesson", Cost: 45, HappinessGain: 18, EnergyCost: 30, XPGain: 12, TeachesTrick: "paddle"},
}

const (
	VetVisitCost       = 50
	VetVisitHealthGain = 60

	CleanCleanlinessGain = 40
	CleanHappinessGain   = 5

	RestEnergyGain  = 50
	RestHungerCost  = 5
	FeedXPGain      = 2
	CleanXPGain     = 2
	RestXPGain      = 1
	VetXPGain       = 3
	PurchaseMaxCost = 10000
)

var Tasks = map[string]TaskDef{
	"fill_water":  {ID: "fill_water", Name: "Refill the Water Bowl", RewardCoins: 5, Cooldown: 4 * time.Hour},
	"brush_coat":  {ID: "brush_coat", Name: "Brush the Coat", RewardCoins: 10, Cooldown: 12 * time.Hour},
	"tidy_corner": {ID: "tidy_corner", Name: "Tidy the Pet Corner", RewardCoins: 15, Cooldown: 24 * time.Hour},
	"walk":        {ID: "walk", Name: "Take a Walk", RewardCoins: 10, Cooldown: 8 * time.Hour},
}
