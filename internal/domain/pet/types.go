package pet

import "time"

type Species string

const (
	SpeciesCat    Species = "cat"
	SpeciesDog    Species = "dog"
	SpeciesRabbit Species = "rabbit"
)

func ValidSpecies(s Species) bool {
	switch s {
	case SpeciesCat, SpeciesDog, SpeciesRabbit:
		return true
	default:
		return false
	}
}

// Stage is an ordinal maturity level derived from XP. The value stored on
// the pet is a cache; StageForXP is the source of truth.
type Stage int

const (
	StageBaby Stage = iota
	StageYoung
	StageAdult
	StageMature
)

func (s Stage) String() string {
	switch s {
	case StageBaby:
		return "Baby"
	case StageYoung:
		return "Young"
	case StageAdult:
		return "Adult"
	case StageMature:
		return "Mature"
	default:
		return "Unknown"
	}
}

type Stats struct {
	Hunger      int `json:"hunger"`
	Happiness   int `json:"happiness"`
	Health      int `json:"health"`
	Energy      int `json:"energy"`
	Cleanliness int `json:"cleanliness"`
}

type Pet struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Species            Species        `json:"species"`
	XP                 int            `json:"xp"`
	Stage              Stage          `json:"age_stage"`
	Stats              Stats          `json:"stats"`
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

type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "Food"
	CategoryToys          ExpenseCategory = "Toys"
	CategoryHealth        ExpenseCategory = "Health"
	CategoryEntertainment ExpenseCategory = "Entertainment"
	CategoryAccessories   ExpenseCategory = "Accessories"
)

type IncomeSource string

const (
	SourceAllowance IncomeSource = "Allowance"
	SourceQuest     IncomeSource = "Quest"
	SourceTask      IncomeSource = "Task"
	SourceCheckIn   IncomeSource = "CheckIn"
	SourceGift      IncomeSource = "Gift"
)

type ExpenseRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    int             `json:"amount"`
	Category  ExpenseCategory `json:"category"`
	Label     string          `json:"label"`
}

type IncomeRecord struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Amount    int          `json:"amount"`
	Source    IncomeSource `json:"source"`
	Label     string       `json:"label"`
}

type QuestStatus string

const (
	QuestActive  QuestStatus = "active"
	QuestClaimed QuestStatus = "claimed"
)

type Quest struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Goal        int         `json:"goal"`
	Progress    int         `json:"progress"`
	RewardCoins int         `json:"reward_coins"`
	RewardXP    int         `json:"reward_xp"`
	Status      QuestStatus `json:"status"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

type QuestSet struct {
	Daily     []Quest `json:"daily"`
	LastReset string  `json:"last_reset"`
}

type QuestReward struct {
	Coins int `json:"coins"`
	XP    int `json:"xp"`
}

type EvolutionEvent struct {
	ID        string    `json:"id"`
	FromStage Stage     `json:"from_stage"`
	ToStage   Stage     `json:"to_stage"`
	XP        int       `json:"xp"`
	CrossedAt time.Time `json:"crossed_at"`
}

type BadgeDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type TaskState struct {
	TaskID          string    `json:"task_id"`
	LastCompletedAt time.Time `json:"last_completed_at"`
	InProgress      bool      `json:"in_progress"`
}

type GuideChecklist struct {
	Date   string          `json:"date"`
	Items  map[string]bool `json:"items"`
	Streak int             `json:"streak"`
}

type SlotMeta struct {
	CreatedAt          time.Time  `json:"created_at"`
	LastPlayed         time.Time  `json:"last_played"`
	SlotNumber         int        `json:"slot_number"`
	Demo               bool       `json:"demo"`
	DemoSeedVersion    int        `json:"demo_seed_version"`
	LastAllowanceClaim *time.Time `json:"last_allowance_claim,omitempty"`
	LastCheckIn        string     `json:"last_check_in,omitempty"`
}

type SlotState struct {
	Pet            *Pet            `json:"pet"`
	Expenses       []ExpenseRecord `json:"expenses"`
	Income         []IncomeRecord  `json:"income"`
	Quests         QuestSet        `json:"quests"`
	Badges         []string        `json:"badges"`
	TaskState      []TaskState     `json:"task_state"`
	GuideChecklist *GuideChecklist `json:"guide_checklist,omitempty"`
	Meta           SlotMeta        `json:"meta"`
}

// DateKey is the calendar key used for daily resets (quests, check-in).
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
