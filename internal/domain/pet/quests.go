package pet

import "time"

// legacyClaimedProgress is the sentinel older saves used before the quest
// status field existed. Accepted on load only; never written.
const legacyClaimedProgress = -1

// questActionMap routes action names to the quest they advance.
var questActionMap = map[string]string{
	"feed":     "feed_three",
	"clean":    "keep_clean",
	"activity": "go_play",
	"rest":     "rest_up",
}

// DefaultDailyQuests builds the fresh set for a calendar date: four quests
// spanning easy to hard with scaled reward pairs.
func DefaultDailyQuests(date string) QuestSet {
	return QuestSet{
		LastReset: date,
		Daily: []Quest{
			{ID: "feed_three", Name: "Feed your pet 3 times", Goal: 3, RewardCoins: 15, RewardXP: 5, Status: QuestActive},
			{ID: "keep_clean", Name: "Clean up twice", Goal: 2, RewardCoins: 10, RewardXP: 3, Status: QuestActive},
			{ID: "go_play", Name: "Go on an outing", Goal: 1, RewardCoins: 25, RewardXP: 8, Status: QuestActive},
			{ID: "rest_up", Name: "Let your pet rest 4 times", Goal: 4, RewardCoins: 35, RewardXP: 12, Status: QuestActive},
		},
	}
}

// QuestsFor returns the stored set if its reset key matches the given
// moment's date, otherwise a fresh default set. Persisting the replacement
// is the caller's job.
func QuestsFor(stored QuestSet, now time.Time) QuestSet {
	today := DateKey(now)
	if stored.LastReset == today && len(stored.Daily) > 0 {
		return stored
	}
	return DefaultDailyQuests(today)
}

// NormalizeQuests repairs quests coming off storage: the legacy -1 progress
// sentinel becomes the claimed status, and progress is clamped into
// [0, goal].
func NormalizeQuests(set QuestSet) QuestSet {
	for i := range set.Daily {
		q := &set.Daily[i]
		if q.Progress == legacyClaimedProgress {
			q.Status = QuestClaimed
			q.Progress = q.Goal
		}
		if q.Progress < 0 {
			q.Progress = 0
		}
		if q.Progress > q.Goal {
			q.Progress = q.Goal
		}
		if q.Status == "" {
			q.Status = QuestActive
		}
	}
	return set
}

// UpdateQuestProgress advances the quest mapped to the action name by
// exactly one, never past the goal and never on a claimed quest.
func UpdateQuestProgress(set QuestSet, actionName string) QuestSet {
	questID, ok := questActionMap[actionName]
	if !ok {
		return set
	}
	for i := range set.Daily {
		q := &set.Daily[i]
		if q.ID != questID {
			continue
		}
		if q.Status == QuestClaimed || q.Progress >= q.Goal {
			return set
		}
		q.Progress++
		return set
	}
	return set
}

// IsQuestReady reports whether the quest can be claimed right now.
func IsQuestReady(set QuestSet, questID string) bool {
	for _, q := range set.Daily {
		if q.ID == questID {
			return q.Status == QuestActive && q.CompletedAt == nil && q.Progress >= q.Goal
		}
	}
	return false
}

// ClaimQuestReward authorizes the reward exactly once per reset cycle. It
// only validates and marks the quest; crediting coins/XP and writing the
// income record stay with the caller.
func ClaimQuestReward(set QuestSet, questID string, now time.Time) (QuestSet, *QuestReward) {
	for i := range set.Daily {
		q := &set.Daily[i]
		if q.ID != questID {
			continue
		}
		if q.Status == QuestClaimed || q.CompletedAt != nil || q.Progress < q.Goal {
			return set, nil
		}
		completed := now
		q.Status = QuestClaimed
		q.CompletedAt = &completed
		return set, &QuestReward{Coins: q.RewardCoins, XP: q.RewardXP}
	}
	return set, nil
}

// ClaimedQuestCount counts claimed quests in the current set.
func ClaimedQuestCount(set QuestSet) int {
	n := 0
	for _, q := range set.Daily {
		if q.Status == QuestClaimed {
			n++
		}
	}
	return n
}
