package pet

import "time"

// TaskCooldownRemaining reports how long until the task can be completed
// again. Cooldowns are pure timestamp comparisons; nothing is scheduled.
func TaskCooldownRemaining(states []TaskState, def TaskDef, now time.Time) (time.Duration, bool) {
	for _, st := range states {
		if st.TaskID != def.ID {
			continue
		}
		if st.LastCompletedAt.IsZero() {
			return 0, false
		}
		remaining := def.Cooldown - now.Sub(st.LastCompletedAt)
		if remaining <= 0 {
			return 0, false
		}
		return remaining, true
	}
	return 0, false
}

// MarkTaskCompleted stamps the task's completion time, inserting the state
// entry if the task has never been done.
func MarkTaskCompleted(states []TaskState, taskID string, now time.Time) []TaskState {
	for i := range states {
		if states[i].TaskID == taskID {
			states[i].LastCompletedAt = now
			states[i].InProgress = false
			return states
		}
	}
	return append(states, TaskState{TaskID: taskID, LastCompletedAt: now})
}
