package pet

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// NewExpense builds a ledger entry, coercing out-of-contract input: a
// negative amount is absolute-valued, a zero amount becomes 1, and missing
// ids get generated. The ledger favors availability over strict rejection.
func NewExpense(amount int, category ExpenseCategory, label string, at time.Time) ExpenseRecord {
	return ExpenseRecord{
		ID:        uuid.NewString(),
		Timestamp: at,
		Amount:    coerceAmount(amount),
		Category:  category,
		Label:     label,
	}
}

func NewIncome(amount int, source IncomeSource, label string, at time.Time) IncomeRecord {
	return IncomeRecord{
		ID:        uuid.NewString(),
		Timestamp: at,
		Amount:    coerceAmount(amount),
		Source:    source,
		Label:     label,
	}
}

func coerceAmount(v int) int {
	if v < 0 {
		v = -v
	}
	if v == 0 {
		v = 1
	}
	return v
}

// RepairExpense back-fills records coming off storage.
func RepairExpense(e ExpenseRecord, fallback time.Time) ExpenseRecord {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = fallback
	}
	e.Amount = coerceAmount(e.Amount)
	return e
}

func RepairIncome(in IncomeRecord, fallback time.Time) IncomeRecord {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = fallback
	}
	in.Amount = coerceAmount(in.Amount)
	return in
}

// MergeExpenses unions incoming records into existing by id: a record whose
// id is already stored is dropped, existing copies win.
func MergeExpenses(existing, incoming []ExpenseRecord) []ExpenseRecord {
	seen := make(map[string]struct{}, len(existing))
	out := make([]ExpenseRecord, 0, len(existing)+len(incoming))
	for _, e := range existing {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	for _, e := range incoming {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

func MergeIncome(existing, incoming []IncomeRecord) []IncomeRecord {
	seen := make(map[string]struct{}, len(existing))
	out := make([]IncomeRecord, 0, len(existing)+len(incoming))
	for _, in := range existing {
		if _, dup := seen[in.ID]; dup {
			continue
		}
		seen[in.ID] = struct{}{}
		out = append(out, in)
	}
	for _, in := range incoming {
		if _, dup := seen[in.ID]; dup {
			continue
		}
		seen[in.ID] = struct{}{}
		out = append(out, in)
	}
	return out
}

// PruneExpenses keeps the cap most recent records (oldest dropped first)
// and returns them in ascending timestamp order for storage.
func PruneExpenses(records []ExpenseRecord, cap int) []ExpenseRecord {
	if cap <= 0 {
		return []ExpenseRecord{}
	}
	out := make([]ExpenseRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > cap {
		out = out[:cap]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func PruneIncome(records []IncomeRecord, cap int) []IncomeRecord {
	if cap <= 0 {
		return []IncomeRecord{}
	}
	out := make([]IncomeRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > cap {
		out = out[:cap]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
