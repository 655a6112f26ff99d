package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"time"

	"pawledger/internal/app/ports"
	"pawledger/internal/app/shared/slotstate"
	"pawledger/internal/app/slots"
	"pawledger/internal/domain/pet"
)

var ErrInvalidRequest = errors.New("invalid report request")

type UseCase struct {
	Repo ports.SlotRepository
	Now  func() time.Time
}

func (u UseCase) load(ctx context.Context, slot int) (pet.SlotState, error) {
	state, err := u.Repo.Get(ctx, slot)
	if err != nil {
		return pet.SlotState{}, err
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	// Legacy records get their ids/timestamps/amounts repaired before
	// export, same as every other read path.
	return slotstate.Normalize(state, nowFn()), nil
}

// ExportExpensesCSV renders the slot's expense log as flat CSV rows with a
// header, one row per record.
func (u UseCase) ExportExpensesCSV(ctx context.Context, slot int) ([]byte, error) {
	if !slots.ValidSlot(slot) {
		return nil, ErrInvalidRequest
	}
	state, err := u.load(ctx, slot)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "timestamp", "amount", "category", "label"}); err != nil {
		return nil, err
	}
	for _, e := range state.Expenses {
		row := []string{
			e.ID,
			e.Timestamp.UTC().Format(time.RFC3339),
			strconv.Itoa(e.Amount),
			string(e.Category),
			e.Label,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportIncomeCSV mirrors ExportExpensesCSV for the income log.
func (u UseCase) ExportIncomeCSV(ctx context.Context, slot int) ([]byte, error) {
	if !slots.ValidSlot(slot) {
		return nil, ErrInvalidRequest
	}
	state, err := u.load(ctx, slot)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "timestamp", "amount", "source", "label"}); err != nil {
		return nil, err
	}
	for _, in := range state.Income {
		row := []string{
			in.ID,
			in.Timestamp.UTC().Format(time.RFC3339),
			strconv.Itoa(in.Amount),
			string(in.Source),
			in.Label,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
