package gormrepo

import (
	"context"
	"errors"
	"time"

	"pawledger/internal/adapter/repo/slotjson"
	"pawledger/internal/app/ports"
	"pawledger/internal/domain/pet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRecord is one save slot row. The whole slot document travels as one
// JSON payload, mirroring the single-key-per-slot storage the engine was
// designed around.
type SlotRecord struct {
	SlotNumber int       `gorm:"primaryKey;column:slot_number"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (SlotRecord) TableName() string {
	return "pet_slots"
}

type SlotRepo struct {
	db *gorm.DB
	// maxPayloadBytes caps the stored document, standing in for the
	// browser storage quota the retention tiers degrade against.
	// Zero means unlimited.
	maxPayloadBytes int
}

func NewSlotRepo(db *gorm.DB, maxPayloadBytes int) SlotRepo {
	return SlotRepo{db: db, maxPayloadBytes: maxPayloadBytes}
}

func (r SlotRepo) Get(ctx context.Context, slot int) (pet.SlotState, error) {
	var m SlotRecord
	if err := getDBFromCtx(ctx, r.db).Where("slot_number = ?", slot).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.SlotState{}, ports.ErrNotFound
		}
		return pet.SlotState{}, err
	}
	state, err := slotjson.Unmarshal(m.Payload)
	if err != nil {
		// Corrupt payload presents as an empty slot, never as an error.
		return pet.SlotState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r SlotRepo) Put(ctx context.Context, state pet.SlotState) error {
	payload, err := slotjson.Marshal(state)
	if err != nil {
		return err
	}
	if r.maxPayloadBytes > 0 && len(payload) > r.maxPayloadBytes {
		return ports.ErrCapacity
	}
	record := SlotRecord{
		SlotNumber: state.Meta.SlotNumber,
		Payload:    payload,
		UpdatedAt:  time.Now(),
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
}

func (r SlotRepo) Delete(ctx context.Context, slot int) error {
	return getDBFromCtx(ctx, r.db).
		Where("slot_number = ?", slot).
		Delete(&SlotRecord{}).Error
}

func (r SlotRepo) ListMeta(ctx context.Context) ([]pet.SlotMeta, error) {
	var rows []SlotRecord
	if err := getDBFromCtx(ctx, r.db).Order("slot_number").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pet.SlotMeta, 0, len(rows))
	for _, row := range rows {
		state, err := slotjson.Unmarshal(row.Payload)
		if err != nil {
			continue
		}
		out = append(out, state.Meta)
	}
	return out, nil
}

var _ ports.SlotRepository = SlotRepo{}
