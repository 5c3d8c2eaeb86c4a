package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RohitYadav0014/AccelQuote/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLedgerConflict is returned when a ledger write lost an optimistic
// concurrency check against a concurrent commit.
var ErrLedgerConflict = errors.New("applied-discount ledger was modified concurrently")

// Snapshot is the cached final pricing table together with the currency and
// role it was computed under.
type Snapshot struct {
	Rows     []model.FinalPricingRow
	Currency model.Currency
	Role     string
}

// StateRepository is the persistence adapter for the four per-document
// pricing stores. Records are shared across users and keyed by document id;
// each store is last-write-wins except the ledger, which carries a version
// counter checked on write.
type StateRepository interface {
	GetItemPrices(ctx context.Context, docID string) (model.PriceTable, bool, error)
	SetItemPrices(ctx context.Context, docID string, table model.PriceTable) error

	GetDiscountTable(ctx context.Context, docID string) (model.DiscountTable, bool, error)
	SetDiscountTable(ctx context.Context, docID string, table model.DiscountTable) error

	GetAppliedDiscounts(ctx context.Context, docID string) (model.AppliedDiscountLedger, int, error)
	SetAppliedDiscounts(ctx context.Context, docID string, ledger model.AppliedDiscountLedger, expectedVersion int) error

	GetFinalPricingSnapshot(ctx context.Context, docID string) (*Snapshot, error)
	// SetFinalPricingSnapshot with nil rows clears the snapshot to force
	// recomputation on the next read.
	SetFinalPricingSnapshot(ctx context.Context, docID string, snap *Snapshot) error
}

type stateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) GetItemPrices(ctx context.Context, docID string) (model.PriceTable, bool, error) {
	var rec model.ItemPriceRecord
	err := GetDB(ctx, r.db).First(&rec, "doc_id = ?", docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var table model.PriceTable
	if err := json.Unmarshal([]byte(rec.Payload), &table); err != nil {
		return nil, false, fmt.Errorf("corrupt item price payload for %s: %w", docID, err)
	}
	return table, true, nil
}

func (r *stateRepository) SetItemPrices(ctx context.Context, docID string, table model.PriceTable) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return err
	}
	rec := model.ItemPriceRecord{DocID: docID, Payload: string(payload)}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

func (r *stateRepository) GetDiscountTable(ctx context.Context, docID string) (model.DiscountTable, bool, error) {
	var rec model.DiscountTableRecord
	err := GetDB(ctx, r.db).First(&rec, "doc_id = ?", docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var table model.DiscountTable
	if err := json.Unmarshal([]byte(rec.Payload), &table); err != nil {
		return nil, false, fmt.Errorf("corrupt discount payload for %s: %w", docID, err)
	}
	return table, true, nil
}

func (r *stateRepository) SetDiscountTable(ctx context.Context, docID string, table model.DiscountTable) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return err
	}
	rec := model.DiscountTableRecord{DocID: docID, Payload: string(payload)}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

func (r *stateRepository) GetAppliedDiscounts(ctx context.Context, docID string) (model.AppliedDiscountLedger, int, error) {
	var rec model.DiscountLedgerRecord
	err := GetDB(ctx, r.db).First(&rec, "doc_id = ?", docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AppliedDiscountLedger{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var ledger model.AppliedDiscountLedger
	if err := json.Unmarshal([]byte(rec.Payload), &ledger); err != nil {
		return nil, 0, fmt.Errorf("corrupt ledger payload for %s: %w", docID, err)
	}
	return ledger, rec.Version, nil
}

// SetAppliedDiscounts writes the merged ledger, guarded by the version stamp
// read alongside it. A concurrent commit bumps the version and makes this
// write fail with ErrLedgerConflict instead of silently dropping an edit.
func (r *stateRepository) SetAppliedDiscounts(ctx context.Context, docID string, ledger model.AppliedDiscountLedger, expectedVersion int) error {
	payload, err := json.Marshal(ledger)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	if expectedVersion == 0 {
		rec := model.DiscountLedgerRecord{DocID: docID, Payload: string(payload), Version: 1}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_id"}},
			DoNothing: true,
		}).Create(&rec)
		if res.Error != nil {
			return res.Error
		}
		// Zero rows means the doc_id row already exists: someone else
		// committed first. Real DB failures surface above as-is.
		if res.RowsAffected == 0 {
			return ErrLedgerConflict
		}
		return nil
	}

	res := db.Model(&model.DiscountLedgerRecord{}).
		Where("doc_id = ? AND version = ?", docID, expectedVersion).
		Updates(map[string]interface{}{
			"payload": string(payload),
			"version": expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLedgerConflict
	}
	return nil
}

func (r *stateRepository) GetFinalPricingSnapshot(ctx context.Context, docID string) (*Snapshot, error) {
	var rec model.PricingSnapshotRecord
	err := GetDB(ctx, r.db).First(&rec, "doc_id = ?", docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []model.FinalPricingRow
	if err := json.Unmarshal([]byte(rec.Payload), &rows); err != nil {
		return nil, fmt.Errorf("corrupt snapshot payload for %s: %w", docID, err)
	}
	return &Snapshot{Rows: rows, Currency: model.Currency(rec.Currency), Role: rec.Role}, nil
}

func (r *stateRepository) SetFinalPricingSnapshot(ctx context.Context, docID string, snap *Snapshot) error {
	db := GetDB(ctx, r.db)
	if snap == nil || snap.Rows == nil {
		return db.Where("doc_id = ?", docID).Delete(&model.PricingSnapshotRecord{}).Error
	}

	payload, err := json.Marshal(snap.Rows)
	if err != nil {
		return err
	}
	rec := model.PricingSnapshotRecord{
		DocID:    docID,
		Currency: string(snap.Currency),
		Role:     snap.Role,
		Payload:  string(payload),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "currency", "role", "updated_at"}),
	}).Create(&rec).Error
}
