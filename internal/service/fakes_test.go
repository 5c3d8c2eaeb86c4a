package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/repository"
	"github.com/RohitYadav0014/AccelQuote/internal/websocket"

	"github.com/RohitYadav0014/AccelQuote/pkg/numeric"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustAmount(s string) numeric.Amount {
	return numeric.Amount{Decimal: dec(s)}
}

// fakeDocRepo serves documents from memory.
type fakeDocRepo struct {
	docs map[string]*model.Document
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*model.Document)}
}

func (f *fakeDocRepo) Upsert(_ context.Context, doc *model.Document) error {
	f.docs[doc.FileID] = doc
	return nil
}

func (f *fakeDocRepo) GetByFileID(_ context.Context, fileID string) (*model.Document, error) {
	return f.docs[fileID], nil
}

func (f *fakeDocRepo) List(_ context.Context, _, _ int) ([]model.Document, int64, error) {
	out := make([]model.Document, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDocRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, d := range f.docs {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

// fakeStateRepo mirrors the real adapter's version semantics in memory.
type fakeStateRepo struct {
	prices    map[string]model.PriceTable
	discounts map[string]model.DiscountTable
	ledgers   map[string]model.AppliedDiscountLedger
	versions  map[string]int
	snapshots map[string]*repository.Snapshot

	// conflictsLeft makes the next N ledger writes fail to exercise retries.
	conflictsLeft int
	// writeErr makes ledger writes fail with a non-conflict error.
	writeErr     error
	ledgerWrites int
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{
		prices:    make(map[string]model.PriceTable),
		discounts: make(map[string]model.DiscountTable),
		ledgers:   make(map[string]model.AppliedDiscountLedger),
		versions:  make(map[string]int),
		snapshots: make(map[string]*repository.Snapshot),
	}
}

func (f *fakeStateRepo) GetItemPrices(_ context.Context, docID string) (model.PriceTable, bool, error) {
	t, ok := f.prices[docID]
	return t, ok, nil
}

func (f *fakeStateRepo) SetItemPrices(_ context.Context, docID string, table model.PriceTable) error {
	f.prices[docID] = table
	return nil
}

func (f *fakeStateRepo) GetDiscountTable(_ context.Context, docID string) (model.DiscountTable, bool, error) {
	t, ok := f.discounts[docID]
	return t, ok, nil
}

func (f *fakeStateRepo) SetDiscountTable(_ context.Context, docID string, table model.DiscountTable) error {
	f.discounts[docID] = table
	return nil
}

func (f *fakeStateRepo) GetAppliedDiscounts(_ context.Context, docID string) (model.AppliedDiscountLedger, int, error) {
	ledger, ok := f.ledgers[docID]
	if !ok {
		return model.AppliedDiscountLedger{}, 0, nil
	}
	// Copy so callers cannot mutate stored state outside a commit.
	out := make(model.AppliedDiscountLedger, len(ledger))
	for k, v := range ledger {
		out[k] = v
	}
	return out, f.versions[docID], nil
}

func (f *fakeStateRepo) SetAppliedDiscounts(_ context.Context, docID string, ledger model.AppliedDiscountLedger, expectedVersion int) error {
	f.ledgerWrites++
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return repository.ErrLedgerConflict
	}
	if f.versions[docID] != expectedVersion {
		return repository.ErrLedgerConflict
	}
	f.ledgers[docID] = ledger
	f.versions[docID] = expectedVersion + 1
	return nil
}

func (f *fakeStateRepo) GetFinalPricingSnapshot(_ context.Context, docID string) (*repository.Snapshot, error) {
	return f.snapshots[docID], nil
}

func (f *fakeStateRepo) SetFinalPricingSnapshot(_ context.Context, docID string, snap *repository.Snapshot) error {
	if snap == nil || snap.Rows == nil {
		delete(f.snapshots, docID)
		return nil
	}
	f.snapshots[docID] = snap
	return nil
}

// fakeAuditRepo records entries for assertions.
type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, action string, _, _ int) ([]model.AuditLog, int64, error) {
	var out []model.AuditLog
	for _, e := range f.entries {
		if action == "" || e.Action == action {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// fakeEngine is a canned quote-engine backend.
type fakeEngine struct {
	files      []string
	extraction json.RawMessage
	prices     model.PriceTable
	discounts  model.DiscountTable
	err        error
}

func (f *fakeEngine) FetchFileList(_ context.Context) ([]string, error) {
	return f.files, f.err
}

func (f *fakeEngine) ExtractDocument(_ context.Context, _ string) (json.RawMessage, error) {
	return f.extraction, f.err
}

func (f *fakeEngine) FetchItemPrices(_ context.Context, _ string) (model.PriceTable, error) {
	return f.prices, f.err
}

func (f *fakeEngine) FetchDiscountInfo(_ context.Context, _ string) (model.DiscountTable, error) {
	return f.discounts, f.err
}

func runningHub() *websocket.Hub {
	hub := websocket.NewHub()
	go hub.Run()
	return hub
}

// seedExtractedDoc stores an extracted two-line document under docID.
func seedExtractedDoc(t *testing.T, repo *fakeDocRepo, docID string) {
	t.Helper()

	extraction := map[string]interface{}{
		"geography":     "USA",
		"customer_name": "Acme Process Co",
		"items_information": []model.LineItem{
			{ItemID: "X1", Description: "Valve assembly", Quantity: 5, Manufacturer: "M1"},
			{ItemID: "X2", Description: "Seal kit", Quantity: 2, Manufacturer: "M1"},
		},
	}
	payload, err := json.Marshal(extraction)
	require.NoError(t, err)

	repo.docs[docID] = &model.Document{
		FileID:     docID,
		Status:     model.DocumentStatusExtracted,
		Extraction: string(payload),
		Geography:  "USA",
		Currency:   string(model.CurrencyUSD),
	}
}

func seedPricingState(state *fakeStateRepo, docID string) {
	state.prices[docID] = model.PriceTable{
		{ItemID: "X1", GlobalListPrice: mustAmount("90")},
		{ItemID: "X2", GlobalListPrice: mustAmount("40")},
	}
	state.discounts[docID] = model.DiscountTable{
		{
			Manufacturer:         "M1",
			CNPFactorUSD:         mustAmount("0.8"),
			CNPFactorEUR:         mustAmount("0.75"),
			CNPFactorGBP:         mustAmount("0.7"),
			CeilingSalesEngineer: mustAmount("5"),
			CeilingSalesDirector: mustAmount("25"),
		},
	}
}
