package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RohitYadav0014/AccelQuote/internal/client"
	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/pricing"
	"github.com/RohitYadav0014/AccelQuote/internal/repository"
	"github.com/RohitYadav0014/AccelQuote/internal/websocket"

	"github.com/shopspring/decimal"
)

// FinalPricingResult is the fully priced quote for one document, as seen by
// one role under one currency.
type FinalPricingResult struct {
	DocID            string                  `json:"doc_id"`
	Currency         model.Currency          `json:"currency"`
	Role             string                  `json:"role"`
	Rows             []model.FinalPricingRow `json:"rows"`
	QuoteTotal       decimal.Decimal         `json:"quote_total"`
	PendingApprovals int                     `json:"pending_approvals"`
	Cached           bool                    `json:"cached"`
}

// PricingService drives the three pricing steps: fetch item prices, fetch
// discount info, compute the final pricing table.
type PricingService interface {
	FetchItemPrices(ctx context.Context, docID, userID string) (model.PriceTable, error)
	FetchDiscountInfo(ctx context.Context, docID, userID string) (model.DiscountTable, error)
	GetItemPrices(ctx context.Context, docID string) (model.PriceTable, error)
	GetDiscountTable(ctx context.Context, docID string) (model.DiscountTable, error)
	ComputeFinalPricing(ctx context.Context, docID, userID, role, currency string) (*FinalPricingResult, error)
	Preview(ctx context.Context, docID, role, currency string, overrides map[string]decimal.Decimal) (*FinalPricingResult, error)
	GetSnapshot(ctx context.Context, docID string) (*FinalPricingResult, error)
}

type pricingService struct {
	docRepo   repository.DocumentRepository
	stateRepo repository.StateRepository
	engine    client.QuoteEngineClient
	audit     AuditService
	hub       *websocket.Hub
}

func NewPricingService(docRepo repository.DocumentRepository, stateRepo repository.StateRepository, engine client.QuoteEngineClient, audit AuditService, hub *websocket.Hub) PricingService {
	return &pricingService{docRepo: docRepo, stateRepo: stateRepo, engine: engine, audit: audit, hub: hub}
}

// loadCatalog resolves the document's parsed catalog, failing when the
// document was never extracted or the extraction yielded no items.
func (s *pricingService) loadCatalog(ctx context.Context, docID string) (*model.Document, []model.LineItem, error) {
	doc, err := s.docRepo.GetByFileID(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil || doc.Status != model.DocumentStatusExtracted {
		return nil, nil, ErrNotExtracted
	}

	detail := parseExtraction(docID, json.RawMessage(doc.Extraction))
	if len(detail.Catalog) == 0 {
		return nil, nil, ErrEmptyCatalog
	}
	return doc, detail.Catalog, nil
}

func marshalCatalog(items []model.LineItem) (string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// FetchItemPrices sends the document's catalog to the price backend and
// caches the result. A successful call with no usable rows is still a
// failure: the pricing steps cannot proceed on an empty table.
func (s *pricingService) FetchItemPrices(ctx context.Context, docID, userID string) (model.PriceTable, error) {
	_, items, err := s.loadCatalog(ctx, docID)
	if err != nil {
		return nil, err
	}
	itemsJSON, err := marshalCatalog(items)
	if err != nil {
		return nil, err
	}

	table, err := s.engine.FetchItemPrices(ctx, itemsJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: item prices for %s", ErrEmptyUpstream, docID)
	}

	if err := s.stateRepo.SetItemPrices(ctx, docID, table); err != nil {
		return nil, err
	}
	// Stored prices changed, any cached final pricing is stale.
	if err := s.stateRepo.SetFinalPricingSnapshot(ctx, docID, nil); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, model.ActionFetchItemPrices, docID, "", map[string]interface{}{
		"entries": len(table),
	})
	return table, nil
}

// FetchDiscountInfo sends the catalog to the CNP/discount backend and caches
// the per-manufacturer factor and ceiling table.
func (s *pricingService) FetchDiscountInfo(ctx context.Context, docID, userID string) (model.DiscountTable, error) {
	_, items, err := s.loadCatalog(ctx, docID)
	if err != nil {
		return nil, err
	}
	itemsJSON, err := marshalCatalog(items)
	if err != nil {
		return nil, err
	}

	table, err := s.engine.FetchDiscountInfo(ctx, itemsJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: discount info for %s", ErrEmptyUpstream, docID)
	}

	if err := s.stateRepo.SetDiscountTable(ctx, docID, table); err != nil {
		return nil, err
	}
	if err := s.stateRepo.SetFinalPricingSnapshot(ctx, docID, nil); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, model.ActionFetchDiscountInfo, docID, "", map[string]interface{}{
		"manufacturers": len(table.Distinct()),
	})
	s.hub.BroadcastEvent(websocket.Event{Type: websocket.EventDiscountDataUpdated, DocID: docID})
	return table, nil
}

// GetItemPrices returns the cached price table for a document.
func (s *pricingService) GetItemPrices(ctx context.Context, docID string) (model.PriceTable, error) {
	table, ok, err := s.stateRepo.GetItemPrices(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoPriceData
	}
	return table, nil
}

// GetDiscountTable returns the cached CNP/discount table for a document.
func (s *pricingService) GetDiscountTable(ctx context.Context, docID string) (model.DiscountTable, error) {
	table, ok, err := s.stateRepo.GetDiscountTable(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoDiscountData
	}
	return table, nil
}

// resolveCurrency picks the quoting currency: explicit request parameter
// first, then the currency derived from the document's geography.
func resolveCurrency(doc *model.Document, currency string) model.Currency {
	switch model.Currency(currency) {
	case model.CurrencyUSD, model.CurrencyEUR, model.CurrencyGBP:
		return model.Currency(currency)
	}
	if doc.Currency != "" {
		return model.Currency(doc.Currency)
	}
	return model.CurrencyForGeography(doc.Geography)
}

// gather loads everything the pricing engine needs for one document.
func (s *pricingService) gather(ctx context.Context, docID, role, currency string) (pricing.Input, model.AppliedDiscountLedger, error) {
	doc, items, err := s.loadCatalog(ctx, docID)
	if err != nil {
		return pricing.Input{}, nil, err
	}

	prices, ok, err := s.stateRepo.GetItemPrices(ctx, docID)
	if err != nil {
		return pricing.Input{}, nil, err
	}
	if !ok {
		return pricing.Input{}, nil, ErrNoPriceData
	}

	discounts, ok, err := s.stateRepo.GetDiscountTable(ctx, docID)
	if err != nil {
		return pricing.Input{}, nil, err
	}
	if !ok {
		return pricing.Input{}, nil, ErrNoDiscountData
	}

	ledger, _, err := s.stateRepo.GetAppliedDiscounts(ctx, docID)
	if err != nil {
		return pricing.Input{}, nil, err
	}

	in := pricing.Input{
		Catalog:   items,
		Prices:    prices,
		Discounts: discounts,
		Currency:  resolveCurrency(doc, currency),
		Ledger:    ledger,
		Role:      role,
	}
	return in, ledger, nil
}

// ComputeFinalPricing builds the final pricing table and caches it as the
// document's snapshot. Requires both fetch steps to have run first.
func (s *pricingService) ComputeFinalPricing(ctx context.Context, docID, userID, role, currency string) (*FinalPricingResult, error) {
	in, ledger, err := s.gather(ctx, docID, role, currency)
	if err != nil {
		return nil, err
	}

	rows := pricing.ComputeFinalPricing(in)
	result := buildResult(docID, in.Currency, role, rows, ledger, false)

	snap := &repository.Snapshot{Rows: rows, Currency: in.Currency, Role: role}
	if err := s.stateRepo.SetFinalPricingSnapshot(ctx, docID, snap); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, model.ActionComputePricing, docID, "", map[string]interface{}{
		"currency":    in.Currency,
		"role":        role,
		"rows":        len(rows),
		"quote_total": result.QuoteTotal,
	})
	s.hub.BroadcastEvent(websocket.Event{Type: websocket.EventFinalPricingUpdated, DocID: docID, Role: role})
	return result, nil
}

// Preview recomputes the table with in-progress edit values shadowing the
// ledger. Edits are clamped to the role's manufacturer ceiling, the same
// bound a submit would enforce. Nothing is persisted, audited or broadcast.
func (s *pricingService) Preview(ctx context.Context, docID, role, currency string, overrides map[string]decimal.Decimal) (*FinalPricingResult, error) {
	in, ledger, err := s.gather(ctx, docID, role, currency)
	if err != nil {
		return nil, err
	}
	in.Overrides = clampOverrides(overrides, in.Catalog, in.Discounts, role)

	rows := pricing.ComputeFinalPricing(in)
	return buildResult(docID, in.Currency, role, rows, ledger, false), nil
}

// clampOverrides limits preview edit values to what the role could actually
// commit. Overrides for items outside the catalog are dropped.
func clampOverrides(overrides map[string]decimal.Decimal, items []model.LineItem, discounts model.DiscountTable, role string) map[string]decimal.Decimal {
	if len(overrides) == 0 {
		return overrides
	}

	out := make(map[string]decimal.Decimal, len(overrides))
	for _, item := range items {
		requested, ok := overrides[item.ItemID]
		if !ok {
			continue
		}
		if _, done := out[item.ItemID]; done {
			continue
		}

		// Missing discount entry means ceiling 0, as on submit.
		ceiling := decimal.Zero
		if entry, ok := discounts.Lookup(item.Manufacturer); ok {
			ceiling = entry.Ceiling(role)
		}
		clamped, _ := pricing.Clamp(requested, ceiling)
		out[item.ItemID] = clamped
	}
	return out
}

// GetSnapshot returns the cached final pricing table, or nil when no valid
// snapshot exists (never computed, or invalidated by a newer change).
func (s *pricingService) GetSnapshot(ctx context.Context, docID string) (*FinalPricingResult, error) {
	snap, err := s.stateRepo.GetFinalPricingSnapshot(ctx, docID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}

	ledger, _, err := s.stateRepo.GetAppliedDiscounts(ctx, docID)
	if err != nil {
		return nil, err
	}
	return buildResult(docID, snap.Currency, snap.Role, snap.Rows, ledger, true), nil
}

func buildResult(docID string, currency model.Currency, role string, rows []model.FinalPricingRow, ledger model.AppliedDiscountLedger, cached bool) *FinalPricingResult {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.LineTotal)
	}
	return &FinalPricingResult{
		DocID:            docID,
		Currency:         currency,
		Role:             role,
		Rows:             rows,
		QuoteTotal:       total,
		PendingApprovals: ledger.PendingCount(),
		Cached:           cached,
	}
}
