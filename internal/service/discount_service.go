package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/pricing"
	"github.com/RohitYadav0014/AccelQuote/internal/repository"
	"github.com/RohitYadav0014/AccelQuote/internal/websocket"

	"github.com/shopspring/decimal"
)

// SubmitDiscountsRequest carries the per-item discount percents one role
// submits in a single batch.
type SubmitDiscountsRequest struct {
	Discounts map[string]decimal.Decimal `json:"discounts" binding:"required"`
	Currency  string                     `json:"currency,omitempty"`
}

// AdjustedDiscount reports a submitted value that was clamped to the role's
// authorization ceiling, so the submitter can be told what actually applied.
type AdjustedDiscount struct {
	Requested decimal.Decimal `json:"requested"`
	Applied   decimal.Decimal `json:"applied"`
	Ceiling   decimal.Decimal `json:"ceiling"`
}

// SubmitDiscountsResult is the outcome of one ledger commit.
type SubmitDiscountsResult struct {
	DocID            string                      `json:"doc_id"`
	Role             string                      `json:"role"`
	Applied          map[string]decimal.Decimal  `json:"applied"`
	Adjusted         map[string]AdjustedDiscount `json:"adjusted,omitempty"`
	Skipped          []string                    `json:"skipped,omitempty"`
	PendingApprovals int                         `json:"pending_approvals"`
	Version          int                         `json:"version"`
}

// LedgerItem is one item's workflow position as seen by a viewer role.
type LedgerItem struct {
	SalesEngineer *decimal.Decimal `json:"salesEngineer,omitempty"`
	SalesDirector *decimal.Decimal `json:"salesDirector,omitempty"`
	State         string           `json:"state"`
	Status        string           `json:"status"`
	Effective     decimal.Decimal  `json:"effective"`
}

// LedgerView is the full applied-discount ledger for one document.
type LedgerView struct {
	DocID            string                `json:"doc_id"`
	Items            map[string]LedgerItem `json:"items"`
	PendingApprovals int                   `json:"pending_approvals"`
	Version          int                   `json:"version"`
}

// DiscountService implements the two-role approval workflow over the
// applied-discount ledger.
type DiscountService interface {
	SubmitDiscounts(ctx context.Context, docID, userID, role string, values map[string]decimal.Decimal) (*SubmitDiscountsResult, error)
	GetLedger(ctx context.Context, docID, role string) (*LedgerView, error)
}

type discountService struct {
	docRepo   repository.DocumentRepository
	stateRepo repository.StateRepository
	txm       repository.TransactionManager
	audit     AuditService
	hub       *websocket.Hub
}

func NewDiscountService(docRepo repository.DocumentRepository, stateRepo repository.StateRepository, txm repository.TransactionManager, audit AuditService, hub *websocket.Hub) DiscountService {
	return &discountService{docRepo: docRepo, stateRepo: stateRepo, txm: txm, audit: audit, hub: hub}
}

// Commits retry a few times on version conflicts. The merge itself runs
// server-side against a fresh read, so a retry can never drop another
// session's edit.
const maxCommitAttempts = 3

// SubmitDiscounts clamps each submitted percent to the role's manufacturer
// ceiling, merges the values into the shared ledger under the submitter's own
// field only, and invalidates the pricing snapshot.
//
// A Sales Engineer submission writes salesEngineer and leaves any existing
// salesDirector decision untouched, flagging the item for re-approval via the
// value comparison. A Sales Director submission writes salesDirector: equal to
// the proposal it is an approval, different it is an override.
func (s *discountService) SubmitDiscounts(ctx context.Context, docID, userID, role string, values map[string]decimal.Decimal) (*SubmitDiscountsResult, error) {
	if role != model.RoleSalesEngineer && role != model.RoleSalesDirector {
		return nil, ErrInvalidRole
	}
	if len(values) == 0 {
		return nil, errors.New("no discounts submitted")
	}

	_, items, err := s.loadCatalog(ctx, docID)
	if err != nil {
		return nil, err
	}

	discounts, ok, err := s.stateRepo.GetDiscountTable(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoDiscountData
	}

	// Manufacturer per item id, first catalog occurrence wins.
	manufacturerOf := make(map[string]string, len(items))
	for _, it := range items {
		if _, seen := manufacturerOf[it.ItemID]; !seen {
			manufacturerOf[it.ItemID] = it.Manufacturer
		}
	}

	result := &SubmitDiscountsResult{
		DocID:    docID,
		Role:     role,
		Applied:  make(map[string]decimal.Decimal, len(values)),
		Adjusted: make(map[string]AdjustedDiscount),
	}

	for itemID, requested := range values {
		manufacturer, known := manufacturerOf[itemID]
		if !known {
			result.Skipped = append(result.Skipped, itemID)
			continue
		}

		// Missing discount entry means ceiling 0: the role may not discount
		// this manufacturer at all.
		ceiling := decimal.Zero
		if entry, ok := discounts.Lookup(manufacturer); ok {
			ceiling = entry.Ceiling(role)
		}

		applied, adjusted := pricing.Clamp(requested, ceiling)
		result.Applied[itemID] = applied
		if adjusted {
			result.Adjusted[itemID] = AdjustedDiscount{Requested: requested, Applied: applied, Ceiling: ceiling}
		}
	}
	if len(result.Applied) == 0 {
		return nil, errors.New("no submitted items belong to this document")
	}

	var committed model.AppliedDiscountLedger
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
			ledger, version, err := s.stateRepo.GetAppliedDiscounts(txCtx, docID)
			if err != nil {
				return err
			}

			for itemID, percent := range result.Applied {
				record := ledger[itemID]
				p := percent
				if role == model.RoleSalesEngineer {
					record.SalesEngineerPercent = &p
				} else {
					record.SalesDirectorPercent = &p
				}
				ledger[itemID] = record
			}

			if err := s.stateRepo.SetAppliedDiscounts(txCtx, docID, ledger, version); err != nil {
				return err
			}
			// Ledger changed: cached final pricing no longer reflects it.
			if err := s.stateRepo.SetFinalPricingSnapshot(txCtx, docID, nil); err != nil {
				return err
			}

			committed = ledger
			result.Version = version + 1
			return nil
		})
		if !errors.Is(err, repository.ErrLedgerConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	result.PendingApprovals = committed.PendingCount()

	action := model.ActionProposeDiscount
	if role == model.RoleSalesDirector {
		action = model.ActionDecideDiscount
	}
	detailPayload, _ := json.Marshal(result.Applied)
	s.audit.Record(ctx, userID, action, docID, "", json.RawMessage(detailPayload))

	s.hub.BroadcastEvent(websocket.Event{Type: websocket.EventDiscountDataUpdated, DocID: docID, Role: role})
	return result, nil
}

// loadCatalog mirrors the pricing service's precondition: submissions only
// make sense against an extracted catalog.
func (s *discountService) loadCatalog(ctx context.Context, docID string) (*model.Document, []model.LineItem, error) {
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

// GetLedger returns every item's workflow position, with the effective
// percent resolved for the viewer's role.
func (s *discountService) GetLedger(ctx context.Context, docID, role string) (*LedgerView, error) {
	ledger, version, err := s.stateRepo.GetAppliedDiscounts(ctx, docID)
	if err != nil {
		return nil, err
	}

	view := &LedgerView{
		DocID:            docID,
		Items:            make(map[string]LedgerItem, len(ledger)),
		PendingApprovals: ledger.PendingCount(),
		Version:          version,
	}
	for itemID, record := range ledger {
		view.Items[itemID] = LedgerItem{
			SalesEngineer: record.SalesEngineerPercent,
			SalesDirector: record.SalesDirectorPercent,
			State:         string(record.State()),
			Status:        record.StatusLabel(),
			Effective:     record.EffectivePercent(role),
		}
	}
	return view, nil
}
