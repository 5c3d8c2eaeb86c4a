// Package pricing implements the final pricing computation: catalog rows
// joined with the price and discount tables under a currency and viewer role.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/RohitYadav0014/AccelQuote/internal/model"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Input bundles everything ComputeFinalPricing needs. Role and document
// context are explicit parameters; the engine reads no ambient state.
type Input struct {
	Catalog   []model.LineItem
	Prices    model.PriceTable
	Discounts model.DiscountTable
	Currency  model.Currency
	Ledger    model.AppliedDiscountLedger
	Role      string

	// Overrides holds in-progress edit values for preview computation only.
	// They shadow the ledger but are never persisted here.
	Overrides map[string]decimal.Decimal
}

// ComputeFinalPricing produces one row per physical catalog line, in catalog
// order. It is pure and deterministic: identical inputs yield identical
// output, which makes the result safe to snapshot.
//
// Per line: a missing price entry prices at 0, a missing discount entry gets
// factor 0 and ceiling 0, and the effective discount percent follows the
// role-precedence rules of the approval workflow.
func ComputeFinalPricing(in Input) []model.FinalPricingRow {
	rows := make([]model.FinalPricingRow, 0, len(in.Catalog))

	for _, item := range in.Catalog {
		listPrice := decimal.Zero
		if p, ok := in.Prices.Lookup(item.ItemID); ok {
			listPrice = p.GlobalListPrice.Decimal
		}

		factor := decimal.Zero
		if d, ok := in.Discounts.Lookup(item.Manufacturer); ok {
			factor = d.CNPFactor(in.Currency)
		}

		applied := in.Ledger[item.ItemID]
		percent := applied.EffectivePercent(in.Role)
		if in.Overrides != nil {
			if v, ok := in.Overrides[item.ItemID]; ok {
				percent = v
			}
		}

		netUnit := listPrice.Mul(factor).Mul(one.Sub(percent.Div(hundred)))
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		rows = append(rows, model.FinalPricingRow{
			ItemID:                 item.ItemID,
			Description:            item.Description,
			Quantity:               qty,
			Manufacturer:           item.Manufacturer,
			ListPrice:              listPrice,
			CNPFactor:              factor,
			AppliedDiscountPercent: percent,
			NetUnitPrice:           netUnit,
			LineTotal:              netUnit.Mul(decimal.NewFromInt(int64(qty))),
			DiscountStatus:         applied.StatusLabel(),
		})
	}
	return rows
}

// Clamp limits a submitted discount percent to [0, ceiling]. The bool reports
// whether the value was adjusted so callers can notify the submitter.
func Clamp(percent, ceiling decimal.Decimal) (decimal.Decimal, bool) {
	if percent.IsNegative() {
		return decimal.Zero, true
	}
	if percent.GreaterThan(ceiling) {
		return ceiling, true
	}
	return percent, false
}
