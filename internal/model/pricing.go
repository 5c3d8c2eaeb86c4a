package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/RohitYadav0014/AccelQuote/pkg/numeric"
)

// Currency selects which CNP factor applies to a document.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// CurrencyForGeography maps the extracted geography field to the default
// quoting currency.
func CurrencyForGeography(geography string) Currency {
	g := strings.ToLower(geography)
	switch {
	case strings.Contains(g, "europe"):
		return CurrencyEUR
	case strings.Contains(g, "uk"):
		return CurrencyGBP
	default:
		return CurrencyUSD
	}
}

// PriceEntry is one row of the item price table returned by the quote-engine
// backend. Entries come back positionally aligned to the request, not
// deduplicated; consumers must index by item id taking the first match.
// The field names mirror the backend's wire format.
type PriceEntry struct {
	ItemID          string         `json:"Item ID"`
	GlobalListPrice numeric.Amount `json:"GlobalLP"`
}

// PriceTable indexes price entries by item id, first occurrence wins.
type PriceTable []PriceEntry

// Lookup returns the first entry for the given item id.
func (t PriceTable) Lookup(itemID string) (PriceEntry, bool) {
	for _, e := range t {
		if e.ItemID == itemID {
			return e, true
		}
	}
	return PriceEntry{}, false
}

// DiscountEntry carries the manufacturer-level CNP factors and the per-role
// discount ceilings. One entry is expected per distinct manufacturer;
// duplicates collapse to the first occurrence seen.
type DiscountEntry struct {
	Manufacturer         string         `json:"Manufacturer"`
	PriceList            string         `json:"Price List"`
	CNPFactorUSD         numeric.Amount `json:"CNP FACTOR USD"`
	CNPFactorEUR         numeric.Amount `json:"CNP FACTOR EURO"`
	CNPFactorGBP         numeric.Amount `json:"CNP FACTOR UKP"`
	CeilingSalesEngineer numeric.Amount `json:"Discount Authorization Sales Engineer"`
	CeilingSalesDirector numeric.Amount `json:"Discount Authorization Sales Director"`
}

// CNPFactor returns the factor for the selected currency.
func (d DiscountEntry) CNPFactor(c Currency) decimal.Decimal {
	switch c {
	case CurrencyEUR:
		return d.CNPFactorEUR.Decimal
	case CurrencyGBP:
		return d.CNPFactorGBP.Decimal
	default:
		return d.CNPFactorUSD.Decimal
	}
}

// Ceiling returns the maximum discount percent the given role may apply for
// this manufacturer. Backends are inconsistent about format: values above 1
// are already percentages, values at or below 1 are decimals and scale by 100.
func (d DiscountEntry) Ceiling(role string) decimal.Decimal {
	var raw decimal.Decimal
	switch role {
	case RoleSalesDirector:
		raw = d.CeilingSalesDirector.Decimal
	case RoleSalesEngineer:
		raw = d.CeilingSalesEngineer.Decimal
	default:
		return decimal.Zero
	}
	if raw.GreaterThan(decimal.NewFromInt(1)) {
		return raw
	}
	return raw.Mul(decimal.NewFromInt(100))
}

// DiscountTable indexes discount entries by manufacturer, first occurrence wins.
type DiscountTable []DiscountEntry

// Lookup returns the first entry for the given manufacturer.
func (t DiscountTable) Lookup(manufacturer string) (DiscountEntry, bool) {
	for _, e := range t {
		if e.Manufacturer == manufacturer {
			return e, true
		}
	}
	return DiscountEntry{}, false
}

// Distinct collapses the table to one entry per manufacturer, keeping the
// first occurrence. Display-layer grouping only.
func (t DiscountTable) Distinct() DiscountTable {
	seen := make(map[string]bool, len(t))
	out := make(DiscountTable, 0, len(t))
	for _, e := range t {
		if seen[e.Manufacturer] {
			continue
		}
		seen[e.Manufacturer] = true
		out = append(out, e)
	}
	return out
}

// FinalPricingRow is one fully priced quote line. It is derived state:
// reproducible from catalog + price table + discount table + ledger + currency
// and cached only as a snapshot.
type FinalPricingRow struct {
	ItemID                 string          `json:"item_id"`
	Description            string          `json:"description"`
	Quantity               int             `json:"quantity"`
	Manufacturer           string          `json:"manufacturer"`
	ListPrice              decimal.Decimal `json:"list_price"`
	CNPFactor              decimal.Decimal `json:"cnp_factor"`
	AppliedDiscountPercent decimal.Decimal `json:"applied_discount_percent"`
	NetUnitPrice           decimal.Decimal `json:"net_unit_price"`
	LineTotal              decimal.Decimal `json:"line_total"`
	DiscountStatus         string          `json:"discount_status"`
}
