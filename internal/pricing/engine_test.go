package pricing

import (
	"testing"

	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/pkg/numeric"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func amount(s string) numeric.Amount {
	return numeric.Amount{Decimal: dec(s)}
}

// Fixture mirrors a small single-manufacturer document: X1 at list price 90,
// CNP factor 0.8 in USD, SE ceiling 5%, SD ceiling 25%.
func fixtureInput(role string, ledger model.AppliedDiscountLedger) Input {
	return Input{
		Catalog: []model.LineItem{
			{ItemID: "X1", Description: "Valve assembly", Quantity: 5, Manufacturer: "M1"},
		},
		Prices: model.PriceTable{
			{ItemID: "X1", GlobalListPrice: amount("90")},
		},
		Discounts: model.DiscountTable{
			{
				Manufacturer:         "M1",
				CNPFactorUSD:         amount("0.8"),
				CNPFactorEUR:         amount("0.75"),
				CNPFactorGBP:         amount("0.7"),
				CeilingSalesEngineer: amount("5"),
				CeilingSalesDirector: amount("25"),
			},
		},
		Currency: model.CurrencyUSD,
		Ledger:   ledger,
		Role:     role,
	}
}

func TestComputeFinalPricingEngineerProposal(t *testing.T) {
	ledger := model.AppliedDiscountLedger{
		"X1": {SalesEngineerPercent: decPtr("5")},
	}

	rows := ComputeFinalPricing(fixtureInput(model.RoleSalesEngineer, ledger))
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.NetUnitPrice.Equal(dec("68.4")), "net unit price = %s", row.NetUnitPrice)
	assert.True(t, row.LineTotal.Equal(dec("342")), "line total = %s", row.LineTotal)
	assert.True(t, row.AppliedDiscountPercent.Equal(dec("5")))
	assert.Equal(t, model.DiscountLabelPending, row.DiscountStatus)
}

func TestComputeFinalPricingDirectorFallsBackToProposal(t *testing.T) {
	ledger := model.AppliedDiscountLedger{
		"X1": {SalesEngineerPercent: decPtr("5")},
	}

	rows := ComputeFinalPricing(fixtureInput(model.RoleSalesDirector, ledger))
	require.Len(t, rows, 1)

	// No director decision yet: the pending proposal prices the line.
	assert.True(t, rows[0].NetUnitPrice.Equal(dec("68.4")))
	assert.True(t, rows[0].LineTotal.Equal(dec("342")))
}

func TestComputeFinalPricingDirectorOverrideDoesNotLeakToEngineer(t *testing.T) {
	ledger := model.AppliedDiscountLedger{
		"X1": {SalesEngineerPercent: decPtr("5"), SalesDirectorPercent: decPtr("10")},
	}

	sdRows := ComputeFinalPricing(fixtureInput(model.RoleSalesDirector, ledger))
	require.Len(t, sdRows, 1)
	assert.True(t, sdRows[0].NetUnitPrice.Equal(dec("64.8")), "director sees own decision: %s", sdRows[0].NetUnitPrice)
	assert.Equal(t, model.DiscountLabelOverridden, sdRows[0].DiscountStatus)

	// The engineer's view still prices at their own proposal.
	seRows := ComputeFinalPricing(fixtureInput(model.RoleSalesEngineer, ledger))
	require.Len(t, seRows, 1)
	assert.True(t, seRows[0].NetUnitPrice.Equal(dec("68.4")))
}

func TestComputeFinalPricingUnsetItemPricesAtZeroPercent(t *testing.T) {
	rows := ComputeFinalPricing(fixtureInput(model.RoleSalesEngineer, model.AppliedDiscountLedger{}))
	require.Len(t, rows, 1)

	assert.True(t, rows[0].AppliedDiscountPercent.IsZero())
	assert.True(t, rows[0].NetUnitPrice.Equal(dec("72")), "90 * 0.8 with no discount")
	assert.Equal(t, model.DiscountLabelNone, rows[0].DiscountStatus)
}

func TestComputeFinalPricingIsDeterministic(t *testing.T) {
	ledger := model.AppliedDiscountLedger{
		"X1": {SalesEngineerPercent: decPtr("5")},
	}
	in := fixtureInput(model.RoleSalesEngineer, ledger)

	first := ComputeFinalPricing(in)
	second := ComputeFinalPricing(in)
	assert.Equal(t, first, second)
}

func TestComputeFinalPricingDuplicateLotsPricePerLine(t *testing.T) {
	in := Input{
		Catalog: []model.LineItem{
			{ItemID: "SPB2800", Description: "Breaker", Quantity: 6, Manufacturer: "APPLETON"},
			{ItemID: "SPB2800", Description: "Breaker", Quantity: 3, Manufacturer: "APPLETON"},
		},
		Prices: model.PriceTable{
			{ItemID: "SPB2800", GlobalListPrice: amount("100")},
		},
		Discounts: model.DiscountTable{
			{Manufacturer: "APPLETON", CNPFactorUSD: amount("0.9"), CeilingSalesEngineer: amount("10"), CeilingSalesDirector: amount("30")},
		},
		Currency: model.CurrencyUSD,
		Ledger: model.AppliedDiscountLedger{
			"SPB2800": {SalesEngineerPercent: decPtr("10")},
		},
		Role: model.RoleSalesEngineer,
	}

	rows := ComputeFinalPricing(in)
	require.Len(t, rows, 2, "each physical line keeps its own row")

	// Same per-unit economics, independent totals.
	assert.True(t, rows[0].NetUnitPrice.Equal(rows[1].NetUnitPrice))
	assert.True(t, rows[0].LineTotal.Equal(dec("486")), "100 * 0.9 * 0.9 * 6")
	assert.True(t, rows[1].LineTotal.Equal(dec("243")))
}

func TestComputeFinalPricingMissingDataDegradesToZero(t *testing.T) {
	in := Input{
		Catalog: []model.LineItem{
			{ItemID: "UNKNOWN", Quantity: 2, Manufacturer: "NOBODY"},
		},
		Prices:    model.PriceTable{},
		Discounts: model.DiscountTable{},
		Currency:  model.CurrencyUSD,
		Ledger:    model.AppliedDiscountLedger{},
		Role:      model.RoleSalesEngineer,
	}

	rows := ComputeFinalPricing(in)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ListPrice.IsZero())
	assert.True(t, rows[0].CNPFactor.IsZero())
	assert.True(t, rows[0].NetUnitPrice.IsZero())
	assert.True(t, rows[0].LineTotal.IsZero())
}

func TestComputeFinalPricingCurrencySelectsFactor(t *testing.T) {
	in := fixtureInput(model.RoleSalesEngineer, model.AppliedDiscountLedger{})
	in.Currency = model.CurrencyEUR

	rows := ComputeFinalPricing(in)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].NetUnitPrice.Equal(dec("67.5")), "90 * 0.75")
}

func TestComputeFinalPricingOverridesShadowLedger(t *testing.T) {
	ledger := model.AppliedDiscountLedger{
		"X1": {SalesEngineerPercent: decPtr("5")},
	}
	in := fixtureInput(model.RoleSalesEngineer, ledger)
	in.Overrides = map[string]decimal.Decimal{"X1": dec("2")}

	rows := ComputeFinalPricing(in)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].AppliedDiscountPercent.Equal(dec("2")))
	assert.True(t, rows[0].NetUnitPrice.Equal(dec("70.56")), "90 * 0.8 * 0.98")
}

func TestClamp(t *testing.T) {
	ceiling := dec("25")

	applied, adjusted := Clamp(dec("30"), ceiling)
	assert.True(t, adjusted, "above ceiling is clamped")
	assert.True(t, applied.Equal(ceiling))

	applied, adjusted = Clamp(dec("-3"), ceiling)
	assert.True(t, adjusted, "negative is clamped to zero")
	assert.True(t, applied.IsZero())

	applied, adjusted = Clamp(dec("25"), ceiling)
	assert.False(t, adjusted, "value at the ceiling passes through")
	assert.True(t, applied.Equal(ceiling))
}
