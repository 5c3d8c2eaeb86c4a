package model

import (
	"testing"

	"github.com/RohitYadav0014/AccelQuote/pkg/numeric"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func mustAmount(s string) numeric.Amount {
	return numeric.Amount{Decimal: decimal.RequireFromString(s)}
}

func TestAppliedDiscountState(t *testing.T) {
	assert.Equal(t, DiscountUnset, AppliedDiscount{}.State())
	assert.Equal(t, DiscountProposedBySE, AppliedDiscount{SalesEngineerPercent: pct("5")}.State())
	assert.Equal(t, DiscountDecided, AppliedDiscount{SalesEngineerPercent: pct("5"), SalesDirectorPercent: pct("10")}.State())
	// A director can decide an item nobody proposed.
	assert.Equal(t, DiscountDecided, AppliedDiscount{SalesDirectorPercent: pct("10")}.State())
}

func TestAppliedDiscountStatusLabel(t *testing.T) {
	assert.Equal(t, DiscountLabelNone, AppliedDiscount{}.StatusLabel())
	assert.Equal(t, DiscountLabelPending, AppliedDiscount{SalesEngineerPercent: pct("5")}.StatusLabel())
	assert.Equal(t, DiscountLabelApproved, AppliedDiscount{SalesEngineerPercent: pct("5"), SalesDirectorPercent: pct("5")}.StatusLabel())
	assert.Equal(t, DiscountLabelOverridden, AppliedDiscount{SalesEngineerPercent: pct("5"), SalesDirectorPercent: pct("10")}.StatusLabel())
	// Director decision without a proposal counts as an override.
	assert.Equal(t, DiscountLabelOverridden, AppliedDiscount{SalesDirectorPercent: pct("10")}.StatusLabel())
}

func TestEffectivePercentRolePrecedence(t *testing.T) {
	both := AppliedDiscount{SalesEngineerPercent: pct("5"), SalesDirectorPercent: pct("10")}

	assert.True(t, both.EffectivePercent(RoleSalesEngineer).Equal(decimal.RequireFromString("5")),
		"engineer always sees their own proposal")
	assert.True(t, both.EffectivePercent(RoleSalesDirector).Equal(decimal.RequireFromString("10")))

	seOnly := AppliedDiscount{SalesEngineerPercent: pct("5")}
	assert.True(t, seOnly.EffectivePercent(RoleSalesDirector).Equal(decimal.RequireFromString("5")),
		"director falls back to the pending proposal")

	assert.True(t, AppliedDiscount{}.EffectivePercent(RoleSalesEngineer).IsZero())
	assert.True(t, both.EffectivePercent(RoleAdmin).IsZero(), "roles outside the workflow price at zero")
}

func TestLedgerPendingCount(t *testing.T) {
	ledger := AppliedDiscountLedger{
		"A": {SalesEngineerPercent: pct("5")},
		"B": {SalesEngineerPercent: pct("3"), SalesDirectorPercent: pct("3")},
		"C": {},
	}
	assert.Equal(t, 1, ledger.PendingCount())
}

func TestCeilingPercentHeuristic(t *testing.T) {
	// Values above 1 are already percentages; at or below 1 they are decimals.
	entry := DiscountEntry{
		CeilingSalesEngineer: mustAmount("0.05"),
		CeilingSalesDirector: mustAmount("25"),
	}
	assert.True(t, entry.Ceiling(RoleSalesEngineer).Equal(decimal.RequireFromString("5")))
	assert.True(t, entry.Ceiling(RoleSalesDirector).Equal(decimal.RequireFromString("25")))
	assert.True(t, entry.Ceiling(RoleAdmin).IsZero())
}

func TestCurrencyForGeography(t *testing.T) {
	assert.Equal(t, CurrencyEUR, CurrencyForGeography("Western Europe"))
	assert.Equal(t, CurrencyGBP, CurrencyForGeography("UK"))
	assert.Equal(t, CurrencyUSD, CurrencyForGeography("North America"))
	assert.Equal(t, CurrencyUSD, CurrencyForGeography(""))
}
