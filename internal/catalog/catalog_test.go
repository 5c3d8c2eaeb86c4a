package catalog

import (
	"encoding/json"
	"testing"

	"github.com/RohitYadav0014/AccelQuote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePlainArray(t *testing.T) {
	raw := json.RawMessage(`[
		{"Item ID": "X1", "Item Description": "Valve", "Quantity": 5, "Manufacturer": "M1"},
		{"Item ID": "X2", "Item Description": "Seal", "Quantity": 2, "Manufacturer": "M2"}
	]`)

	items := Normalize(raw)
	require.Len(t, items, 2)
	assert.Equal(t, "X1", items[0].ItemID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "M2", items[1].Manufacturer)
}

func TestNormalizeFencedStringBlob(t *testing.T) {
	inner := "```json\n[{\"Item ID\": \"X1\", \"Quantity\": 3, \"Manufacturer\": \"M1\"}]\n```"
	raw, err := json.Marshal(inner)
	require.NoError(t, err)

	items := Normalize(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "X1", items[0].ItemID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestNormalizeSingleObject(t *testing.T) {
	raw := json.RawMessage(`{"Item ID": "X1", "Quantity": 1, "Manufacturer": "M1"}`)

	items := Normalize(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "X1", items[0].ItemID)
}

func TestNormalizeKeepsGoodLinesPastMalformedOnes(t *testing.T) {
	raw := json.RawMessage(`[
		{"Item ID": "X1", "Quantity": 5, "Manufacturer": "M1"},
		"this element is not an item",
		{"Item ID": "X2", "Quantity": 2, "Manufacturer": "M2"}
	]`)

	items := Normalize(raw)
	require.Len(t, items, 2, "only the malformed element is dropped")
	assert.Equal(t, "X1", items[0].ItemID)
	assert.Equal(t, "X2", items[1].ItemID)
}

func TestNormalizeQuantityAsText(t *testing.T) {
	raw := json.RawMessage(`[{"Item ID": "X1", "Quantity": "6", "Manufacturer": "M1"}]`)

	items := Normalize(raw)
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestNormalizeBadInputDegradesToEmpty(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize(json.RawMessage(`not json at all`)))
	assert.Nil(t, Normalize(json.RawMessage(`"plain prose, no items"`)))
}

func TestNormalizeDefaultsQuantityToOne(t *testing.T) {
	raw := json.RawMessage(`[
		{"Item ID": "X1", "Manufacturer": "M1"},
		{"Item ID": "X2", "Quantity": 0, "Manufacturer": "M1"},
		{"Item ID": "X3", "Quantity": -4, "Manufacturer": "M1"}
	]`)

	items := Normalize(raw)
	require.Len(t, items, 3)
	for _, it := range items {
		assert.Equal(t, 1, it.Quantity, "item %s", it.ItemID)
	}
}

func TestUnwrapFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, UnwrapFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, UnwrapFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, UnwrapFence(`{"a":1}`), "unfenced text passes through")
}

func TestDisplayGroupsCollapseButKeepTotals(t *testing.T) {
	items := []model.LineItem{
		{ItemID: "SPB2800", Description: "Breaker", Quantity: 6, Manufacturer: "APPLETON"},
		{ItemID: "SPB2800", Description: "Breaker", Quantity: 3, Manufacturer: "APPLETON"},
		{ItemID: "X9", Description: "Gasket", Quantity: 1, Manufacturer: "M2"},
	}

	groups := DisplayGroups(items)
	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups[0].Lines)
	assert.Equal(t, 9, groups[0].TotalQty)
	assert.Equal(t, 1, groups[1].Lines)
}

func TestManufacturersDistinctInOrder(t *testing.T) {
	items := []model.LineItem{
		{ItemID: "A", Manufacturer: "M2"},
		{ItemID: "B", Manufacturer: "M1"},
		{ItemID: "C", Manufacturer: "M2"},
		{ItemID: "D", Manufacturer: ""},
	}

	assert.Equal(t, []string{"M2", "M1"}, Manufacturers(items))
}
