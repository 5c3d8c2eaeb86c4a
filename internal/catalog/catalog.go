// Package catalog normalizes the raw item payload from the extraction
// backend into an ordered line-item sequence the pricing workflow can use.
package catalog

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/pkg/numeric"
)

var fenceOpen = regexp.MustCompile("(?i)^```(?:json)?[\r\n]*")

// UnwrapFence strips a markdown code fence from text the extraction model
// sometimes wraps around embedded JSON.
func UnwrapFence(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpen.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Normalize turns the items_information field of an extraction payload into
// an ordered catalog. The field may arrive as a JSON array, a single object,
// or a fenced/quoted text blob containing either. Malformed elements are
// dropped line by line and an unparseable payload degrades to an empty
// catalog: a bad extraction must not crash the pricing steps.
// Quantities that are absent or non-positive default to 1.
func Normalize(raw json.RawMessage) []model.LineItem {
	if len(raw) == 0 {
		return nil
	}

	data := []byte(strings.TrimSpace(string(raw)))

	// Text blob: unwrap the fence, then parse the inner JSON.
	var blob string
	if err := json.Unmarshal(data, &blob); err == nil {
		data = []byte(UnwrapFence(blob))
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		single, ok := decodeItem(data)
		if !ok || single.ItemID == "" {
			return nil
		}
		return []model.LineItem{single}
	}

	items := make([]model.LineItem, 0, len(elements))
	for _, el := range elements {
		// One malformed element must not take the rest of the catalog down.
		if item, ok := decodeItem(el); ok {
			items = append(items, item)
		}
	}
	return items
}

// decodeItem reads one catalog line. Extraction models sometimes emit the
// quantity as quoted or formatted text, so it decodes leniently before
// defaulting non-positive values to 1.
func decodeItem(raw []byte) (model.LineItem, bool) {
	var wire struct {
		ItemID       string         `json:"Item ID"`
		Description  string         `json:"Item Description"`
		Quantity     numeric.Amount `json:"Quantity"`
		Manufacturer string         `json:"Manufacturer"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return model.LineItem{}, false
	}

	qty := int(wire.Quantity.IntPart())
	if qty < 1 {
		qty = 1
	}
	return model.LineItem{
		ItemID:       wire.ItemID,
		Description:  wire.Description,
		Quantity:     qty,
		Manufacturer: wire.Manufacturer,
	}, true
}

// DisplayGroups collapses the catalog by item id + description for listing
// purposes. Pricing never uses this: every physical line keeps its own row.
func DisplayGroups(items []model.LineItem) []model.DisplayGroup {
	type key struct{ id, desc string }
	index := make(map[key]int, len(items))
	groups := make([]model.DisplayGroup, 0, len(items))

	for _, it := range items {
		k := key{it.ItemID, it.Description}
		if i, ok := index[k]; ok {
			groups[i].Lines++
			groups[i].TotalQty += it.Quantity
			continue
		}
		index[k] = len(groups)
		groups = append(groups, model.DisplayGroup{
			ItemID:      it.ItemID,
			Description: it.Description,
			Lines:       1,
			TotalQty:    it.Quantity,
		})
	}
	return groups
}

// Manufacturers returns the distinct manufacturers in catalog order.
func Manufacturers(items []model.LineItem) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Manufacturer == "" || seen[it.Manufacturer] {
			continue
		}
		seen[it.Manufacturer] = true
		out = append(out, it.Manufacturer)
	}
	return out
}
