package model

// LineItem is one physical line of a request-for-quote document as produced
// by the extraction backend. Items are immutable once extracted. The same
// item id may appear on several lines (duplicate lots), so pricing identity
// is the whole tuple, never just the id.
type LineItem struct {
	ItemID       string `json:"Item ID"`
	Description  string `json:"Item Description"`
	Quantity     int    `json:"Quantity"`
	Manufacturer string `json:"Manufacturer"`
}

// DisplayGroup is a line item deduplicated by id+description for listing
// purposes only. Pricing always works on the raw per-line catalog.
type DisplayGroup struct {
	ItemID      string `json:"item_id"`
	Description string `json:"description"`
	Lines       int    `json:"lines"`
	TotalQty    int    `json:"total_qty"`
}
