// Package client wraps the external quote-engine backend: file listing, PDF
// extraction, item price lookup and CNP/discount lookup.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RohitYadav0014/AccelQuote/internal/catalog"
	"github.com/RohitYadav0014/AccelQuote/internal/model"
)

// QuoteEngineClient is the outbound interface the services consume.
type QuoteEngineClient interface {
	FetchFileList(ctx context.Context) ([]string, error)
	ExtractDocument(ctx context.Context, fileID string) (json.RawMessage, error)
	FetchItemPrices(ctx context.Context, itemsJSON string) (model.PriceTable, error)
	FetchDiscountInfo(ctx context.Context, itemsJSON string) (model.DiscountTable, error)
}

// Client talks to the quote-engine HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client. The timeout doubles as the cancellation
// budget for every call; expiry surfaces as an ordinary fetch failure.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type fileListResponse struct {
	FileList []string `json:"file_list"`
}

// FetchFileList returns the document identifiers known to the backend.
func (c *Client) FetchFileList(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_file_list", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("file list returned status %d", resp.StatusCode)
	}

	var out fileListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode file list: %w", err)
	}
	return out.FileList, nil
}

type messageEnvelope struct {
	Message json.RawMessage `json:"message"`
}

// ExtractDocument triggers extraction of a PDF and returns the raw structured
// record. Fields inside may themselves be fenced JSON strings; callers parse
// defensively via the catalog package.
func (c *Client) ExtractDocument(ctx context.Context, fileID string) (json.RawMessage, error) {
	u := c.baseURL + "/processpdf/?query=" + url.QueryEscape(fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("extraction returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env messageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}
	return env.Message, nil
}

// FetchItemPrices looks up global list prices for the serialized item list.
// The backend expects the items JSON array re-encoded as a single JSON string
// value, not a structured body. Entries come back positionally aligned to the
// request order.
func (c *Client) FetchItemPrices(ctx context.Context, itemsJSON string) (model.PriceTable, error) {
	raw, err := c.postItems(ctx, "/items_price/", itemsJSON, "item_price_details")
	if err != nil {
		return nil, err
	}
	var table model.PriceTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode item prices: %w", err)
	}
	return table, nil
}

// FetchDiscountInfo looks up per-manufacturer CNP factors and role ceilings.
// Same wire contract as FetchItemPrices.
func (c *Client) FetchDiscountInfo(ctx context.Context, itemsJSON string) (model.DiscountTable, error) {
	raw, err := c.postItems(ctx, "/cnp_discount/", itemsJSON, "cnp_discount_info")
	if err != nil {
		return nil, err
	}
	var table model.DiscountTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode discount info: %w", err)
	}
	return table, nil
}

func (c *Client) postItems(ctx context.Context, path, itemsJSON, field string) (json.RawMessage, error) {
	// Quirk of the backend: the payload is the items JSON array wrapped in a
	// JSON string, e.g. "\"[{...}]\"".
	body, err := json.Marshal(itemsJSON)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	var env struct {
		Message map[string]json.RawMessage `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	raw, ok := env.Message[field]
	if !ok {
		return nil, fmt.Errorf("%s response missing %q", path, field)
	}
	return normalizeList(raw), nil
}

// normalizeList accepts the payload as a JSON array, a single object, or a
// fenced/quoted text blob containing either, and always returns a JSON array.
// Unparsable input degrades to an empty array.
func normalizeList(raw json.RawMessage) json.RawMessage {
	data := []byte(strings.TrimSpace(string(raw)))

	var blob string
	if err := json.Unmarshal(data, &blob); err == nil {
		data = []byte(catalog.UnwrapFence(blob))
	}

	if len(data) > 0 && data[0] == '[' && json.Valid(data) {
		return data
	}
	if len(data) > 0 && data[0] == '{' && json.Valid(data) {
		return append(append([]byte{'['}, data...), ']')
	}
	return json.RawMessage("[]")
}
