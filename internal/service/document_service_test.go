package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/RohitYadav0014/AccelQuote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParsesCatalogAndGeography(t *testing.T) {
	// items_information arrives as a fenced text blob, the way the extraction
	// model usually returns it.
	fenced := "```json\n[{\"Item ID\": \"X1\", \"Quantity\": 5, \"Manufacturer\": \"M1\"}]\n```"
	extraction, err := json.Marshal(map[string]interface{}{
		"customer_name":     "Acme Process Co",
		"geography":         "Western Europe",
		"items_information": fenced,
	})
	require.NoError(t, err)

	docRepo := newFakeDocRepo()
	svc := NewDocumentService(docRepo, &fakeEngine{extraction: extraction}, NewAuditService(&fakeAuditRepo{}))

	detail, err := svc.Extract(context.Background(), "rfq_eu.pdf", "")
	require.NoError(t, err)

	require.Len(t, detail.Catalog, 1)
	assert.Equal(t, "X1", detail.Catalog[0].ItemID)
	assert.Equal(t, "Western Europe", detail.Geography)
	assert.Equal(t, model.CurrencyEUR, detail.Currency, "Europe quotes in EUR")
	assert.Equal(t, "Acme Process Co", detail.CustomerName)

	stored := docRepo.docs["rfq_eu.pdf"]
	require.NotNil(t, stored)
	assert.Equal(t, model.DocumentStatusExtracted, stored.Status)
	assert.Equal(t, "EUR", stored.Currency)
}

func TestExtractFailureMarksDocumentFailed(t *testing.T) {
	docRepo := newFakeDocRepo()
	svc := NewDocumentService(docRepo, &fakeEngine{err: errors.New("timeout")}, NewAuditService(&fakeAuditRepo{}))

	_, err := svc.Extract(context.Background(), "rfq_bad.pdf", "")
	require.Error(t, err)

	stored := docRepo.docs["rfq_bad.pdf"]
	require.NotNil(t, stored)
	assert.Equal(t, model.DocumentStatusFailed, stored.Status)
}

func TestExtractFailureKeepsPreviousExtraction(t *testing.T) {
	docRepo := newFakeDocRepo()
	seedExtractedDoc(t, docRepo, "rfq_001.pdf")

	svc := NewDocumentService(docRepo, &fakeEngine{err: errors.New("timeout")}, NewAuditService(&fakeAuditRepo{}))

	_, err := svc.Extract(context.Background(), "rfq_001.pdf", "")
	require.Error(t, err)

	// The shared catalog other users are pricing against survives the
	// failed re-extraction.
	stored := docRepo.docs["rfq_001.pdf"]
	require.NotNil(t, stored)
	assert.Equal(t, model.DocumentStatusExtracted, stored.Status)
	assert.NotEmpty(t, stored.Extraction)

	detail, err := svc.GetDocument(context.Background(), "rfq_001.pdf")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Len(t, detail.Catalog, 2)
}

func TestExtractBadItemsDegradesToEmptyCatalog(t *testing.T) {
	extraction := `{"geography": "UK", "items_information": "the model produced prose instead of JSON"}`

	svc := NewDocumentService(newFakeDocRepo(), &fakeEngine{extraction: json.RawMessage(extraction)}, NewAuditService(&fakeAuditRepo{}))

	detail, err := svc.Extract(context.Background(), "rfq_uk.pdf", "")
	require.NoError(t, err, "a bad extraction stores successfully with no items")
	assert.Empty(t, detail.Catalog)
	assert.Equal(t, model.CurrencyGBP, detail.Currency)
}

func TestListFilesMergesLocalStatus(t *testing.T) {
	docRepo := newFakeDocRepo()
	seedExtractedDoc(t, docRepo, "rfq_001.pdf")

	engine := &fakeEngine{files: []string{"rfq_001.pdf", "rfq_002.pdf"}}
	svc := NewDocumentService(docRepo, engine, NewAuditService(&fakeAuditRepo{}))

	files, err := svc.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, model.DocumentStatusExtracted, files[0].Status)
	assert.Equal(t, model.DocumentStatusPending, files[1].Status)
}

func TestGetDocumentNeverExtracted(t *testing.T) {
	svc := NewDocumentService(newFakeDocRepo(), &fakeEngine{}, NewAuditService(&fakeAuditRepo{}))

	detail, err := svc.GetDocument(context.Background(), "missing.pdf")
	require.NoError(t, err)
	assert.Nil(t, detail)
}
