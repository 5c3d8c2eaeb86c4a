package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RohitYadav0014/AccelQuote/internal/catalog"
	"github.com/RohitYadav0014/AccelQuote/internal/client"
	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/repository"

	"github.com/google/uuid"
)

// FileInfo merges a backend file listing entry with the local extraction state.
type FileInfo struct {
	FileID      string `json:"file_id"`
	Status      string `json:"status"`
	Geography   string `json:"geography,omitempty"`
	Currency    string `json:"currency,omitempty"`
	ExtractedBy string `json:"extracted_by,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// DocumentDetail is the parsed view of one extracted document.
type DocumentDetail struct {
	FileID        string               `json:"file_id"`
	Status        string               `json:"status"`
	CustomerName  string               `json:"customer_name,omitempty"`
	Geography     string               `json:"geography,omitempty"`
	Currency      model.Currency       `json:"currency"`
	Catalog       []model.LineItem     `json:"catalog"`
	DisplayGroups []model.DisplayGroup `json:"display_groups"`
	Manufacturers []string             `json:"manufacturers"`
}

// DocumentService drives the document listing and extraction flow.
type DocumentService interface {
	ListFiles(ctx context.Context) ([]FileInfo, error)
	ListDocuments(ctx context.Context, page, limit int) ([]FileInfo, int64, error)
	Extract(ctx context.Context, fileID, userID string) (*DocumentDetail, error)
	GetDocument(ctx context.Context, fileID string) (*DocumentDetail, error)
}

type documentService struct {
	repo   repository.DocumentRepository
	engine client.QuoteEngineClient
	audit  AuditService
}

func NewDocumentService(repo repository.DocumentRepository, engine client.QuoteEngineClient, audit AuditService) DocumentService {
	return &documentService{repo: repo, engine: engine, audit: audit}
}

// ListFiles returns the backend's file list annotated with local extraction
// status. Files never extracted here show up as PENDING.
func (s *documentService) ListFiles(ctx context.Context) ([]FileInfo, error) {
	files, err := s.engine.FetchFileList(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch file list: %w", err)
	}

	infos := make([]FileInfo, 0, len(files))
	for _, fileID := range files {
		info := FileInfo{FileID: fileID, Status: model.DocumentStatusPending}
		doc, err := s.repo.GetByFileID(ctx, fileID)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			info = fileInfoFromDocument(doc)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *documentService) ListDocuments(ctx context.Context, page, limit int) ([]FileInfo, int64, error) {
	docs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	infos := make([]FileInfo, 0, len(docs))
	for i := range docs {
		infos = append(infos, fileInfoFromDocument(&docs[i]))
	}
	return infos, total, nil
}

func fileInfoFromDocument(doc *model.Document) FileInfo {
	info := FileInfo{
		FileID:    doc.FileID,
		Status:    doc.Status,
		Geography: doc.Geography,
		Currency:  doc.Currency,
		UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
	}
	if doc.Extractor != nil {
		info.ExtractedBy = doc.Extractor.Username
	}
	return info
}

// Extract runs the extraction backend over the document and stores the raw
// result. The parsed catalog is shared by everyone with the document open;
// re-extracting overwrites the previous result.
func (s *documentService) Extract(ctx context.Context, fileID, userID string) (*DocumentDetail, error) {
	raw, err := s.engine.ExtractDocument(ctx, fileID)
	if err != nil {
		s.storeFailure(ctx, fileID, userID)
		return nil, fmt.Errorf("extract %s: %w", fileID, err)
	}

	detail := parseExtraction(fileID, raw)
	doc := &model.Document{
		FileID:     fileID,
		Status:     model.DocumentStatusExtracted,
		Extraction: string(raw),
		Geography:  detail.Geography,
		Currency:   string(detail.Currency),
	}
	if uid, err := uuid.Parse(userID); err == nil {
		doc.ExtractedBy = &uid
	}
	if err := s.repo.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("store extraction for %s: %w", fileID, err)
	}

	s.audit.Record(ctx, userID, model.ActionExtractDocument, fileID, detail.CustomerName, map[string]interface{}{
		"items":     len(detail.Catalog),
		"geography": detail.Geography,
		"currency":  detail.Currency,
	})
	return detail, nil
}

// storeFailure records a failed extraction attempt. A document that was
// already extracted keeps its stored result: the catalog is shared state and
// a transient backend failure on re-extraction must not wipe it.
func (s *documentService) storeFailure(ctx context.Context, fileID, userID string) {
	existing, err := s.repo.GetByFileID(ctx, fileID)
	if err != nil {
		log.Printf("Failed to record extraction failure for %s: %v", fileID, err)
		return
	}
	if existing != nil && existing.Status == model.DocumentStatusExtracted {
		return
	}

	doc := &model.Document{FileID: fileID, Status: model.DocumentStatusFailed}
	if uid, err := uuid.Parse(userID); err == nil {
		doc.ExtractedBy = &uid
	}
	if err := s.repo.Upsert(ctx, doc); err != nil {
		log.Printf("Failed to record extraction failure for %s: %v", fileID, err)
	}
}

// GetDocument returns the stored extraction, re-parsed. Nil when the document
// was never extracted.
func (s *documentService) GetDocument(ctx context.Context, fileID string) (*DocumentDetail, error) {
	doc, err := s.repo.GetByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	detail := parseExtraction(fileID, json.RawMessage(doc.Extraction))
	detail.Status = doc.Status
	return detail, nil
}

// parseExtraction pulls the catalog and quote metadata out of the raw
// extraction payload. Every field parses defensively: the extraction model is
// free-form and individual fields may be fenced JSON strings or missing.
func parseExtraction(fileID string, raw json.RawMessage) *DocumentDetail {
	detail := &DocumentDetail{
		FileID:   fileID,
		Status:   model.DocumentStatusExtracted,
		Currency: model.CurrencyUSD,
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Some extractions return the items array directly.
		detail.Catalog = catalog.Normalize(raw)
	} else {
		items, ok := fields["items_information"]
		if !ok {
			items = fields["items"]
		}
		detail.Catalog = catalog.Normalize(items)
		detail.Geography = stringField(fields["geography"])
		detail.CustomerName = stringField(fields["customer_name"])
	}

	detail.Currency = model.CurrencyForGeography(detail.Geography)
	detail.DisplayGroups = catalog.DisplayGroups(detail.Catalog)
	detail.Manufacturers = catalog.Manufacturers(detail.Catalog)
	return detail
}

// stringField decodes a scalar extraction field that may be a JSON string,
// a fenced blob, or absent.
func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(catalog.UnwrapFence(s))
	}
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}
