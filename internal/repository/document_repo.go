package repository

import (
	"context"
	"errors"

	"github.com/RohitYadav0014/AccelQuote/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRepository defines data access for extracted quote documents
type DocumentRepository interface {
	Upsert(ctx context.Context, doc *model.Document) error
	GetByFileID(ctx context.Context, fileID string) (*model.Document, error)
	List(ctx context.Context, page, limit int) ([]model.Document, int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Upsert(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "extraction", "geography", "currency", "extracted_by", "updated_at"}),
	}).Create(doc).Error
}

func (r *documentRepository) GetByFileID(ctx context.Context, fileID string) (*model.Document, error) {
	var doc model.Document
	err := GetDB(ctx, r.db).Preload("Extractor").First(&doc, "file_id = ?", fileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, page, limit int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Document{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Extractor").Order("updated_at desc").Offset(offset).Limit(limit).Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (r *documentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Document{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
