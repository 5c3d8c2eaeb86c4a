package service

import (
	"context"

	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/repository"
)

// WorkflowStatistics summarizes document and approval activity for the
// dashboard.
type WorkflowStatistics struct {
	TotalDocuments     int64 `json:"total_documents"`
	ExtractedDocuments int64 `json:"extracted_documents"`
	FailedDocuments    int64 `json:"failed_documents"`
	ProposalsSubmitted int64 `json:"proposals_submitted"`
	DecisionsSubmitted int64 `json:"decisions_submitted"`
	PricingComputed    int64 `json:"pricing_computed"`
}

type StatisticsService interface {
	GetWorkflowStatistics(ctx context.Context) (*WorkflowStatistics, error)
}

type statisticsService struct {
	docRepo   repository.DocumentRepository
	auditRepo repository.AuditRepository
}

func NewStatisticsService(docRepo repository.DocumentRepository, auditRepo repository.AuditRepository) StatisticsService {
	return &statisticsService{docRepo: docRepo, auditRepo: auditRepo}
}

func (s *statisticsService) GetWorkflowStatistics(ctx context.Context) (*WorkflowStatistics, error) {
	stats := &WorkflowStatistics{}

	extracted, err := s.docRepo.CountByStatus(ctx, model.DocumentStatusExtracted)
	if err != nil {
		return nil, err
	}
	failed, err := s.docRepo.CountByStatus(ctx, model.DocumentStatusFailed)
	if err != nil {
		return nil, err
	}
	pending, err := s.docRepo.CountByStatus(ctx, model.DocumentStatusPending)
	if err != nil {
		return nil, err
	}
	stats.ExtractedDocuments = extracted
	stats.FailedDocuments = failed
	stats.TotalDocuments = extracted + failed + pending

	// Action totals come from the audit trail; only the counts matter here.
	for action, dest := range map[string]*int64{
		model.ActionProposeDiscount: &stats.ProposalsSubmitted,
		model.ActionDecideDiscount:  &stats.DecisionsSubmitted,
		model.ActionComputePricing:  &stats.PricingComputed,
	} {
		_, total, err := s.auditRepo.List(ctx, action, 1, 1)
		if err != nil {
			return nil, err
		}
		*dest = total
	}
	return stats, nil
}
