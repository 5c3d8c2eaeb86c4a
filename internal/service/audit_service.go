package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/RohitYadav0014/AccelQuote/internal/model"
	"github.com/RohitYadav0014/AccelQuote/internal/repository"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         uuid.UUID       `json:"id"`
	Username   string          `json:"username,omitempty"`
	Action     string          `json:"action"`
	EntityID   string          `json:"entity_id"`
	EntityName string          `json:"entity_name,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditService records Who/What/When entries for workflow-critical actions
type AuditService interface {
	Record(ctx context.Context, userID, action, entityID, entityName string, details interface{})
	List(ctx context.Context, action string, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// Record writes an audit entry. Audit is best effort: a failed write is
// logged and must never fail the action it describes.
func (s *auditService) Record(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
	}

	if uid, err := uuid.Parse(userID); err == nil {
		entry.UserID = &uid
	}
	if details != nil {
		if payload, err := json.Marshal(details); err == nil {
			entry.Details = string(payload)
		}
	}

	if err := s.repo.Log(ctx, entry); err != nil {
		log.Printf("Failed to write audit log (%s on %s): %v", action, entityID, err)
	}
}

func (s *auditService) List(ctx context.Context, action string, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, action, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp := AuditLogResponse{
			ID:         l.ID,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			CreatedAt:  l.CreatedAt,
		}
		if l.User != nil {
			resp.Username = l.User.Username
		}
		if l.Details != "" {
			resp.Details = json.RawMessage(l.Details)
		}
		responses = append(responses, resp)
	}
	return responses, total, nil
}
