package services

import (
	"encoding/json"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

const maxAuditEntries = 200

type auditService struct {
	store store.Store
}

// NewAuditService creates an AuditServicer writing to st.
func NewAuditService(st store.Store) AuditServicer {
	return &auditService{store: st}
}

// Log stores one mutation. Failures only reach the log; the mutation it
// describes has already been committed.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("audit changes not encodable", "action", action, "error", err)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.store.InsertAuditLog(entry); err != nil {
		logger.Get().Errorw("audit entry dropped",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// Recent returns up to limit entries, newest first, optionally restricted
// to one resource type. limit is clamped to [1, 200].
func (s *auditService) Recent(resourceType string, limit int) ([]models.AuditLog, error) {
	if limit < 1 {
		limit = 1
	}
	limit = min(limit, maxAuditEntries)

	entries, err := s.store.ListAuditLogs(resourceType, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	return entries, nil
}
