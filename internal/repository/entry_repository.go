package repository

import (
	"fmt"

	"gorm.io/gorm"

	"contentpilot/internal/model"
)

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(entry *model.ConversationEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create conversation entry failed: %w", err)
	}
	return nil
}

func (r *EntryRepository) ListBySessionID(sessionID string, limit int) ([]model.ConversationEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var entries []model.ConversationEntry
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list conversation entries failed: %w", err)
	}
	return entries, nil
}

func (r *EntryRepository) DeleteBySessionID(sessionID string) error {
	if err := r.db.Where("session_id = ?", sessionID).Delete(&model.ConversationEntry{}).Error; err != nil {
		return fmt.Errorf("delete conversation entries failed: %w", err)
	}
	return nil
}
