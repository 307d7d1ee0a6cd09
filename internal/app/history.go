package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"contentpilot/internal/model"
)

var (
	ErrEntryEnqueue = errors.New("conversation entry enqueue failed")
)

// AsyncEntryPublisher hands a completed entry off for background
// persistence.
type AsyncEntryPublisher interface {
	Publish(ctx context.Context, entry model.ConversationEntry) error
}

// HistoryCache is the redis-backed session history cache.
type HistoryCache interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.ConversationEntry, bool, error)
	SetHistory(ctx context.Context, sessionID string, entries []model.ConversationEntry) error
	DeleteHistory(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}

// EntryStore is the persistent side of session history.
type EntryStore interface {
	ListBySessionID(sessionID string, limit int) ([]model.ConversationEntry, error)
	DeleteBySessionID(sessionID string) error
}

// HistoryService records completed exchanges and serves session
// history. Writes go through the async publisher; reads come from the
// cache unless a dirty marker says a write is still in flight.
type HistoryService struct {
	store     EntryStore
	publisher AsyncEntryPublisher
	cache     HistoryCache
}

func NewHistoryService(store EntryStore, publisher AsyncEntryPublisher, cache HistoryCache) *HistoryService {
	return &HistoryService{
		store:     store,
		publisher: publisher,
		cache:     cache,
	}
}

// Record enqueues one completed exchange for persistence. The session
// id is an opaque caller-chosen string.
func (s *HistoryService) Record(ctx context.Context, sessionID, query, response string, agent Agent) (*model.ConversationEntry, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	if s.publisher == nil {
		return nil, ErrEntryEnqueue
	}

	entry := &model.ConversationEntry{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Query:     query,
		Response:  response,
		Agent:     string(agent),
		CreatedAt: time.Now(),
	}

	if s.cache != nil {
		_ = s.cache.MarkDirty(ctx, sessionID)
		_ = s.cache.DeleteHistory(ctx, sessionID)
	}
	if err := s.publisher.Publish(ctx, *entry); err != nil {
		return nil, ErrEntryEnqueue
	}
	return entry, nil
}

// History returns the session's entries oldest first.
func (s *HistoryService) History(ctx context.Context, sessionID string, limit int) ([]model.ConversationEntry, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, sessionID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetHistory(ctx, sessionID); cacheErr == nil && hit {
				return trimEntries(cached, limit), nil
			}
		}
	}

	entries, err := s.store.ListBySessionID(sessionID, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, sessionID); dirtyErr == nil && !dirty {
			_ = s.cache.SetHistory(ctx, sessionID, entries)
		}
	}
	return entries, nil
}

// Clear removes the session's persisted entries and cached copy.
func (s *HistoryService) Clear(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidInput
	}
	if err := s.store.DeleteBySessionID(sessionID); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.DeleteHistory(ctx, sessionID)
	}
	return nil
}

func trimEntries(entries []model.ConversationEntry, limit int) []model.ConversationEntry {
	if limit <= 0 || limit >= len(entries) {
		return entries
	}
	return entries[len(entries)-limit:]
}
