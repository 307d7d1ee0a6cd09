package model

import "time"

// ConversationEntry is one completed exchange: the user's request, the
// agent that handled it, and the response it produced.
type ConversationEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:64;not null;index" json:"session_id"`
	Query     string    `gorm:"type:text;not null" json:"query"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	Agent     string    `gorm:"size:32;not null" json:"agent"`
	CreatedAt time.Time `json:"created_at"`
}
