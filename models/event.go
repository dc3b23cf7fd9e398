package models

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventNewOrder             EventType = "NEW_ORDER"
	EventIDVerificationFailed EventType = "ID_VERIFICATION_FAILED"
	EventNewUserRegistration  EventType = "NEW_USER_REGISTRATION"
)

// Event is one entry in the admin activity feed.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      EventType `gorm:"type:VARCHAR(40);index" json:"type"`
	Message   string    `json:"message"`
	Data      string    `json:"data"` // JSON-encoded extra context
	CreatedAt time.Time `json:"createdAt"`
}

// LogEvent records an activity-feed entry. A failed write must never
// break the user flow it decorates, so errors are only logged.
func LogEvent(db *gorm.DB, typ EventType, message string, data map[string]any) {
	payload := "{}"
	if len(data) > 0 {
		if b, err := json.Marshal(data); err == nil {
			payload = string(b)
		}
	}
	event := Event{Type: typ, Message: message, Data: payload}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("❌ Failed to log admin event %s: %v", typ, err)
	}
}

// RecentEvents returns the newest entries in the activity feed.
func RecentEvents(db *gorm.DB, limit int) ([]Event, error) {
	var events []Event
	if err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
