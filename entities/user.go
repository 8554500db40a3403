package entities

import (
	"github.com/google/uuid"
)

type NotificationPreferences struct {
	EnableNotifications bool   `gorm:"default:true" json:"enable_notifications"`
	ExpiryThresholdDays int    `json:"expiry_threshold_days"`
	NotificationTime    string `json:"notification_time,omitempty"`
}

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	GoogleID           string    `gorm:"uniqueIndex" json:"google_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Bio                string    `json:"bio,omitempty"`
	ProfilePicture     string    `json:"profile_picture,omitempty"`
	Hobbies            []string  `gorm:"serializer:json;type:text" json:"hobbies"`
	DietaryPreferences string    `json:"dietary_preferences,omitempty"`
	FCMToken           string    `json:"-"`

	NotificationPreferences NotificationPreferences `gorm:"embedded;embeddedPrefix:notification_" json:"notification_preferences"`

	Timestamp
}
