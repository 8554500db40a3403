package entities

import (
	"time"

	"github.com/google/uuid"
)

// Nutrients keeps the per-100g values as strings so third-party payloads
// (OpenFoodFacts, Gemini) pass through without lossy conversion.
type Nutrients struct {
	Calories      string `json:"calories,omitempty"`
	Protein       string `json:"protein,omitempty"`
	Carbohydrates string `json:"carbohydrates,omitempty"`
	Fat           string `json:"fat,omitempty"`
	Fiber         string `json:"fiber,omitempty"`
	Sugar         string `json:"sugar,omitempty"`
	Salt          string `json:"salt,omitempty"`
}

type FoodType struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name          string    `json:"name"`
	ShelfLifeDays int       `json:"shelf_life_days"`
	BarcodeID     *string   `gorm:"uniqueIndex" json:"barcode_id,omitempty"`

	Nutrients Nutrients `gorm:"embedded;embeddedPrefix:nutrient_" json:"nutrients"`

	Timestamp
}

type FoodItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TypeID         uuid.UUID  `json:"type_id"`
	UserID         uuid.UUID  `json:"user_id"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	PercentLeft    int        `gorm:"default:100" json:"percent_left"`

	Type *FoodType `gorm:"foreignKey:TypeID"`
	User *User     `gorm:"foreignKey:UserID"`
	Timestamp
}
