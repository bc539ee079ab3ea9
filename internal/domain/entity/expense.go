package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Expense is one outflow in the cost tracker. Amount is whole colones.
type Expense struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Concept   string               `gorm:"size:255;not null" json:"concept"`
	Category  enum.ExpenseCategory `gorm:"default:5" json:"category"`
	Amount    int64                `gorm:"not null" json:"amount"`
	Date      time.Time            `gorm:"type:date;not null" json:"date"`
	Recurring bool                 `gorm:"default:false" json:"recurring"`
	Notes     *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	DeletedAt gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
