package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a CRM contact. Phone is the natural key: order intake
// upserts by exact digits-only phone match, so the column is unique and
// always stored stripped of formatting.
type Client struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Phone      string         `gorm:"size:50;unique;not null" json:"phone"`
	Email      *string        `gorm:"size:255" json:"email,omitempty"`
	Address    string         `gorm:"type:text" json:"address,omitempty"`
	Purchases  int            `gorm:"default:0" json:"purchases"`
	TotalSpent int64          `gorm:"default:0" json:"total_spent"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Sales []Sale `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
