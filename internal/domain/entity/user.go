package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. The portal is a single-business deployment, so a flat role
// string covers authorization: the owner administers everything, sellers run
// the POS and the order inbox.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User represents a portal account
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:255;unique;not null" json:"email"`
	Password        string         `gorm:"size:255" json:"-"`
	Role            string         `gorm:"size:50;default:'vendedor'" json:"role"`
	Provider        string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID      *string        `gorm:"size:255" json:"-"`
	Photo           *string        `gorm:"size:255" json:"photo,omitempty"`
	BusinessName    *string        `gorm:"size:255" json:"business_name,omitempty"`
	BusinessPhone   *string        `gorm:"size:50" json:"business_phone,omitempty"`
	BusinessAddress *string        `gorm:"type:text" json:"business_address,omitempty"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products   []Product  `gorm:"foreignKey:UserID" json:"-"`
	Sales      []Sale     `gorm:"foreignKey:UserID" json:"-"`
	Clients    []Client   `gorm:"foreignKey:UserID" json:"-"`
	Expenses   []Expense  `gorm:"foreignKey:UserID" json:"-"`
	Strategies []Strategy `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
