package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale sources.
const (
	SaleSourceWhatsApp = "whatsapp"
	SaleSourcePOS      = "pos"
	SaleSourceManual   = "manual"
)

// Sale is one confirmed order. The client block is a snapshot taken at commit
// time, not a join through ClientID: the CRM record keeps evolving while the
// sale stays as it was sold. Amounts are whole colones.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID      *uuid.UUID      `gorm:"type:uuid;index" json:"client_id,omitempty"`
	ReceiptNo     string          `gorm:"size:100;unique;not null" json:"receipt_no"`
	Date          time.Time       `gorm:"not null" json:"date"`
	ClientName    string          `gorm:"size:255;not null" json:"client_name"`
	ClientPhone   string          `gorm:"size:50;not null" json:"client_phone"`
	ClientAddress string          `gorm:"type:text" json:"client_address,omitempty"`
	Subtotal      int64           `gorm:"default:0" json:"subtotal"`
	Tax           int64           `gorm:"default:0" json:"tax"`
	Total         int64           `gorm:"default:0" json:"total"`
	Status        enum.SaleStatus `gorm:"default:0" json:"status"`
	Source        string          `gorm:"size:50;not null" json:"source"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User   User       `gorm:"foreignKey:UserID" json:"-"`
	Client *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is a line item on a sale. ProductID is nil and NotFound true when
// the order text named something the catalog could not match; the sale still
// records the line as written.
type SaleItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"unit_price"`
	Total     int64          `gorm:"not null" json:"total"`
	NotFound  bool           `gorm:"default:false" json:"not_found,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale     `gorm:"foreignKey:SaleID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
