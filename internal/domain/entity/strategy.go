package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Strategy is one run of the marketing-strategy wizard: the answers the owner
// gave plus the action plan generated from them. Channels and Steps are JSON
// columns since the wizard's shape changes more often than the schema should.
type Strategy struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string              `gorm:"size:255;not null" json:"name"`
	BusinessGoal   string              `gorm:"size:255;not null" json:"business_goal"`
	TargetAudience string              `gorm:"type:text" json:"target_audience"`
	MonthlyBudget  int64               `gorm:"default:0" json:"monthly_budget"`
	Channels       datatypes.JSON      `gorm:"type:jsonb" json:"channels"`
	Steps          datatypes.JSON      `gorm:"type:jsonb" json:"steps"`
	Status         enum.StrategyStatus `gorm:"default:0" json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new strategy
func (s *Strategy) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Strategy model
func (Strategy) TableName() string {
	return "strategies"
}
