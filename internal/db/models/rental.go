package models

import "time"

// Rental is a property offered for rent. It is owned by the user who created it.
type Rental struct {
	ID          uint64  `gorm:"primaryKey"`
	Name        string  `gorm:"size:248;not null"`
	Surface     float64 `gorm:"type:decimal(10,2)"`
	Price       float64 `gorm:"type:decimal(10,2)"`
	Picture     string  `gorm:"size:255"`
	Description string  `gorm:"size:2000"`
	// OwnerID references the user who created the rental.
	OwnerID uint64 `gorm:"column:owner_id;not null;index"`
	// Owner is the owning user (enforced with a foreign key constraint).
	Owner     User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Rental model.
func (Rental) TableName() string {
	return "rentals"
}
