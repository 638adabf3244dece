package models

import "time"

// Message is sent by a user about a rental.
type Message struct {
	ID       uint64 `gorm:"primaryKey"`
	Message  string `gorm:"size:2000;not null"`
	UserID   uint64 `gorm:"column:user_id;not null;index"`
	User     User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
	RentalID uint64 `gorm:"column:rental_id;not null;index"`
	Rental   Rental `gorm:"foreignKey:RentalID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Message model.
func (Message) TableName() string {
	return "messages"
}

// All returns every model, in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Rental{}, &Message{}}
}
