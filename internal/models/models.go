package models

import (
	"time"
)

const (
	DefaultTag   = "Plata 925"
	DefaultImage = "default.jpg"
)

type Account struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	Handle       string    `gorm:"size:64;uniqueIndex;not null"    json:"handle"`
	PasswordHash string    `gorm:"not null"                        json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false"          json:"is_admin"`
	CreatedAt    time.Time `                                       json:"created_at"`
	UpdatedAt    time.Time `                                       json:"updated_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"               json:"id"`
	Name        string    `gorm:"size:100;not null"                      json:"name"`
	Description string    `gorm:"type:text;not null"                     json:"description"`
	Price       float64   `gorm:"not null"                               json:"price"`
	Tag         string    `gorm:"size:50;not null;default:'Plata 925'"   json:"tag"`
	ImageFile   string    `gorm:"size:100;not null;default:'default.jpg'" json:"image_file"`
	CreatedAt   time.Time `                                              json:"created_at"`
	UpdatedAt   time.Time `                                              json:"updated_at"`
}

type Session struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	JTI       string    `gorm:"size:64;uniqueIndex" json:"jti"`
	AccountID uint      `gorm:"index;not null"      json:"account_id"`
	ExpiresAt time.Time `gorm:"not null"            json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt time.Time `                           json:"created_at"`
}

// All lists every table owned by the application, in migration order.
func All() []any {
	return []any{&Account{}, &Product{}, &Session{}}
}
