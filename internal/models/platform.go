package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Platform: satış kanalı (pazaryeri, mağaza, web sitesi vs.).
type Platform struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;not null;unique" json:"name"`
	Type           string          `gorm:"size:50" json:"type"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"commission_rate"`
	Active         bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
