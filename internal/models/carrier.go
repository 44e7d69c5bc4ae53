package models

import "time"

// Carrier: kargo firması referans verisi.
type Carrier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	ShortName string    `gorm:"size:20" json:"short_name"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Website   string    `gorm:"size:100" json:"website"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
