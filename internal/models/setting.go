package models

import "time"

// SettingDefaultCarrier: varsayılan kargo firması ayarının anahtarı.
const SettingDefaultCarrier = "varsayilan_kargo_firmasi_id"

type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value       string    `gorm:"type:text" json:"value"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
