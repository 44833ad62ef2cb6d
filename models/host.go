package models

import "gorm.io/gorm"

type Host struct {
	gorm.Model

	Name      string `gorm:"size:64" json:"name"`
	HostCode  string `gorm:"uniqueIndex;size:32" json:"host_code"`
	SecretKey string `gorm:"size:128" json:"secret_key"`
	Currency  string `gorm:"size:8" json:"currency"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	Sessions []Session `gorm:"foreignKey:HostCode;references:HostCode"`
}
