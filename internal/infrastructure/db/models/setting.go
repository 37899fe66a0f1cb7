package models

import "time"

type Setting struct {
	Key       string  `gorm:"type:text;primaryKey"`
	Value     *string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (Setting) TableName() string {
	return "settings"
}
