package models

import "time"

type Book struct {
	ID          string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string  `gorm:"type:text;not null"`
	Author      string  `gorm:"type:text;not null"`
	CoverFileID string  `gorm:"type:text"`
	CoverURL    *string `gorm:"type:text"`
	SourceRef   string  `gorm:"type:text"`
	Description *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Book) TableName() string {
	return "books"
}
