package models

import "time"

type DownloadQueueEntry struct {
	ID           string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BookID       *string `gorm:"type:uuid"`
	FileID       string  `gorm:"type:text;not null"`
	Status       string  `gorm:"type:text;not null;default:pending"`
	StorageKey   *string `gorm:"type:text"`
	ErrorMessage *string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DownloadQueueEntry) TableName() string {
	return "download_queue"
}

// TelegramDownloadQueueEntry is a row of the separate Telegram queue. It is
// only read for diagnostics.
type TelegramDownloadQueueEntry struct {
	ID        int64   `gorm:"primaryKey"`
	MessageID int64   `gorm:"not null"`
	ChannelID int64   `gorm:"not null"`
	Status    string  `gorm:"type:text;not null"`
	FilePath  *string `gorm:"type:text"`
	CreatedAt time.Time
}

func (TelegramDownloadQueueEntry) TableName() string {
	return "telegram_download_queue"
}
