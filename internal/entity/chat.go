package entity

import "time"

// ChatEntry 一条聊天记录，只在进程内存活
type ChatEntry struct {
	Id           int64  `gorm:"primaryKey;autoIncrement"`
	ExchangeId   string `gorm:"index"`
	Model        string
	User         string
	Assistant    string
	InputTokens  int64
	OutputTokens int64
	CreatedAt    time.Time
}
