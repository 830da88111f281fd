package model

import "time"

// ChatMessage 用户与AI顾问的单条对话记录，按 timestamp 升序读取
// swagger:model ChatMessage
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
