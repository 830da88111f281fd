package repository

import (
	"skill_roadmap_backend/internal/model"

	"gorm.io/gorm"
)

type ChatMessageRepository struct {
	DB *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{DB: db}
}

func (r *ChatMessageRepository) Create(msg *model.ChatMessage) error {
	return r.DB.Create(msg).Error
}

// FindByUserID 按时间升序返回某用户全部对话
func (r *ChatMessageRepository) FindByUserID(userID uint) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.DB.Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&msgs).Error
	return msgs, err
}
