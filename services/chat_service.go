package services

import (
	"fmt"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
	"github.com/dhaval-dalia/personal-diet-tracker/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService keeps the append-only log of chat widget turns. Rows are
// never updated or deleted here.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

func (s *ChatService) Append(userID uint, message string, isBot bool, metadata string) (*models.ChatInteraction, error) {
	row := &models.ChatInteraction{
		MessageID: uuid.NewString(),
		UserID:    userID,
		Message:   message,
		IsBot:     isBot,
		Metadata:  metadata,
	}
	if err := s.db.Create(row).Error; err != nil {
		utils.Log.WithError(err).WithField("user_id", userID).Error("chat append failed")
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}
	return row, nil
}

func (s *ChatService) History(userID uint, limit int) ([]models.ChatInteraction, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ChatInteraction
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
