package storage

import (
	"context"

	"github.com/xaenox/gatekeeper-bot/internal/models"
)

type Storage interface {
	SaveMessage(ctx context.Context, msg *models.Message) error
	RecentMessages(ctx context.Context, chatID int64, limit int) ([]*models.Message, error)
	Close() error
}
