package storage

import (
	"context"
	"sync"

	"github.com/xaenox/gatekeeper-bot/internal/models"
)

type MemoryStorage struct {
	mu       sync.RWMutex
	messages map[int64][]*models.Message
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		messages: make(map[int64][]*models.Message),
	}
}

func (s *MemoryStorage) SaveMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *msg
	s.messages[msg.ChatID] = append(s.messages[msg.ChatID], &stored)
	return nil
}

// RecentMessages returns up to limit most recent messages for the chat, in
// chronological order.
func (s *MemoryStorage) RecentMessages(ctx context.Context, chatID int64, limit int) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.messages[chatID]
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	result := make([]*models.Message, len(history))
	for i, msg := range history {
		copied := *msg
		result[i] = &copied
	}
	return result, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
