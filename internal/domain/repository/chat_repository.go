package repository

import (
	"context"

	"mazhets/internal/domain/entity"
)

// ChatRepository persists the chat directory and the per-conversation
// transcripts. Each conversation is stored whole under its own key, so
// append is read-modify-write at the use case level.
type ChatRepository interface {
	ListSummaries(ctx context.Context) ([]entity.ChatSummary, error)
	SaveSummaries(ctx context.Context, summaries []entity.ChatSummary) error
	LoadMessages(ctx context.Context, chatID string) ([]entity.ChatMessage, error)
	SaveMessages(ctx context.Context, chatID string, messages []entity.ChatMessage) error
}
