package repository

import (
	"context"

	"mazhets/internal/domain/entity"
	"mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
)

const (
	chatListKey   = "@chat_list"
	chatMsgPrefix = "@chat_msgs:"
)

type kvChatRepository struct {
	kv *kvstore.Store
}

func NewKVChatRepository(kv *kvstore.Store) repository.ChatRepository {
	return &kvChatRepository{kv: kv}
}

func (r *kvChatRepository) ListSummaries(ctx context.Context) ([]entity.ChatSummary, error) {
	summaries := []entity.ChatSummary{}
	if err := r.kv.GetJSON(ctx, chatListKey, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *kvChatRepository) SaveSummaries(ctx context.Context, summaries []entity.ChatSummary) error {
	return r.kv.SetJSON(ctx, chatListKey, summaries)
}

func (r *kvChatRepository) LoadMessages(ctx context.Context, chatID string) ([]entity.ChatMessage, error) {
	messages := []entity.ChatMessage{}
	if err := r.kv.GetJSON(ctx, chatMsgPrefix+chatID, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *kvChatRepository) SaveMessages(ctx context.Context, chatID string, messages []entity.ChatMessage) error {
	return r.kv.SetJSON(ctx, chatMsgPrefix+chatID, messages)
}
