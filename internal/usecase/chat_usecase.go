package usecase

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"mazhets/internal/domain/entity"
	"mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
	ws "mazhets/internal/infrastructure/websocket"
	"mazhets/pkg/errors"
	"mazhets/pkg/logger"
)

// ChatUseCase owns the chat directory and the per-conversation
// transcripts. It is constructed once and injected; all consumers share
// the same store instead of a module-level mutable list.
type ChatUseCase struct {
	chatRepo  repository.ChatRepository
	wsManager *ws.Manager

	replyDelayMin time.Duration
	replyDelayMax time.Duration

	// mu serializes the read-full/append/write-full cycles on the
	// persisted sequences.
	mu        sync.Mutex
	lastMsgID int64

	timerMu  sync.Mutex
	timers   map[int64]*time.Timer
	timerSeq int64
	closed   bool
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	wsManager *ws.Manager,
	replyDelayMin, replyDelayMax time.Duration,
) *ChatUseCase {
	if replyDelayMax < replyDelayMin {
		replyDelayMax = replyDelayMin
	}
	return &ChatUseCase{
		chatRepo:      chatRepo,
		wsManager:     wsManager,
		replyDelayMin: replyDelayMin,
		replyDelayMax: replyDelayMax,
		timers:        make(map[int64]*time.Timer),
	}
}

// ListChats returns the directory in recency order, falling back to the
// built-in seed set when nothing has been persisted yet.
func (uc *ChatUseCase) ListChats(ctx context.Context) []entity.ChatSummary {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	summaries := uc.loadSummaries(ctx)
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	return summaries
}

// EnsureChat creates or refreshes the summary for a seller without
// sending anything. Opening a product's seller lands here, so the chat
// exists before the first message.
func (uc *ChatUseCase) EnsureChat(ctx context.Context, sellerID, sellerName string) (entity.ChatSummary, error) {
	if sellerID == "" {
		return entity.ChatSummary{}, errors.BadRequest("Seller ID is required", nil)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	summaries := uc.loadSummaries(ctx)
	convID := conversationID(summaries, sellerID)
	messages := uc.loadTranscript(ctx, convID)

	latest := ""
	if len(messages) > 0 {
		latest = messages[len(messages)-1].Text
	}

	updated := upsertSummary(summaries, sellerID, resolveSellerName(summaries, sellerID, sellerName), latest, time.Now())
	if err := uc.chatRepo.SaveSummaries(ctx, updated); err != nil {
		logger.Warn("failed to persist chat list: %v", err)
	}
	summary, _ := findSummary(updated, sellerID)
	return summary, nil
}

// Messages returns the transcript for a seller's conversation. The first
// open of a seeded conversation serves the built-in fixture.
func (uc *ChatUseCase) Messages(ctx context.Context, sellerID string) ([]entity.ChatMessage, error) {
	if sellerID == "" {
		return nil, errors.BadRequest("Seller ID is required", nil)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	summaries := uc.loadSummaries(ctx)
	messages := uc.loadTranscript(ctx, conversationID(summaries, sellerID))
	if messages == nil {
		messages = []entity.ChatMessage{}
	}
	return messages, nil
}

// SendMessage appends the user's message, persists the transcript,
// refreshes the directory and schedules the simulated counterparty reply.
// It returns the full updated transcript.
func (uc *ChatUseCase) SendMessage(ctx context.Context, sellerID, sellerName, text string) ([]entity.ChatMessage, error) {
	if sellerID == "" {
		return nil, errors.BadRequest("Seller ID is required", nil)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}

	messages := uc.appendMessage(ctx, sellerID, sellerName, entity.SenderMe, text)
	uc.scheduleReply(sellerID, sellerName)
	return messages, nil
}

func (uc *ChatUseCase) QuickReplies() []string {
	replies := make([]string, len(quickReplies))
	copy(replies, quickReplies)
	return replies
}

// Close cancels any reply still pending. Replies already fired keep their
// writes; a timer firing with no screen attached persists silently.
func (uc *ChatUseCase) Close() {
	uc.timerMu.Lock()
	defer uc.timerMu.Unlock()

	uc.closed = true
	for id, timer := range uc.timers {
		timer.Stop()
		delete(uc.timers, id)
	}
}

func (uc *ChatUseCase) appendMessage(ctx context.Context, sellerID, sellerName, from, text string) []entity.ChatMessage {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	summaries := uc.loadSummaries(ctx)
	convID := conversationID(summaries, sellerID)

	messages := uc.loadTranscript(ctx, convID)
	message := entity.ChatMessage{
		ID:        uc.nextMessageID(now),
		ChatID:    convID,
		From:      from,
		Text:      text,
		CreatedAt: now,
	}
	messages = append(messages, message)
	if err := uc.chatRepo.SaveMessages(ctx, convID, messages); err != nil {
		logger.Warn("failed to persist transcript %s: %v", convID, err)
	}

	updated := upsertSummary(summaries, sellerID, resolveSellerName(summaries, sellerID, sellerName), text, now)
	if err := uc.chatRepo.SaveSummaries(ctx, updated); err != nil {
		logger.Warn("failed to persist chat list: %v", err)
	}

	if uc.wsManager != nil {
		uc.wsManager.BroadcastEvent(ws.EventMessageCreated, message)
		if summary, ok := findSummary(updated, sellerID); ok {
			uc.wsManager.BroadcastEvent(ws.EventChatUpdated, summary)
		}
	}

	return messages
}

func (uc *ChatUseCase) scheduleReply(sellerID, sellerName string) {
	uc.timerMu.Lock()
	defer uc.timerMu.Unlock()
	if uc.closed {
		return
	}

	delay := uc.replyDelayMin
	if span := uc.replyDelayMax - uc.replyDelayMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	id := uc.timerSeq
	uc.timerSeq++
	uc.timers[id] = time.AfterFunc(delay, func() {
		uc.timerMu.Lock()
		delete(uc.timers, id)
		uc.timerMu.Unlock()

		// The reply lands whether or not anybody is viewing the
		// conversation; persistence and the directory update proceed
		// regardless of UI presence.
		text := autoReplies[rand.Intn(len(autoReplies))]
		uc.appendMessage(context.Background(), sellerID, sellerName, entity.SenderSeller, text)
	})
}

// nextMessageID derives a unique id from the clock. Rapid successive
// sends within the same millisecond get monotonically bumped ids.
func (uc *ChatUseCase) nextMessageID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= uc.lastMsgID {
		ms = uc.lastMsgID + 1
	}
	uc.lastMsgID = ms
	return strconv.FormatInt(ms, 10)
}

func (uc *ChatUseCase) loadSummaries(ctx context.Context) []entity.ChatSummary {
	summaries, err := uc.chatRepo.ListSummaries(ctx)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			logger.Warn("chat list unreadable, using seed set: %v", err)
		}
		return seedChatSummaries(time.Now())
	}
	return summaries
}

func (uc *ChatUseCase) loadTranscript(ctx context.Context, chatID string) []entity.ChatMessage {
	messages, err := uc.chatRepo.LoadMessages(ctx, chatID)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			logger.Warn("transcript %s unreadable, using fixture: %v", chatID, err)
		}
		return seedChatMessages(chatID, time.Now())
	}
	return messages
}

// upsertSummary updates the summary for sellerID in place, preserving the
// other fields, or prepends a fresh one with id "c-"+sellerID. It returns
// the full sequence so the caller persists it whole.
func upsertSummary(summaries []entity.ChatSummary, sellerID, sellerName, lastMessage string, now time.Time) []entity.ChatSummary {
	for i := range summaries {
		if summaries[i].Seller.ID == sellerID {
			summaries[i].LastMessage = lastMessage
			summaries[i].Timestamp = now
			return summaries
		}
	}

	created := entity.ChatSummary{
		ID:          "c-" + sellerID,
		Seller:      entity.Seller{ID: sellerID, Name: sellerName},
		LastMessage: lastMessage,
		Timestamp:   now,
	}
	return append([]entity.ChatSummary{created}, summaries...)
}

// conversationID maps a seller to its conversation: the existing summary's
// id when one exists (the seed entries predate the "c-" scheme), else
// "c-"+sellerID.
func conversationID(summaries []entity.ChatSummary, sellerID string) string {
	if summary, ok := findSummary(summaries, sellerID); ok {
		return summary.ID
	}
	return "c-" + sellerID
}

func findSummary(summaries []entity.ChatSummary, sellerID string) (entity.ChatSummary, bool) {
	for _, summary := range summaries {
		if summary.Seller.ID == sellerID {
			return summary, true
		}
	}
	return entity.ChatSummary{}, false
}

func resolveSellerName(summaries []entity.ChatSummary, sellerID, provided string) string {
	if summary, ok := findSummary(summaries, sellerID); ok && summary.Seller.Name != "" {
		return summary.Seller.Name
	}
	if provided != "" {
		return provided
	}
	return "Chat"
}
