package entity

import "time"

const (
	SenderMe     = "me"
	SenderSeller = "seller"
)

// ChatSummary is the per-counterparty row shown on the chat list. At most
// one summary exists per seller id at any time.
type ChatSummary struct {
	ID          string    `json:"id"`
	Seller      Seller    `json:"seller"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   time.Time `json:"timestamp"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	From      string    `json:"from"` // "me" or "seller"
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
