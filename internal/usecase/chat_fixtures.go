package usecase

import (
	"time"

	"mazhets/internal/domain/entity"
)

// Built-in conversations shown before anything has been persisted. The
// timestamps are relative so the list looks current on a fresh install.

func seedChatSummaries(now time.Time) []entity.ChatSummary {
	return []entity.ChatSummary{
		{
			ID:          "c1",
			Seller:      entity.Seller{ID: "105", Name: "FurniShop"},
			LastMessage: "Is the sofa still available?",
			Timestamp:   now,
		},
		{
			ID:          "c2",
			Seller:      entity.Seller{ID: "101", Name: "Tech Store"},
			LastMessage: "Can you do $380?",
			Timestamp:   now.Add(-time.Hour),
		},
	}
}

func seedChatMessages(chatID string, now time.Time) []entity.ChatMessage {
	at := func(secondsAgo int) time.Time {
		return now.Add(-time.Duration(secondsAgo) * time.Second)
	}

	switch chatID {
	case "c1":
		return []entity.ChatMessage{
			{ID: "m1", ChatID: "c1", From: entity.SenderSeller, Text: "Hi! The sofa is available.", CreatedAt: at(7200)},
			{ID: "m2", ChatID: "c1", From: entity.SenderMe, Text: "Great! Can I view it today?", CreatedAt: at(7000)},
			{ID: "m3", ChatID: "c1", From: entity.SenderSeller, Text: "Yes, after 5pm works.", CreatedAt: at(6900)},
			{ID: "m6", ChatID: "c1", From: entity.SenderMe, Text: "Perfect! What's the address?", CreatedAt: at(6800)},
			{ID: "m7", ChatID: "c1", From: entity.SenderSeller, Text: "123 Main St, Harare. I'll send you the exact location.", CreatedAt: at(6700)},
			{ID: "m8", ChatID: "c1", From: entity.SenderMe, Text: "Thanks! See you at 5:30pm", CreatedAt: at(6600)},
		}
	case "c2":
		return []entity.ChatMessage{
			{ID: "m4", ChatID: "c2", From: entity.SenderMe, Text: "Is the S20 negotiable?", CreatedAt: at(4000)},
			{ID: "m5", ChatID: "c2", From: entity.SenderSeller, Text: "We can do $380.", CreatedAt: at(3500)},
			{ID: "m9", ChatID: "c2", From: entity.SenderMe, Text: "Deal! When can I pick it up?", CreatedAt: at(3400)},
			{ID: "m10", ChatID: "c2", From: entity.SenderSeller, Text: "Tomorrow after 2pm works for me.", CreatedAt: at(3300)},
			{ID: "m11", ChatID: "c2", From: entity.SenderMe, Text: "Perfect! I'll bring cash.", CreatedAt: at(3200)},
		}
	}
	return nil
}

// quickReplies are the one-tap message templates offered in the composer.
var quickReplies = []string{
	"Is this still available?",
	"What's your best price?",
	"Can I see more photos?",
	"Where are you located?",
	"When can I pick it up?",
	"Is it negotiable?",
	"What's the condition?",
	"Thanks, I'll think about it",
}

// autoReplies is the phrase set the simulated counterparty answers from.
var autoReplies = []string{
	"Sure, that works for me!",
	"Yes, it's still available.",
	"I can do that price.",
	"Let me know when you're ready.",
	"Sounds good!",
	"Perfect timing!",
	"I'll be there.",
	"Thanks for your interest!",
}
