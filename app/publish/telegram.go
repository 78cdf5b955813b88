// Package publish delivers rendered article lists to chats.
package publish

import (
	"context"
	"fmt"

	"github.com/Semior001/newsview/app/render"
	"github.com/Semior001/newsview/pkg/botx"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_sender.go . Sender

// Sender sends a single chat message.
type Sender interface {
	SendMessage(ctx context.Context, resp botx.Response) error
}

// Telegram sends article lists to telegram chats.
type Telegram struct {
	log    *slog.Logger
	sender Sender
}

// NewTelegram makes a new publisher.
func NewTelegram(lg *slog.Logger, sender Sender) *Telegram {
	return &Telegram{log: lg, sender: sender}
}

// Responses renders the document as telegram messages for the chat.
func Responses(chatID string, doc render.Document) []botx.Response {
	msgs := render.Markdown(doc)
	resps := make([]botx.Response, 0, len(msgs))
	for _, text := range msgs {
		resps = append(resps, botx.Response{ChatID: chatID, Text: text})
	}
	return resps
}

// Send delivers the document to the chat, split into as many messages
// as needed.
func (t *Telegram) Send(ctx context.Context, chatID string, doc render.Document) error {
	resps := Responses(chatID, doc)
	for i, resp := range resps {
		if err := t.sender.SendMessage(ctx, resp); err != nil {
			return fmt.Errorf("send message %d/%d: %w", i+1, len(resps), err)
		}
	}

	t.log.DebugCtx(ctx, "article list sent",
		slog.String("chat_id", chatID),
		slog.Int("messages", len(resps)),
	)

	return nil
}
