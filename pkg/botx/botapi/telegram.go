// Package botapi contains implementations of bot API interfaces.
package botapi

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Semior001/newsview/pkg/botx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slog"
)

// Telegram is a bot API over telegram.
type Telegram struct {
	api      *tgbotapi.BotAPI
	updates  chan botx.Request
	done     chan struct{}
	stopOnce sync.Once
}

// NewTelegram returns a new telegram bot API.
func NewTelegram(lg *slog.Logger, token string, bufferSize int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("make new api: %w", err)
	}

	stdlibLogger := slog.NewLogLogger(lg.Handler(), slog.LevelWarn)
	stdlibLogger.SetPrefix("telegram-bot-api: ")

	if err = tgbotapi.SetLogger(stdlibLogger); err != nil {
		return nil, fmt.Errorf("set logger: %w", err)
	}

	return &Telegram{
		api:     api,
		updates: make(chan botx.Request, bufferSize),
		done:    make(chan struct{}),
	}, nil
}

// Run listens for telegram updates until Stop is called.
func (b *Telegram) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	b.listen(b.api.GetUpdatesChan(u))
}

// listen forwards text messages to the updates channel and closes it
// when the source is drained or the listener is stopped, even if nobody
// reads the updates anymore.
func (b *Telegram) listen(src tgbotapi.UpdatesChannel) {
	defer close(b.updates)

	for {
		var update tgbotapi.Update
		select {
		case <-b.done:
			return
		case upd, ok := <-src:
			if !ok {
				return
			}
			update = upd
		}

		if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
			continue
		}

		req := botx.Request{
			Chat: botx.Chat{
				ID:       strconv.FormatInt(update.Message.Chat.ID, 10),
				Username: update.Message.Chat.UserName,
			},
			Text: update.Message.Text,
		}

		select {
		case b.updates <- req:
		case <-b.done:
			return
		}
	}
}

// Stop stops the listener, Run returns after the updates channel is closed.
func (b *Telegram) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		b.api.StopReceivingUpdates()
	})
}

// Updates returns updates channel.
func (b *Telegram) Updates() <-chan botx.Request {
	return b.updates
}

// SendMessage sends a markdown message without link previews.
func (b *Telegram) SendMessage(ctx context.Context, resp botx.Response) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	chatID, err := strconv.ParseInt(resp.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse chat id: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, resp.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
