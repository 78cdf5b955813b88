package cmd

import (
	"context"
	"fmt"

	"github.com/Semior001/newsview/app/publish"
	"github.com/Semior001/newsview/app/view"
	"github.com/Semior001/newsview/pkg/botx/botapi"
	"golang.org/x/exp/slog"
)

// Send fetches the article list once and sends it to telegram chats.
type Send struct {
	News     NewsOpts `group:"news" namespace:"news" env-namespace:"NEWS"`
	Telegram struct {
		Token   string   `long:"token" env:"TOKEN" required:"true" description:"telegram token"`
		ChatIDs []string `long:"chat-id" env:"CHAT_IDS" env-delim:"," required:"true" description:"chats to send the list to"`
	} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`
}

// Execute runs the command.
func (s Send) Execute(_ []string) error {
	lg := slog.Default()

	api, err := botapi.NewTelegram(lg.With(slog.String("prefix", "telegram")), s.Telegram.Token, 0)
	if err != nil {
		return fmt.Errorf("make telegram api: %w", err)
	}

	ctx := context.Background()

	snap, err := view.LoadOnce(ctx, lg.With(slog.String("prefix", "view")), s.News.service(lg))
	if err != nil {
		return err
	}

	if snap.State == view.Failed {
		return fmt.Errorf("retrieve articles: %w", snap.Err)
	}

	pub := publish.NewTelegram(lg.With(slog.String("prefix", "publish")), api)

	doc := snap.Document()
	for _, chatID := range s.Telegram.ChatIDs {
		if err := pub.Send(ctx, chatID, doc); err != nil {
			return fmt.Errorf("send to chat %s: %w", chatID, err)
		}
		lg.Info("article list sent", slog.String("chat_id", chatID))
	}

	return nil
}
