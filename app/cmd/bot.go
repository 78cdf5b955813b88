package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/newsview/app/bot"
	"github.com/Semior001/newsview/pkg/botx"
	"github.com/Semior001/newsview/pkg/botx/botapi"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Bot is a command to run a telegram bot answering with the article list.
type Bot struct {
	News     NewsOpts `group:"news" namespace:"news" env-namespace:"NEWS"`
	Telegram struct {
		Token string `long:"token" env:"TOKEN" required:"true" description:"telegram token"`
	} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

	AllowedChats []string      `long:"allowed-chat" env:"ALLOWED_CHATS" env-delim:"," description:"chats allowed to use the bot, all if empty"`
	Timeout      time.Duration `long:"handler-timeout" env:"HANDLER_TIMEOUT" default:"30s" description:"timeout for a single request"`
	Workers      int           `long:"workers" env:"WORKERS" default:"4" description:"number of concurrent request handlers"`
}

// Execute runs the command.
func (b Bot) Execute(_ []string) error {
	lg := slog.Default()

	api, err := botapi.NewTelegram(lg.With(slog.String("prefix", "telegram")), b.Telegram.Token, 100)
	if err != nil {
		return fmt.Errorf("make telegram api: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger:         lg.With(slog.String("prefix", "bot")),
		Loader:         b.News.service(lg),
		AllowedChats:   b.AllowedChats,
		HandlerTimeout: b.Timeout,
	}

	bt := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(b.Workers),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)
		select {
		case s := <-sig:
			lg.Warn("caught signal, stopping", slog.String("signal", s.String()))
			stop()
			return ctx.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	ewg.Go(func() error {
		lg.Info("starting bot")
		bt.Run(ctx)
		lg.Warn("bot stopped")
		return nil
	})

	apiStopped := make(chan struct{})
	go func() {
		defer close(apiStopped)
		lg.Info("starting telegram api")
		api.Run()
		lg.Warn("telegram api stopped listening for updates")
	}()

	err = ewg.Wait()

	lg.Info("stopping telegram api")
	api.Stop()
	<-apiStopped

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bot stopped with error: %w", err)
	}

	return nil
}
