package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Semior001/newsview/app/tui"
	"github.com/Semior001/newsview/pkg/logx"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// View shows the article list in the terminal.
type View struct {
	News    NewsOpts `group:"news" namespace:"news" env-namespace:"NEWS"`
	LogFile string   `long:"log-file" env:"LOG_FILE" description:"file to write logs to while the view is open, logs are discarded if empty"`
}

// Execute runs the command.
func (v View) Execute(_ []string) error {
	lg, closeLog, err := v.logger(slog.Default())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	prog := tea.NewProgram(
		tui.New(ctx, v.News.service(lg)),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

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
		defer stop()
		if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run terminal view: %w", err)
		}
		return nil
	})

	if err = ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// logger returns a logger that keeps the terminal clean while the program
// owns it: records go to the log file, or nowhere without one.
func (v View) logger(base *slog.Logger) (lg *slog.Logger, closeFn func(), err error) {
	if v.LogFile == "" {
		return slog.New(logx.NoOp()), func() {}, nil
	}

	f, err := os.OpenFile(v.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	opts := slog.HandlerOptions{Level: slog.LevelInfo}
	if base.Enabled(context.Background(), slog.LevelDebug) {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	lg = slog.New(&logx.Chain{
		Middleware: []logx.Middleware{logx.RequestID},
		Handler:    opts.NewTextHandler(f),
	})

	return lg, func() { _ = f.Close() }, nil
}
