// Package botmw provides middlewares for bot handler.
package botmw

import (
	"context"
	"fmt"
	"time"

	"github.com/Semior001/newsview/pkg/botx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Logger is a middleware that logs all requests
func Logger(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			start := time.Now()

			res, err := next(ctx, req)

			args := []any{
				slog.String("chat_id", req.Chat.ID),
				slog.String("chat_username", req.Chat.Username),
				slog.Int("responses", len(res)),
				slog.Duration("elapsed", time.Since(start)),
				slog.Any("err", err),
			}

			if lg.Enabled(ctx, slog.LevelDebug) {
				lg.DebugCtx(ctx, "request processed", append(args, slog.String("command", req.Text))...)
				return res, err
			}

			lg.InfoCtx(ctx, "request processed", args...)
			return res, err
		}
	}
}

// Recover is a middleware that turns panics into errors.
func Recover(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) (resps []botx.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					lg.ErrorCtx(ctx, "panic recovered", slog.Any("panic", r))
					resps, err = nil, fmt.Errorf("panic: %v", r)
				}
			}()

			return next(ctx, req)
		}
	}
}

// AllowChats is a middleware that ignores requests from chats not in
// the list. An empty list allows every chat.
func AllowChats(ids []string) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			if len(ids) > 0 && !lo.Contains(ids, req.Chat.ID) {
				return nil, nil
			}
			return next(ctx, req)
		}
	}
}
