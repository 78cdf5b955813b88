package botmw

import (
	"context"
	"fmt"

	"github.com/Semior001/newsview/pkg/botx"
	"github.com/Semior001/newsview/pkg/logx"
	"github.com/google/uuid"
)

// RequestID is a middleware that adds request id to context.
func RequestID() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			ctx = logx.ContextWithRequestID(ctx, uuid.New().String())
			return next(ctx, req)
		}
	}
}

// ErrorReply is a middleware that answers the requester with the given
// text and the request id, if the handler failed without answering.
func ErrorReply(text string) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			resps, err := next(ctx, req)
			if err == nil {
				return resps, nil
			}

			for _, r := range resps {
				if r.ChatID == req.Chat.ID {
					return resps, err
				}
			}

			msg := text
			if reqID, ok := logx.RequestIDFromContext(ctx); ok {
				msg += fmt.Sprintf("\n\nRequest ID: `%s`", reqID)
			}

			return append(resps, botx.Response{ChatID: req.Chat.ID, Text: msg}), err
		}
	}
}
