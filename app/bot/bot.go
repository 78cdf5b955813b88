// Package bot contains routers and controllers for the news bot.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/Semior001/newsview/app/publish"
	"github.com/Semior001/newsview/app/view"
	"github.com/Semior001/newsview/pkg/botx"
	"github.com/Semior001/newsview/pkg/botx/botmw"
	"golang.org/x/exp/slog"
)

const helpText = "Send /news to get the latest news in Bulgaria."

const errorText = "Something went wrong, please try again later."

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	Loader         view.Loader
	AllowedChats   []string
	HandlerTimeout time.Duration
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.ErrorReply(errorText),
		botmw.Recover(c.Logger),
		botmw.Logger(c.Logger),
		botmw.AllowChats(c.AllowedChats),
	)

	rtr.NotFound(c.help)
	rtr.Add("/start", c.help)
	rtr.Add("/help", c.help)

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(botmw.Timeout(c.HandlerTimeout))
		rtr.Add("/news", c.news)
	})

	return rtr
}

func (c *Ctrl) help(_ context.Context, req botx.Request) ([]botx.Response, error) {
	return []botx.Response{{ChatID: req.Chat.ID, Text: helpText}}, nil
}

// news loads the list once per request; a failed load is answered with
// the generic failure message.
func (c *Ctrl) news(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	snap, err := view.LoadOnce(ctx, c.Logger, c.Loader)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	return publish.Responses(req.Chat.ID, snap.Document()), nil
}
