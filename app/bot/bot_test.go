package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Semior001/newsview/app/news"
	"github.com/Semior001/newsview/app/render"
	"github.com/Semior001/newsview/app/view"
	"github.com/Semior001/newsview/pkg/botx"
	"github.com/Semior001/newsview/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newCtrl(loader view.Loader, allowed ...string) *Ctrl {
	return &Ctrl{
		Logger:         slog.New(logx.NoOp()),
		Loader:         loader,
		AllowedChats:   allowed,
		HandlerTimeout: time.Second,
	}
}

func req(text string) botx.Request {
	return botx.Request{Chat: botx.Chat{ID: "1", Username: "user"}, Text: text}
}

func TestCtrl_News(t *testing.T) {
	loader := &view.LoaderMock{ListFunc: func(context.Context) (news.Page, error) {
		return news.Page{Articles: []news.Article{
			{ID: "1", Title: "A", Link: "http://x", Published: "2024-01-02T10:00:00Z"},
		}}, nil
	}}

	resps, err := newCtrl(loader).Routes().Handle(context.Background(), req("/news"))
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{
		ChatID: "1",
		Text:   "*Latest News in Bulgaria*\n\n[A](http://x)\n_2 януари 2024 г., 12:00_",
	}}, resps)
	assert.Len(t, loader.ListCalls(), 1)
}

func TestCtrl_NewsFailed(t *testing.T) {
	loader := &view.LoaderMock{ListFunc: func(context.Context) (news.Page, error) {
		return news.Page{}, &news.FetchError{Cause: errors.New("connection refused")}
	}}

	resps, err := newCtrl(loader).Routes().Handle(context.Background(), req("/news"))
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{ChatID: "1", Text: render.MsgFailed}}, resps)
}

func TestCtrl_Help(t *testing.T) {
	for _, text := range []string{"/start", "/help", "hello"} {
		resps, err := newCtrl(&view.LoaderMock{}).Routes().Handle(context.Background(), req(text))
		require.NoError(t, err)
		assert.Equal(t, []botx.Response{{ChatID: "1", Text: helpText}}, resps, text)
	}
}

func TestCtrl_AllowedChats(t *testing.T) {
	loader := &view.LoaderMock{}
	resps, err := newCtrl(loader, "42").Routes().Handle(context.Background(), req("/news"))
	require.NoError(t, err)
	assert.Empty(t, resps)
	assert.Empty(t, loader.ListCalls())
}

func TestCtrl_PanicAnsweredWithError(t *testing.T) {
	loader := &view.LoaderMock{ListFunc: func(context.Context) (news.Page, error) {
		panic("oops")
	}}

	resps, err := newCtrl(loader).Routes().Handle(context.Background(), req("/news"))
	require.NoError(t, err, "panic in the loader is turned into the failed state by the view")
	assert.Equal(t, []botx.Response{{ChatID: "1", Text: render.MsgFailed}}, resps)
}

func TestCtrl_NewsTimeout(t *testing.T) {
	loader := &view.LoaderMock{ListFunc: func(ctx context.Context) (news.Page, error) {
		<-ctx.Done()
		return news.Page{}, ctx.Err()
	}}

	ctrl := newCtrl(loader)
	ctrl.HandlerTimeout = 10 * time.Millisecond

	resps, err := ctrl.Routes().Handle(context.Background(), req("/news"))
	require.Error(t, err)
	require.Len(t, resps, 1)
	assert.Contains(t, resps[0].Text, errorText)

	resps, err = ctrl.Routes().Handle(context.Background(), req("/help"))
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{ChatID: "1", Text: helpText}}, resps)
}
